package theme

// DefaultSchemeID is the scheme used when no valid preference exists
const DefaultSchemeID = "grayscale"

// grayscaleScheme is the default scheme
var grayscaleScheme = Scheme{
	ID:          "grayscale",
	Name:        "Grayscale",
	Description: "Minimalist black and white color palette with neutral gray tones",
	Slots: []Slot{
		NewSlot("pureWhite", "#F8F9FA", "Primary background, content areas", RolePrimaryBackground),
		NewSlot("lightGray", "#E9ECEF", "Secondary background, cards, separator areas", RoleSecondaryBackground),
		NewSlot("mistGray", "#DEE2E6", "Table backgrounds, grouped elements"),
		NewSlot("silverGray", "#CED4DA", "Disabled buttons, input backgrounds"),
		NewSlot("neutralGray", "#ADB5BD", "Secondary text, borders, dividers", RoleSecondaryText),
		NewSlot("deepCyanGray", "#6C757D", "Supporting text, captions"),
		NewSlot("slateGray", "#495057", "Primary text, subheadings", RolePrimaryText),
		NewSlot("darkCoalGray", "#343A40", "Emphasized text, main navigation"),
		NewSlot("carbonBlack", "#212529", "Headings, key elements"),
	},
}

// fruitPlatterScheme is a warm, tropical scheme
var fruitPlatterScheme = Scheme{
	ID:          "fruitPlatter",
	Name:        "Fruit Platter",
	Description: "Vibrant and fruity color scheme with warm, tropical tones",
	Slots: []Slot{
		NewSlot("passionWatermelon", "#F26F83", "Primary accent, buttons, calls-to-action", RolePrimaryAccent),
		NewSlot("softCoconut", "#F7D6CB", "Primary background, content areas", RolePrimaryBackground),
		NewSlot("goldenPineapple", "#F2B85A", "Headings, secondary accent, icons"),
		NewSlot("guavaPink", "#DB908A", "Light backgrounds, table areas"),
		NewSlot("pitayaRed", "#D95F5F", "Buttons, links, warning information"),
		NewSlot("brightMango", "#FFAE00", "Primary accent, buttons, calls-to-action"),
		NewSlot("caramelBrown", "#634A00", "Secondary text, dividers, borders", RoleSecondaryText),
		NewSlot("oliveBlack", "#383416", "Dark text, footer background"),
		NewSlot("jadeGreen", "#0C7D74", "Secondary accent, cards, icons", RoleSecondaryAccent),
		NewSlot("deepSeaBlue", "#0F353D", "Primary background, header area"),
	},
}

// neonCyberpunkScheme is an electric scheme with neon accents
var neonCyberpunkScheme = Scheme{
	ID:          "neonCyberpunk",
	Name:        "Neon Cyberpunk",
	Description: "Electric and futuristic color scheme with vivid neon accents",
	Slots: []Slot{
		NewSlot("skyBlue", "#97E3FE", "Interface highlights, info tooltips, secondary buttons"),
		NewSlot("neonPink", "#F394F8", "Accent elements, neon effects, buttons"),
		NewSlot("violet", "#9A53D0", "Primary accent, icons, heading text", RolePrimaryAccent),
		NewSlot("electroPurple", "#7630D9", "Secondary accent, hover states", RoleSecondaryAccent),
		NewSlot("royalBlue", "#2843AD", "Interactive elements, link text"),
		NewSlot("darkPurple", "#532473", "Dark backgrounds, footer areas"),
		NewSlot("midnightBlue", "#0F1546", "Primary background, dark mode", RolePrimaryBackground),
		NewSlot("deepBlue", "#04588C", "Content area backgrounds, navigation bar"),
		NewSlot("cyberCyan", "#79F2E6", "Highlight elements, text highlights"),
		NewSlot("burningOrange", "#E85D04", "Primary contrast, warning information"),
	},
}

// byzantineScheme is a regal purple and gold scheme
var byzantineScheme = Scheme{
	ID:          "byzantine",
	Name:        "Byzantine",
	Description: "Rich and regal color scheme inspired by Byzantine art and culture",
	Slots: []Slot{
		NewSlot("royalPurple", "#492B7C", "Primary background, header area", RolePrimaryBackground),
		NewSlot("deepPurple", "#301551", "Secondary background, footer, shadows", RoleSecondaryBackground),
		NewSlot("passionateOrange", "#ED8A0A", "Primary accent, buttons, icons", RolePrimaryAccent),
		NewSlot("brightYellow", "#F6D912", "Secondary accent, highlight elements", RoleSecondaryAccent),
		NewSlot("paleGold", "#FFF29C", "Light backgrounds, text areas"),
		NewSlot("nightBlue", "#000814", "Dark backgrounds, footer areas"),
		NewSlot("deepSeaBlue", "#001D3D", "Secondary background, header area"),
		NewSlot("gemBlue", "#003566", "Navigation bar, content blocks"),
		NewSlot("brightGold", "#FFC300", "Primary accent, buttons, icons"),
		NewSlot("shiningGold", "#FFD60A", "Secondary accent, hover states, notifications"),
	},
}

// estonianScheme is a clean light scheme
var estonianScheme = Scheme{
	ID:          "estonian",
	Name:        "Estonian",
	Description: "Clean and modern color scheme inspired by Estonian digital design",
	Slots: []Slot{
		NewSlot("estonianWhite", "#FFFFFF", "Primary background, content areas", RolePrimaryBackground),
		NewSlot("pearlGrayWhite", "#E7ECEF", "Secondary background, card elements", RoleSecondaryBackground),
		NewSlot("seafoamBlue", "#CAF0F8", "Light backgrounds, table areas"),
		NewSlot("lightSkyBlue", "#98CCF0", "Dividers, borders, supporting elements"),
		NewSlot("skyBlue", "#00AEE1", "Primary accent, buttons, links", RolePrimaryAccent),
		NewSlot("navyAzureBlue", "#007AAE", "Secondary accent, icons, hover states", RoleSecondaryAccent),
		NewSlot("classicBlue", "#274C77", "Headings, important text, brand elements"),
		NewSlot("deepSeaBlue", "#003459", "Secondary background, header area, page header"),
		NewSlot("estonianBlack", "#00171F", "Footer background, dark elements"),
		NewSlot("neutralGray", "#8B8C89", "Secondary text, supporting information", RoleSecondaryText),
	},
}

// earthPulseScheme is an organic scheme with earthy tones
var earthPulseScheme = Scheme{
	ID:          "earthPulse",
	Name:        "Earth Pulse",
	Description: "Organic and balanced color scheme with earthy tones and natural contrasts",
	Slots: []Slot{
		NewSlot("deepSeaBlack", "#001219", "Primary background, footer area", RolePrimaryBackground),
		NewSlot("inkGreenBlue", "#005F73", "Secondary background, header area", RoleSecondaryBackground),
		NewSlot("cyanGreen", "#0A9396", "Primary accent, buttons, links", RolePrimaryAccent),
		NewSlot("mintGreen", "#94D2BD", "Secondary elements, card backgrounds"),
		NewSlot("lightSand", "#E9D8A6", "Content background, separator areas"),
		NewSlot("goldenOrange", "#EE9B00", "Accent elements, highlights, icons"),
		NewSlot("ochreOrange", "#CA6702", "Secondary accent, hover states", RoleSecondaryAccent),
		NewSlot("rustRed", "#BB3E03", "Warning elements, important notices"),
		NewSlot("brickRed", "#AE2012", "Error messages, delete buttons"),
		NewSlot("deepRed", "#9B2226", "Dangerous operations, critical warnings"),
	},
}

// primalForestScheme is a deep, earthy forest scheme
var primalForestScheme = Scheme{
	ID:          "primalForest",
	Name:        "Primal Forest",
	Description: "Deep and earthy color scheme inspired by ancient forests and natural habitats",
	Slots: []Slot{
		NewSlot("deepBrown", "#582F0E", "Footer background, dark elements"),
		NewSlot("walnutBrown", "#7F4F24", "Main headings, navigation bar"),
		NewSlot("amberBrown", "#936639", "Secondary headings, borders"),
		NewSlot("desertBrown", "#A68A64", "Card borders, dividers"),
		NewSlot("taupe", "#B6AD90", "Secondary background, content blocks", RoleSecondaryBackground),
		NewSlot("linenGray", "#C2C5AA", "Primary background, content areas", RolePrimaryBackground),
		NewSlot("oliveGreen", "#A4AC86", "Secondary elements, links"),
		NewSlot("mossGreen", "#656D4A", "Buttons, accent elements"),
		NewSlot("pineGreen", "#414833", "Main text, key elements", RolePrimaryText),
		NewSlot("forestGreen", "#333D29", "Dark text, footer"),
	},
}

// germanScheme is a bold red and orange scheme
var germanScheme = Scheme{
	ID:          "german",
	Name:        "German",
	Description: "Bold and powerful color scheme with strong reds and warm accent tones",
	Slots: []Slot{
		NewSlot("midnightBlack", "#03071E", "Dark background, footer area"),
		NewSlot("deepWineRed", "#370617", "Secondary dark elements, sidebar"),
		NewSlot("richRed", "#6A040F", "Primary background, header area", RolePrimaryBackground),
		NewSlot("brightRed", "#9D0208", "Accent areas, banner backgrounds"),
		NewSlot("pureRed", "#D00000", "Primary accent, important buttons", RolePrimaryAccent),
		NewSlot("vermilionRed", "#DC2F02", "Warning information, important notices"),
		NewSlot("burningOrange", "#E85D04", "Secondary accent, icons, hover states", RoleSecondaryAccent),
		NewSlot("brightOrange", "#F48C06", "Decorative elements, progress bars"),
		NewSlot("warmOrange", "#FAA307", "Link text, button hover states"),
		NewSlot("goldenYellow", "#FFBA08", "Highlight elements, call-to-action buttons, prompt text"),
	},
}

// blueOrangeScheme is a complementary blue and orange scheme
var blueOrangeScheme = Scheme{
	ID:          "blueOrange",
	Name:        "Blue-Orange Contrast",
	Description: "Vibrant complementary color scheme with cooling blues and warming oranges",
	Slots: []Slot{
		NewSlot("lightLakeBlue", "#8ECAE6", "Light background, content blocks"),
		NewSlot("powderBlue", "#73BFDC", "Secondary background, card elements", RoleSecondaryBackground),
		NewSlot("horizonBlue", "#58B4D1", "Supporting elements, lightweight icons"),
		NewSlot("azureBlue", "#219EBC", "Primary accent, buttons, navigation", RolePrimaryAccent),
		NewSlot("cobaltBlue", "#126782", "Hover states, secondary headings"),
		NewSlot("deepBlue", "#023047", "Main text, headings, footer", RolePrimaryText),
		NewSlot("brightYellowOrange", "#FFB703", "Primary contrast, call-to-action buttons"),
		NewSlot("orangeYellow", "#FD9E02", "Important notices, accent icons"),
		NewSlot("vividOrange", "#FB8500", "Secondary contrast, highlight elements, icons"),
		NewSlot("brightOrange", "#FB9017", "Decorative elements, hover effects"),
	},
}

// catalog is the fixed, ordered list of schemes
var catalog = []Scheme{
	grayscaleScheme,
	fruitPlatterScheme,
	neonCyberpunkScheme,
	byzantineScheme,
	estonianScheme,
	earthPulseScheme,
	primalForestScheme,
	germanScheme,
	blueOrangeScheme,
}

// lightSchemes lists scheme ids rendered in light mode; all others are dark
var lightSchemes = map[string]bool{
	"grayscale": true,
	"estonian":  true,
}
