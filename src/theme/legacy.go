package theme

// LegacyScheme is a scheme name from the earlier four-scheme theme system
type LegacyScheme string

// Legacy scheme names
const (
	LegacyDefault     LegacyScheme = "default"
	LegacyDeepOcean   LegacyScheme = "deepOcean"
	LegacyEarthForest LegacyScheme = "earthForest"
	LegacyEarth       LegacyScheme = "earth"
)

var toLegacy = map[string]LegacyScheme{
	"grayscale":     LegacyDefault,
	"neonCyberpunk": LegacyDeepOcean,
	"earthPulse":    LegacyEarthForest,
	"primalForest":  LegacyEarthForest,
	"estonian":      LegacyEarth,
	"byzantine":     LegacyDeepOcean,
	"fruitPlatter":  LegacyDefault,
	"german":        LegacyDefault,
	"blueOrange":    LegacyEarth,
}

// ToLegacy maps a scheme id to its closest legacy scheme
func ToLegacy(id string) LegacyScheme {
	if l, ok := toLegacy[id]; ok {
		return l
	}
	return LegacyDefault
}
