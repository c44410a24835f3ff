package theme

import (
	"fmt"
	"strconv"
	"time"
)

// Modes
const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// Palette holds the role colors resolved from a scheme
type Palette struct {
	Mode          string `json:"mode"`
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Background    string `json:"background"`
	Paper         string `json:"paper"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
}

// Typography holds font parameters
type Typography struct {
	FontFamily string `json:"fontFamily"`
	FontSize   int    `json:"fontSize"`
	FontWeight int    `json:"fontWeight"`
}

// ButtonStyle overrides for buttons
type ButtonStyle struct {
	BorderRadius  int    `json:"borderRadius"`
	TextTransform string `json:"textTransform"`
	Transition    string `json:"transition"`
}

// CardStyle overrides for cards
type CardStyle struct {
	BorderRadius float64 `json:"borderRadius"`
	BoxShadow    string  `json:"boxShadow"`
	Transition   string  `json:"transition"`
}

// PaperStyle overrides for paper surfaces
type PaperStyle struct {
	Transition string `json:"transition"`
}

// TableCellStyle overrides for table cells
type TableCellStyle struct {
	Padding string `json:"padding"`
}

// ToolbarStyle overrides for toolbars
type ToolbarStyle struct {
	MinHeight string `json:"minHeight"`
}

// Components groups the style overrides for shared UI primitives
type Components struct {
	Button    ButtonStyle    `json:"button"`
	Card      CardStyle      `json:"card"`
	Paper     PaperStyle     `json:"paper"`
	TableCell TableCellStyle `json:"tableCell"`
	Toolbar   ToolbarStyle   `json:"toolbar"`
}

// Resolved is the concrete theme derived from a scheme and settings.
// It is comparable with == and never persisted.
type Resolved struct {
	SchemeID           string        `json:"schemeId"`
	Palette            Palette       `json:"palette"`
	Typography         Typography    `json:"typography"`
	BorderRadius       int           `json:"borderRadius"`
	Transition         string        `json:"transition"`
	TransitionDuration time.Duration `json:"transitionDuration"`
	Density            string        `json:"density"`
	Contrast           string        `json:"contrast"`
	Components         Components    `json:"components"`
}

// densitySpacing maps density to table cell padding and toolbar height
var densitySpacing = map[string]struct {
	cellPadding   string
	toolbarHeight string
}{
	DensityCompact:     {"6px 16px", "48px"},
	DensityNormal:      {"8px 16px", "64px"},
	DensityComfortable: {"12px 16px", "72px"},
}

const (
	animatedTransition = 300 * time.Millisecond
	cardShadow         = "0 4px 6px rgba(0, 0, 0, 0.1)"
	cardRadiusFactor   = 1.5
)

// Resolve derives a full theme from scheme and settings. It is a pure
// function: equal inputs always give equal outputs.
func Resolve(scheme Scheme, settings Settings) Resolved {
	light := IsLight(scheme.ID)
	mode := ModeDark
	if light {
		mode = ModeLight
	}

	duration := time.Duration(0)
	if settings.Animations {
		duration = animatedTransition
	}
	transition := formatSeconds(duration)

	spacing, ok := densitySpacing[settings.Density]
	if !ok {
		spacing = densitySpacing[DensityNormal]
	}

	return Resolved{
		SchemeID: scheme.ID,
		Palette: Palette{
			Mode:          mode,
			Primary:       RoleColor(scheme, RolePrimaryAccent),
			Secondary:     RoleColor(scheme, RoleSecondaryAccent),
			Background:    RoleColor(scheme, RolePrimaryBackground),
			Paper:         RoleColor(scheme, RoleSecondaryBackground),
			TextPrimary:   RoleColor(scheme, RolePrimaryText),
			TextSecondary: RoleColor(scheme, RoleSecondaryText),
		},
		Typography: Typography{
			FontFamily: settings.FontFamily,
			FontSize:   settings.FontSize,
			FontWeight: settings.FontWeight,
		},
		BorderRadius:       settings.BorderRadius,
		Transition:         transition,
		TransitionDuration: duration,
		Density:            settings.Density,
		Contrast:           settings.Contrast,
		Components: Components{
			Button: ButtonStyle{
				BorderRadius:  settings.BorderRadius,
				TextTransform: "none",
				Transition:    transition,
			},
			Card: CardStyle{
				BorderRadius: float64(settings.BorderRadius) * cardRadiusFactor,
				BoxShadow:    cardShadow,
				Transition:   transition,
			},
			Paper:     PaperStyle{Transition: transition},
			TableCell: TableCellStyle{Padding: spacing.cellPadding},
			Toolbar:   ToolbarStyle{MinHeight: spacing.toolbarHeight},
		},
	}
}

// IsDark reports whether the resolved theme renders in dark mode
func (r Resolved) IsDark() bool {
	return r.Palette.Mode == ModeDark
}

// formatSeconds renders a duration as a CSS time ("0.3s", "0s")
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

// px renders an integer pixel length
func px(n int) string {
	return fmt.Sprintf("%dpx", n)
}
