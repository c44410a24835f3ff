package theme

import (
	"errors"
	"fmt"
)

// Contrast levels
const (
	ContrastNormal = "normal"
	ContrastHigh   = "high"
)

// Density levels
const (
	DensityCompact     = "compact"
	DensityNormal      = "normal"
	DensityComfortable = "comfortable"
)

// Settings bounds
const (
	MinFontSize     = 12
	MaxFontSize     = 20
	MinFontWeight   = 300
	MaxFontWeight   = 700
	FontWeightStep  = 100
	MinBorderRadius = 0
	MaxBorderRadius = 24
)

// FontOption is a selectable font family
type FontOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FontFamilies lists the known font families; the first is the default
var FontFamilies = []FontOption{
	{Value: "Roboto", Label: "Roboto (default)"},
	{Value: "Open Sans", Label: "Open Sans"},
	{Value: "Montserrat", Label: "Montserrat"},
	{Value: "Lato", Label: "Lato"},
	{Value: "Poppins", Label: "Poppins"},
	{Value: "Noto Sans SC", Label: "Noto Sans SC (Chinese)"},
}

// Densities lists density values in ascending spacing order
var Densities = []string{DensityCompact, DensityNormal, DensityComfortable}

// Settings holds user typography, spacing, motion and accessibility preferences
type Settings struct {
	FontFamily   string `json:"fontFamily" yaml:"font_family"`
	FontSize     int    `json:"fontSize" yaml:"font_size"`         // px, 12-20
	FontWeight   int    `json:"fontWeight" yaml:"font_weight"`     // 300-700, step 100
	BorderRadius int    `json:"borderRadius" yaml:"border_radius"` // px, 0-24
	Animations   bool   `json:"animations" yaml:"animations"`
	Contrast     string `json:"contrast" yaml:"contrast"` // normal, high
	Density      string `json:"density" yaml:"density"`   // compact, normal, comfortable
}

// DefaultSettings returns the default theme settings
func DefaultSettings() Settings {
	return Settings{
		FontFamily:   "Roboto",
		FontSize:     16,
		FontWeight:   400,
		BorderRadius: 8,
		Animations:   true,
		Contrast:     ContrastNormal,
		Density:      DensityNormal,
	}
}

// Settings validation errors
var (
	ErrUnknownFontFamily = errors.New("unknown font family")
	ErrFontSize          = errors.New("font size out of range")
	ErrFontWeight        = errors.New("invalid font weight")
	ErrBorderRadius      = errors.New("border radius out of range")
	ErrContrast          = errors.New("invalid contrast")
	ErrDensity           = errors.New("invalid density")
)

// Validate checks every field and returns all violations joined
func (s Settings) Validate() error {
	var errs []error
	if !IsFontFamily(s.FontFamily) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownFontFamily, s.FontFamily))
	}
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		errs = append(errs, fmt.Errorf("%w: %d (want %d-%d)", ErrFontSize, s.FontSize, MinFontSize, MaxFontSize))
	}
	if s.FontWeight < MinFontWeight || s.FontWeight > MaxFontWeight || s.FontWeight%FontWeightStep != 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrFontWeight, s.FontWeight))
	}
	if s.BorderRadius < MinBorderRadius || s.BorderRadius > MaxBorderRadius {
		errs = append(errs, fmt.Errorf("%w: %d (want %d-%d)", ErrBorderRadius, s.BorderRadius, MinBorderRadius, MaxBorderRadius))
	}
	if s.Contrast != ContrastNormal && s.Contrast != ContrastHigh {
		errs = append(errs, fmt.Errorf("%w: %q", ErrContrast, s.Contrast))
	}
	if !isDensity(s.Density) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrDensity, s.Density))
	}
	return errors.Join(errs...)
}

// Normalize clamps numeric fields into range and replaces unknown enum
// values with defaults. The result always passes Validate.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if !IsFontFamily(s.FontFamily) {
		s.FontFamily = def.FontFamily
	}
	s.FontSize = clamp(s.FontSize, MinFontSize, MaxFontSize)
	s.FontWeight = clamp(s.FontWeight, MinFontWeight, MaxFontWeight)
	// snap to the nearest step
	s.FontWeight = (s.FontWeight + FontWeightStep/2) / FontWeightStep * FontWeightStep
	s.BorderRadius = clamp(s.BorderRadius, MinBorderRadius, MaxBorderRadius)
	if s.Contrast != ContrastNormal && s.Contrast != ContrastHigh {
		s.Contrast = def.Contrast
	}
	if !isDensity(s.Density) {
		s.Density = def.Density
	}
	return s
}

// IsFontFamily reports whether name is a known font family
func IsFontFamily(name string) bool {
	for _, f := range FontFamilies {
		if f.Value == name {
			return true
		}
	}
	return false
}

func isDensity(d string) bool {
	for _, v := range Densities {
		if v == d {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
