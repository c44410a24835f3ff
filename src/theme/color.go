package theme

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned for malformed hex colors
var ErrInvalidHex = errors.New("invalid hex color")

// defaultLighten is the color returned by Lighten for malformed input
const defaultLighten = "#90caf9"

// HexToRGB parses "#RGB" or "#RRGGBB" into 0-255 channels
func HexToRGB(hex string) (r, g, b uint8, err error) {
	h := normalizeHex(hex)
	if len(h) != 7 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}

// RGBToHex formats channels as a lowercase "#rrggbb"
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Lighten moves a color toward white by factor (0..1).
// Malformed input yields a light blue.
func Lighten(hex string, factor float64) string {
	h := normalizeHex(hex)
	c, err := colorful.Hex(h)
	if err != nil || len(h) != 7 {
		return defaultLighten
	}
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, g, b := c.BlendRgb(white, factor).Clamped().RGB255()
	return RGBToHex(r, g, b)
}

// Gradient renders a CSS linear gradient from primary to secondary
func Gradient(primary, secondary string, angle int) string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s 30%%, %s 90%%)", angle, primary, secondary)
}
