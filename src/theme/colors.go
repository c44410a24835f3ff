// Package theme provides the color scheme catalog, user theme settings and
// the resolver that turns a (scheme, settings) pair into concrete styles.
package theme

import (
	"fmt"
	"log/slog"
	"strings"
)

// Slot is one named color entry within a scheme
type Slot struct {
	Name  string `json:"name" yaml:"name"`
	Hex   string `json:"hex" yaml:"hex"`     // Source of truth (e.g., "#F8F9FA")
	RGB   string `json:"rgb" yaml:"rgb"`     // Derived from Hex (e.g., "rgb(248, 249, 250)")
	Usage string `json:"usage" yaml:"usage"` // Free-text description of the intended role
	Role  Role   `json:"role,omitempty" yaml:"role,omitempty"`
}

// Scheme is a named, fixed palette of color slots
type Scheme struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Slots       []Slot `json:"slots" yaml:"slots"`
}

// Color formats accepted by Scheme.Value
const (
	FormatHex = "hex"
	FormatRGB = "rgb"
)

// NewSlot builds a slot whose RGB string is derived from hex.
// An optional role tags the slot for direct role lookup.
func NewSlot(name, hex, usage string, role ...Role) Slot {
	s := Slot{
		Name:  name,
		Hex:   hex,
		RGB:   RGBString(hex),
		Usage: usage,
	}
	if len(role) > 0 {
		s.Role = role[0]
	}
	return s
}

// RGBString converts a hex color to its "rgb(r, g, b)" form.
// Unparseable input yields "rgb(0, 0, 0)".
func RGBString(hex string) string {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return "rgb(0, 0, 0)"
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// normalizeHex expands a 3-digit hex and lowercases it
func normalizeHex(hex string) string {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	return "#" + strings.ToLower(h)
}

// Colors returns the slot-name to slot mapping
func (s Scheme) Colors() map[string]Slot {
	m := make(map[string]Slot, len(s.Slots))
	for _, slot := range s.Slots {
		m[slot.Name] = slot
	}
	return m
}

// Slot looks up a slot by name
func (s Scheme) Slot(name string) (Slot, bool) {
	for _, slot := range s.Slots {
		if slot.Name == name {
			return slot, true
		}
	}
	return Slot{}, false
}

// Value returns a slot color in the given format ("hex" or "rgb").
// Missing slots log a warning and return black.
func (s Scheme) Value(name, format string) string {
	slot, ok := s.Slot(name)
	if !ok {
		slog.Warn("color slot not found", "slot", name, "scheme", s.Name)
		if format == FormatRGB {
			return "rgb(0, 0, 0)"
		}
		return "#000000"
	}
	if format == FormatRGB {
		return slot.RGB
	}
	return slot.Hex
}

// Consistent reports whether every slot's RGB matches its Hex
func (s Scheme) Consistent() bool {
	for _, slot := range s.Slots {
		if slot.RGB != RGBString(slot.Hex) {
			return false
		}
	}
	return true
}
