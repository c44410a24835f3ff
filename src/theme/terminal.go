package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TerminalStyles are lipgloss styles derived from a resolved theme
type TerminalStyles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style
	Error    lipgloss.Style
}

// NewTerminalStyles builds terminal styles from a resolved theme.
// Colors that are not plain hex (rgba fallbacks) are replaced by the
// primary text color.
func NewTerminalStyles(r Resolved) TerminalStyles {
	text := lipgloss.Color(r.Palette.TextPrimary)
	muted := lipgloss.Color(terminalHex(r.Palette.TextSecondary, r.Palette.TextPrimary))
	primary := lipgloss.Color(r.Palette.Primary)
	secondary := lipgloss.Color(r.Palette.Secondary)

	card := lipgloss.NewStyle().
		BorderForeground(secondary).
		Padding(0, 1)
	if r.BorderRadius > 0 {
		card = card.Border(lipgloss.RoundedBorder())
	} else {
		card = card.Border(lipgloss.NormalBorder())
	}

	title := lipgloss.NewStyle().Foreground(primary).Bold(true)
	if r.Contrast == ContrastHigh {
		title = title.Underline(true)
	}

	return TerminalStyles{
		Title:    title,
		Text:     lipgloss.NewStyle().Foreground(text),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Accent:   lipgloss.NewStyle().Foreground(secondary),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(r.Palette.Background)).Background(primary).Bold(true),
		Card:     card,
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
	}
}

// Swatch renders one colored block per slot of the scheme
func Swatch(s Scheme) string {
	var sb strings.Builder
	for _, slot := range s.Slots {
		sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(slot.Hex)).Render("   "))
	}
	return sb.String()
}

// terminalHex returns c when it is a hex color, otherwise fallback
func terminalHex(c, fallback string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	return fallback
}
