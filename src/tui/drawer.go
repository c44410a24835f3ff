package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/provider"
	"github.com/apimgr/homunculus/src/theme"
)

// appliedDuration is how long the applied status stays visible
const appliedDuration = 1500 * time.Millisecond

// borderRadiusStep matches the drawer slider granularity
const borderRadiusStep = 2

// ThemeController is the theme state the drawer edits
type ThemeController interface {
	Snapshot() provider.Snapshot
	Schemes() []theme.Scheme
	SetColorScheme(ctx context.Context, id string) provider.Snapshot
	ApplySettings(ctx context.Context, s theme.Settings) provider.Snapshot
}

type tab int

const (
	tabColors tab = iota
	tabFonts
	tabUI
	tabCount
)

type field int

const (
	fieldFontSize field = iota
	fieldFontWeight
	fieldFontFamily
	fieldBorderRadius
	fieldAnimations
	fieldContrast
	fieldDensity
)

// tabFields lists the editable settings on each settings tab
var tabFields = map[tab][]field{
	tabFonts: {fieldFontSize, fieldFontWeight, fieldFontFamily},
	tabUI:    {fieldBorderRadius, fieldAnimations, fieldContrast, fieldDensity},
}

// clearAppliedMsg ends the applied status started by apply number seq
type clearAppliedMsg struct {
	seq int
}

// Model is the theme settings drawer
type Model struct {
	ctx     context.Context
	ctrl    ThemeController
	tr      i18n.Translations
	keys    keyMap
	help    help.Model
	styles  theme.TerminalStyles
	snap    provider.Snapshot
	schemes []theme.Scheme

	tab          tab
	schemeCursor int
	fieldCursor  int

	// draft holds unapplied edits
	draft   theme.Settings
	applied bool
	seq     int

	width int
}

// New creates a drawer bound to ctrl, labelled with tr
func New(ctx context.Context, ctrl ThemeController, tr i18n.Translations) Model {
	snap := ctrl.Snapshot()
	m := Model{
		ctx:     provider.WithSource(ctx, provider.SourceTUI),
		ctrl:    ctrl,
		tr:      tr,
		keys:    defaultKeyMap(),
		help:    help.New(),
		schemes: ctrl.Schemes(),
		draft:   snap.Settings,
	}
	m.setSnapshot(snap)
	for i, s := range m.schemes {
		if s.ID == snap.Scheme.ID {
			m.schemeCursor = i
		}
	}
	return m
}

func (m *Model) setSnapshot(snap provider.Snapshot) {
	m.snap = snap
	m.styles = theme.NewTerminalStyles(snap.Resolved)
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case clearAppliedMsg:
		if msg.seq == m.seq {
			m.applied = false
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		step := tab(1)
		if msg.String() == "shift+tab" {
			step = tabCount - 1
		}
		m.tab = (m.tab + step) % tabCount
		m.fieldCursor = 0

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Left):
		m.adjust(-1)

	case key.Matches(msg, m.keys.Right):
		m.adjust(1)

	case key.Matches(msg, m.keys.Select):
		if m.tab == tabColors {
			m.setSnapshot(m.ctrl.SetColorScheme(m.ctx, m.schemes[m.schemeCursor].ID))
		} else if f := m.currentField(); f == fieldAnimations || f == fieldContrast {
			m.adjust(1)
		}

	case key.Matches(msg, m.keys.Apply):
		return m.apply()

	case key.Matches(msg, m.keys.Reset):
		// only the draft; nothing is applied until the next apply
		m.draft = theme.DefaultSettings()
		m.applied = false
	}
	return m, nil
}

// apply pushes the draft to the controller and schedules the applied
// status to clear
func (m Model) apply() (tea.Model, tea.Cmd) {
	m.setSnapshot(m.ctrl.ApplySettings(m.ctx, m.draft))
	m.draft = m.snap.Settings
	m.applied = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(appliedDuration, func(time.Time) tea.Msg {
		return clearAppliedMsg{seq: seq}
	})
}

func (m *Model) moveCursor(delta int) {
	if m.tab == tabColors {
		m.schemeCursor = wrap(m.schemeCursor+delta, len(m.schemes))
		return
	}
	m.fieldCursor = wrap(m.fieldCursor+delta, len(tabFields[m.tab]))
}

func (m Model) currentField() field {
	fields := tabFields[m.tab]
	if len(fields) == 0 {
		return -1
	}
	return fields[m.fieldCursor]
}

// adjust changes the focused setting by one step in direction dir
func (m *Model) adjust(dir int) {
	if m.tab == tabColors {
		return
	}
	d := &m.draft
	switch m.currentField() {
	case fieldFontSize:
		d.FontSize = clamp(d.FontSize+dir, theme.MinFontSize, theme.MaxFontSize)
	case fieldFontWeight:
		d.FontWeight = clamp(d.FontWeight+dir*theme.FontWeightStep, theme.MinFontWeight, theme.MaxFontWeight)
	case fieldFontFamily:
		d.FontFamily = theme.FontFamilies[wrap(fontIndex(d.FontFamily)+dir, len(theme.FontFamilies))].Value
	case fieldBorderRadius:
		d.BorderRadius = clamp(d.BorderRadius+dir*borderRadiusStep, theme.MinBorderRadius, theme.MaxBorderRadius)
	case fieldAnimations:
		d.Animations = !d.Animations
	case fieldContrast:
		if d.Contrast == theme.ContrastHigh {
			d.Contrast = theme.ContrastNormal
		} else {
			d.Contrast = theme.ContrastHigh
		}
	case fieldDensity:
		d.Density = theme.Densities[wrap(densityIndex(d.Density)+dir, len(theme.Densities))]
	default:
		return
	}
	m.applied = false
}

// View implements tea.Model
func (m Model) View() string {
	st := m.styles
	var sb strings.Builder

	sb.WriteString(st.Title.Render(m.tr.Get("drawer.title")))
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	if m.tab == tabColors {
		sb.WriteString(m.renderSchemes())
	} else {
		sb.WriteString(m.renderFields())
	}

	sb.WriteString("\n")
	if m.tab != tabColors {
		if m.applied {
			sb.WriteString(st.Accent.Render("✓ " + m.tr.Get("drawer.applied")))
		} else {
			sb.WriteString(st.Muted.Render("[a] " + m.tr.Get("drawer.apply") + "  [r] " + m.tr.Get("drawer.reset")))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderTabs() string {
	labels := []string{
		m.tr.Get("drawer.tabColors"),
		m.tr.Get("drawer.tabFonts"),
		m.tr.Get("drawer.tabUI"),
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if tab(i) == m.tab {
			parts[i] = m.styles.Selected.Render(" " + l + " ")
		} else {
			parts[i] = m.styles.Muted.Render(" " + l + " ")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderSchemes() string {
	st := m.styles
	var sb strings.Builder
	sb.WriteString(st.Text.Render(fmt.Sprintf(m.tr.Get("drawer.currentScheme"), m.snap.Scheme.Name)))
	sb.WriteString("\n\n")

	for i, s := range m.schemes {
		cursor := "  "
		if i == m.schemeCursor {
			cursor = "> "
		}
		mark := " "
		if s.ID == m.snap.Scheme.ID {
			mark = "●"
		}
		name := fmt.Sprintf("%s%s %-16s", cursor, mark, s.Name)
		if i == m.schemeCursor {
			name = st.Selected.Render(name)
		} else {
			name = st.Text.Render(name)
		}
		sb.WriteString(name + " " + theme.Swatch(s) + "\n")
	}
	return sb.String()
}

func (m Model) renderFields() string {
	st := m.styles
	var rows []string
	for i, f := range tabFields[m.tab] {
		label, value := m.fieldText(f)
		row := fmt.Sprintf("%-16s ‹ %s ›", label, value)
		if i == m.fieldCursor {
			row = st.Selected.Render("> " + row)
		} else {
			row = st.Text.Render("  " + row)
		}
		rows = append(rows, row)
	}
	return st.Card.Render(strings.Join(rows, "\n"))
}

// fieldText returns the translated label and the draft value of f
func (m Model) fieldText(f field) (string, string) {
	d := m.draft
	switch f {
	case fieldFontSize:
		return m.tr.Get("drawer.fontSize"), fmt.Sprintf("%dpx", d.FontSize)
	case fieldFontWeight:
		return m.tr.Get("drawer.fontWeight"), fmt.Sprintf("%d", d.FontWeight)
	case fieldFontFamily:
		return m.tr.Get("drawer.fontFamily"), theme.FontFamilies[fontIndex(d.FontFamily)].Label
	case fieldBorderRadius:
		return m.tr.Get("drawer.borderRadius"), fmt.Sprintf("%dpx", d.BorderRadius)
	case fieldAnimations:
		if d.Animations {
			return m.tr.Get("drawer.animations"), m.tr.Get("drawer.on")
		}
		return m.tr.Get("drawer.animations"), m.tr.Get("drawer.off")
	case fieldContrast:
		if d.Contrast == theme.ContrastHigh {
			return m.tr.Get("drawer.contrast"), m.tr.Get("drawer.contrastHigh")
		}
		return m.tr.Get("drawer.contrast"), m.tr.Get("drawer.contrastNormal")
	case fieldDensity:
		switch d.Density {
		case theme.DensityCompact:
			return m.tr.Get("drawer.density"), m.tr.Get("drawer.densityCompact")
		case theme.DensityComfortable:
			return m.tr.Get("drawer.density"), m.tr.Get("drawer.densityComfortable")
		}
		return m.tr.Get("drawer.density"), m.tr.Get("drawer.densityNormal")
	}
	return "", ""
}

func fontIndex(name string) int {
	for i, f := range theme.FontFamilies {
		if f.Value == name {
			return i
		}
	}
	return 0
}

func densityIndex(d string) int {
	for i, v := range theme.Densities {
		if v == d {
			return i
		}
	}
	return 1
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

// wrap maps i into [0, n)
func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// Run starts the drawer in the alternate screen
func Run(ctx context.Context, ctrl ThemeController, tr i18n.Translations) error {
	p := tea.NewProgram(New(ctx, ctrl, tr), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
