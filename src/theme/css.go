package theme

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// CSS variable names written to the document root
const (
	CSSVarPrimary          = "--color-primary"
	CSSVarSecondary        = "--color-secondary"
	CSSVarBackground       = "--color-background"
	CSSVarPaper            = "--color-paper"
	CSSVarTextPrimary      = "--color-text-primary"
	CSSVarTextSecondary    = "--color-text-secondary"
	CSSVarFontFamily       = "--font-family"
	CSSVarFontSizeBase     = "--font-size-base"
	CSSVarFontWeightNormal = "--font-weight-normal"
	CSSVarBorderRadius     = "--border-radius"
	CSSVarTransitionSpeed  = "--transition-speed"
)

// Document attributes and classes
const (
	AttrTheme         = "data-theme"
	AttrDensity       = "data-density"
	ClassHighContrast = "high-contrast"
)

// StyleVar is one global style variable assignment
type StyleVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StyleSink receives global style state, the way a browser document root does
type StyleSink interface {
	SetProperty(name, value string)
	SetAttribute(name, value string)
	SetClass(name string, on bool)
}

// Variables returns the global style variables in a stable order
func (r Resolved) Variables() []StyleVar {
	return []StyleVar{
		{CSSVarPrimary, r.Palette.Primary},
		{CSSVarSecondary, r.Palette.Secondary},
		{CSSVarBackground, r.Palette.Background},
		{CSSVarPaper, r.Palette.Paper},
		{CSSVarTextPrimary, r.Palette.TextPrimary},
		{CSSVarTextSecondary, r.Palette.TextSecondary},
		{CSSVarFontFamily, r.Typography.FontFamily},
		{CSSVarFontSizeBase, px(r.Typography.FontSize)},
		{CSSVarFontWeightNormal, strconv.Itoa(r.Typography.FontWeight)},
		{CSSVarBorderRadius, px(r.BorderRadius)},
		{CSSVarTransitionSpeed, r.Transition},
	}
}

// ToCSSVariables returns the style variables as a map
func (r Resolved) ToCSSVariables() map[string]string {
	vars := r.Variables()
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Name] = v.Value
	}
	return m
}

// ApplyTo mirrors the resolved theme onto a sink: the data-theme and
// data-density attributes, the high-contrast class and every variable.
func (r Resolved) ApplyTo(sink StyleSink) {
	if sink == nil {
		return
	}
	sink.SetAttribute(AttrTheme, r.SchemeID)
	for _, v := range r.Variables() {
		sink.SetProperty(v.Name, v.Value)
	}
	sink.SetClass(ClassHighContrast, r.Contrast == ContrastHigh)
	sink.SetAttribute(AttrDensity, r.Density)
}

// GenerateCSS renders a :root block with all variables
func (r Resolved) GenerateCSS() string {
	return r.GenerateCSSBlock(":root")
}

// GenerateCSSBlock renders the variables for a specific selector
func (r Resolved) GenerateCSSBlock(selector string) string {
	var sb strings.Builder
	sb.WriteString(selector)
	sb.WriteString(" {\n")
	for _, v := range r.Variables() {
		sb.WriteString(fmt.Sprintf("  %s: %s;\n", v.Name, v.Value))
	}
	sb.WriteString("}\n")
	return sb.String()
}

// GenerateCatalogCSS renders one [data-theme] block per catalog scheme
// using the given settings, so a page can switch schemes by attribute alone.
func GenerateCatalogCSS(settings Settings) string {
	var sb strings.Builder
	for i, s := range catalog {
		if i > 0 {
			sb.WriteString("\n")
		}
		selector := fmt.Sprintf("[%s=%q]", AttrTheme, s.ID)
		if s.ID == DefaultSchemeID {
			selector = ":root,\n" + selector
		}
		sb.WriteString(Resolve(s, settings).GenerateCSSBlock(selector))
	}
	return sb.String()
}

// JSVariables returns the variables keyed by camelCase names for scripts
func (r Resolved) JSVariables() map[string]string {
	vars := r.Variables()
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[cssVarToJSName(v.Name)] = v.Value
	}
	return m
}

// cssVarToJSName converts --color-text-primary to colorTextPrimary
func cssVarToJSName(cssVar string) string {
	s := strings.TrimPrefix(cssVar, "--")
	parts := strings.Split(s, "-")
	if len(parts) <= 1 {
		return s
	}
	for i := 1; i < len(parts); i++ {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(string(parts[i][0])) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// Document is an in-memory StyleSink standing in for the page root element.
// It is safe for concurrent use.
type Document struct {
	mu         sync.RWMutex
	properties map[string]string
	attributes map[string]string
	classes    map[string]bool
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		properties: make(map[string]string),
		attributes: make(map[string]string),
		classes:    make(map[string]bool),
	}
}

// SetProperty sets a style variable
func (d *Document) SetProperty(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.properties[name] = value
}

// SetAttribute sets a root attribute
func (d *Document) SetAttribute(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attributes[name] = value
}

// SetClass adds or removes a root class
func (d *Document) SetClass(name string, on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		d.classes[name] = true
	} else {
		delete(d.classes, name)
	}
}

// Property returns a style variable value
func (d *Document) Property(name string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.properties[name]
}

// Attribute returns a root attribute value
func (d *Document) Attribute(name string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.attributes[name]
}

// HasClass reports whether a root class is set
func (d *Document) HasClass(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.classes[name]
}

// Classes returns the set classes, sorted
func (d *Document) Classes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.classes))
	for c := range d.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CSS renders the document state as a stylesheet block keyed on its attributes
func (d *Document) CSS() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.properties))
	for name := range d.properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(":root")
	if id := d.attributes[AttrTheme]; id != "" {
		sb.WriteString(fmt.Sprintf("[%s=%q]", AttrTheme, id))
	}
	sb.WriteString(" {\n")
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  %s: %s;\n", name, d.properties[name]))
	}
	sb.WriteString("}\n")
	return sb.String()
}
