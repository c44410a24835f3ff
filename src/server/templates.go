package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

//go:embed template/*.tmpl
var templateFS embed.FS

// layoutFile wraps every page
const layoutFile = "template/layout.tmpl"

// TemplateRenderer renders pages inside the shared layout
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// TemplateNotFoundError is returned when a template is not found
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return "template not found: " + e.Name
}

// placeholderFuncs lets templates parse before a request picks the language
var placeholderFuncs = template.FuncMap{
	"t":         func(key string, args ...interface{}) string { return key },
	"lang":      func() string { return "en" },
	"languages": func() interface{} { return nil },
}

// NewTemplateRenderer parses the embedded templates. Every file other
// than the layout is a page named after its base name.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	pages, err := fs.Glob(templateFS, "template/*.tmpl")
	if err != nil {
		return nil, err
	}

	tr := &TemplateRenderer{templates: make(map[string]*template.Template)}
	for _, file := range pages {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".tmpl")
		tmpl, err := template.New(name).Funcs(placeholderFuncs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tr.templates[name] = tmpl
	}
	return tr, nil
}

// Render executes page name with funcs bound for this request
func (tr *TemplateRenderer) Render(w io.Writer, name string, funcs template.FuncMap, data interface{}) error {
	tmpl, ok := tr.templates[name]
	if !ok {
		return &TemplateNotFoundError{Name: name}
	}
	clone, err := tmpl.Clone()
	if err != nil {
		return err
	}
	return clone.Funcs(funcs).ExecuteTemplate(w, "base", data)
}
