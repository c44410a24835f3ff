package server

import (
	"errors"
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/apimgr/homunculus/src/config"
	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/paths"
	"github.com/apimgr/homunculus/src/theme"
)

// PageData represents common data passed to all page templates
type PageData struct {
	Title   string
	Theme   string
	Density string
	Classes string
	Hero    template.CSS // accent gradient behind the landing hero
	Version string
	Data    interface{}
}

// landingData is the landing page body
type landingData struct {
	PageData
	Features        []string
	Schemes         []theme.Scheme
	VersionFeatures []string
}

// dashboardCard is one placeholder metric card
type dashboardCard struct {
	Label string
	Value string
	Note  string
}

type dashboardData struct {
	PageData
	Cards []dashboardCard
}

// previewSlot is one row of the scheme slot table
type previewSlot struct {
	Name   string
	Hex    string
	RGB    string
	Usage  string
	Swatch template.CSS
}

type previewData struct {
	PageData
	Scheme theme.Scheme
	Slots  []previewSlot
	// Paper is the primary color lightened toward white, behind the sample card
	Paper   template.CSS
	Primary template.CSS
	InSync  bool
}

// previewPaperFactor is how far the sample card paper moves toward white
const previewPaperFactor = 0.85

// landingFeatures are the translation prefixes of the feature cards
var landingFeatures = []string{
	"featureIntegration",
	"featureAnalysis",
	"featureVisualization",
	"featureJournal",
}

// dashboardCards hold fixed sample figures; there is no data source
var dashboardCards = []dashboardCard{
	{Label: "totalAssets", Value: "$87,324.56", Note: "+2.3%"},
	{Label: "todayProfitLoss", Value: "+$12,493.82", Note: "+5.7% ($673.12)"},
	{Label: "winRate", Value: "68.5%", Note: "+1.2%"},
	{Label: "totalTrades", Value: "12", Note: "3"},
}

// pageLanguage picks the page language. A ?lang= query also sets the
// language cookie.
func (s *Server) pageLanguage(w http.ResponseWriter, r *http.Request) string {
	if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && s.i18n.IsSupported(q) {
		i18n.SetLanguageCookie(w, q)
		return q
	}
	return s.i18n.DetectLanguage(r)
}

// newPageData fills the root element state from the live theme
func (s *Server) newPageData(title string) PageData {
	doc := theme.NewDocument()
	resolved := s.provider.Resolved()
	resolved.ApplyTo(doc)
	return PageData{
		Title:   title,
		Theme:   doc.Attribute(theme.AttrTheme),
		Density: doc.Attribute(theme.AttrDensity),
		Classes: strings.Join(doc.Classes(), " "),
		Hero:    template.CSS(theme.Gradient(resolved.Palette.Primary, resolved.Palette.Secondary, 45)),
		Version: config.Version,
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, lang, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, name, s.i18n.TemplateFuncs(lang), data); err != nil {
		s.logger.Error("template render failed", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleHome renders the landing page
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	lang := s.pageLanguage(w, r)
	data := landingData{
		PageData:        s.newPageData(""),
		Features:        landingFeatures,
		Schemes:         s.provider.Schemes(),
		VersionFeatures: s.i18n.Translations(lang).List("versionFeatures"),
	}
	s.render(w, r, lang, "index", data)
}

// handleDashboard renders the placeholder dashboard
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	lang := s.pageLanguage(w, r)
	data := dashboardData{
		PageData: s.newPageData(s.i18n.T(lang, "dashboard")),
		Cards:    dashboardCards,
	}
	s.render(w, r, lang, "dashboard", data)
}

// handleThemePreview renders the active scheme's slots beside sample
// components drawn in those colors
func (s *Server) handleThemePreview(w http.ResponseWriter, r *http.Request) {
	lang := s.pageLanguage(w, r)
	scheme := s.provider.Scheme()
	primary := s.provider.Resolved().Palette.Primary

	slots := make([]previewSlot, 0, len(scheme.Slots))
	for _, slot := range scheme.Slots {
		slots = append(slots, previewSlot{
			Name:   slot.Name,
			Hex:    scheme.Value(slot.Name, theme.FormatHex),
			RGB:    scheme.Value(slot.Name, theme.FormatRGB),
			Usage:  slot.Usage,
			Swatch: template.CSS(scheme.Value(slot.Name, theme.FormatHex)),
		})
	}

	data := previewData{
		PageData: s.newPageData(s.i18n.T(lang, "themePreview")),
		Scheme:   scheme,
		Slots:    slots,
		Paper:    template.CSS(theme.Lighten(primary, previewPaperFactor)),
		Primary:  template.CSS(primary),
		InSync:   scheme.Consistent(),
	}
	if !data.InSync {
		s.logger.Warn("scheme rgb values disagree with hex", "scheme", scheme.ID)
	}
	s.render(w, r, lang, "theme-preview", data)
}

// handleThemeCSS serves the active theme as a stylesheet
func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	doc := theme.NewDocument()
	s.provider.Resolved().ApplyTo(doc)

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(doc.CSS()))
}

// handleCatalogCSS serves one block per scheme using the live settings
func (s *Server) handleCatalogCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(theme.GenerateCatalogCSS(s.provider.Settings())))
}

// handleLogo serves the configured logo, or a generated placeholder
// when the file is missing
func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	if s.config.Server.AssetsDir != "" && s.config.Server.LogoFile != "" {
		if p, err := paths.SafeAssetPath(s.config.Server.AssetsDir, s.config.Server.LogoFile); err == nil {
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				http.ServeFile(w, r, p)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	placeholderLogo.Execute(w, s.provider.Resolved().Palette)
}

// placeholderLogo is a rounded tile with the initial letter
var placeholderLogo = template.Must(template.New("logo").Parse(
	`<svg xmlns="http://www.w3.org/2000/svg" width="40" height="40" viewBox="0 0 40 40">` +
		`<rect width="40" height="40" rx="8" fill="{{.Primary}}"/>` +
		`<text x="20" y="27" font-size="20" font-family="sans-serif" text-anchor="middle" fill="{{.Background}}">H</text>` +
		`</svg>`))

// handleStatic serves files from the assets directory
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.config.Server.AssetsDir == "" {
		http.NotFound(w, r)
		return
	}

	p, err := paths.SafeAssetPath(s.config.Server.AssetsDir, r.PathValue("file"))
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, paths.ErrPathTraversal) {
			status = http.StatusForbidden
		}
		writeError(w, status, err.Error())
		return
	}

	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, p)
}
