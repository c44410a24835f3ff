package i18n

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translations is a flattened translation table: nested keys are joined
// with dots and list items are indexed ("versionFeatures.0").
type Translations map[string]string

// Get returns the value for key, or key itself when missing
func (t Translations) Get(key string) string {
	if v, ok := t[key]; ok {
		return v
	}
	return key
}

// List returns the items stored under key.0, key.1, ... in order
func (t Translations) List(key string) []string {
	var items []string
	for i := 0; ; i++ {
		v, ok := t[key+"."+strconv.Itoa(i)]
		if !ok {
			return items
		}
		items = append(items, v)
	}
}

// Keys returns the sorted keys
func (t Translations) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Manager handles translations and language detection
type Manager struct {
	mu           sync.RWMutex
	translations map[string]Translations // lang -> key -> value
	defaultLang  string
	supported    []string
	matcher      language.Matcher
}

// NewManager creates a new i18n manager
func NewManager(defaultLang string, supported []string) *Manager {
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(code))
	}

	return &Manager{
		translations: make(map[string]Translations),
		defaultLang:  defaultLang,
		supported:    supported,
		matcher:      language.NewMatcher(tags),
	}
}

// LoadFromFS loads <dir>/<lang>.json for every supported language.
// Nested keys are flattened with dot notation:
// {"drawer": {"title": "Theme Settings"}} -> "drawer.title"
func (m *Manager) LoadFromFS(fsys fs.FS, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, lang := range m.supported {
		path := fmt.Sprintf("%s/%s.json", dir, lang)
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			// Skip missing languages, just use default
			continue
		}

		var raw interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		translations := make(Translations)
		flattenTranslations("", raw, translations)
		m.translations[lang] = translations
	}

	if _, ok := m.translations[m.defaultLang]; !ok {
		return fmt.Errorf("default language %s not found", m.defaultLang)
	}

	return nil
}

// flattenTranslations recursively flattens nested JSON into dot-notation keys
func flattenTranslations(prefix string, value interface{}, result Translations) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}

	switch v := value.(type) {
	case map[string]interface{}:
		for key, val := range v {
			flattenTranslations(join(key), val, result)
		}
	case []interface{}:
		for i, val := range v {
			flattenTranslations(join(strconv.Itoa(i)), val, result)
		}
	case string:
		if prefix != "" {
			result[prefix] = v
		}
	}
}

// LoadFromMap loads translations from a map (useful for testing)
func (m *Manager) LoadFromMap(lang string, translations map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translations[lang] = Translations(translations)
}

// Translations returns a copy of the table for lang. English is served
// only for "en"; every other code, known or not, gets Chinese.
func (m *Manager) Translations(lang string) Translations {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code := Chinese
	if lang == English {
		code = English
	}
	src, ok := m.translations[code]
	if !ok {
		src = m.translations[m.defaultLang]
	}
	out := make(Translations, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// T translates a key with optional format arguments
func (m *Manager) T(lang, key string, args ...interface{}) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range []string{lang, m.defaultLang} {
		if trans, ok := m.translations[l]; ok {
			if val, ok := trans[key]; ok {
				if len(args) > 0 {
					return fmt.Sprintf(val, args...)
				}
				return val
			}
		}
	}

	// Return key if not found
	return key
}

// DetectLanguage detects the preferred language from the request
// Priority: 1. Cookie 2. Accept-Language header 3. Default
func (m *Manager) DetectLanguage(r *http.Request) string {
	if cookie, err := r.Cookie("lang"); err == nil {
		lang := strings.ToLower(cookie.Value)
		if m.IsSupported(lang) {
			return lang
		}
	}

	if accept := r.Header.Get("Accept-Language"); accept != "" {
		if lang := m.matchAcceptLanguage(accept); lang != "" {
			return lang
		}
	}

	return m.defaultLang
}

// matchAcceptLanguage returns the best supported language for an
// Accept-Language header, or "" when nothing matches
func (m *Manager) matchAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(m.supported) {
		return ""
	}
	return m.supported[idx]
}

// IsSupported checks if a language is supported
func (m *Manager) IsSupported(lang string) bool {
	for _, l := range m.supported {
		if l == lang {
			return true
		}
	}
	return false
}

// SupportedLanguages returns the list of supported languages
func (m *Manager) SupportedLanguages() []Language {
	var result []Language
	for _, code := range m.supported {
		if lang, ok := Languages[code]; ok {
			result = append(result, lang)
		}
	}
	return result
}

// DefaultLanguage returns the default language code
func (m *Manager) DefaultLanguage() string {
	return m.defaultLang
}

// Translator is a language-specific translator for use in templates
type Translator struct {
	manager *Manager
	lang    string
}

// NewTranslator creates a translator for a specific language
func (m *Manager) NewTranslator(lang string) *Translator {
	if !m.IsSupported(lang) {
		lang = m.defaultLang
	}
	return &Translator{
		manager: m,
		lang:    lang,
	}
}

// T translates a key
func (t *Translator) T(key string, args ...interface{}) string {
	return t.manager.T(t.lang, key, args...)
}

// Lang returns the current language code
func (t *Translator) Lang() string {
	return t.lang
}

// Languages returns all supported languages
func (t *Translator) Languages() []Language {
	return t.manager.SupportedLanguages()
}

// TemplateFuncs returns template functions for i18n
func (m *Manager) TemplateFuncs(lang string) template.FuncMap {
	t := m.NewTranslator(lang)
	return template.FuncMap{
		"t": func(key string, args ...interface{}) string {
			return t.T(key, args...)
		},
		"lang": func() string {
			return t.Lang()
		},
		"languages": func() []Language {
			return t.Languages()
		},
	}
}

// SetLanguageCookie sets the language preference cookie
func SetLanguageCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "lang",
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
