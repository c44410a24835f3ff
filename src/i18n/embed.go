package i18n

import (
	"embed"
	"sync"
)

//go:embed locales/*.json
var localesFS embed.FS

var (
	defaultManager     *Manager
	defaultManagerErr  error
	defaultManagerOnce sync.Once
)

// DefaultManager returns the shared manager over the embedded en/zh
// translations
func DefaultManager() (*Manager, error) {
	defaultManagerOnce.Do(func() {
		m := NewManager(English, DefaultSupportedLanguages())
		if err := m.LoadFromFS(localesFS, "locales"); err != nil {
			defaultManagerErr = err
			return
		}
		defaultManager = m
	})
	return defaultManager, defaultManagerErr
}

// GetTranslations returns the embedded table for language: English for
// "en", Chinese for anything else
func GetTranslations(language string) Translations {
	m, err := DefaultManager()
	if err != nil {
		return Translations{}
	}
	return m.Translations(language)
}

// LocalesFS returns the embedded locales filesystem for external use
func LocalesFS() embed.FS {
	return localesFS
}
