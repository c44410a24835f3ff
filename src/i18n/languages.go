package i18n

import "golang.org/x/text/language"

// Language represents a supported language
type Language struct {
	Code       string       // BCP 47 language code (e.g., "en", "zh")
	Name       string       // English name
	NativeName string       // Native name
	Tag        language.Tag // matcher tag
}

// Supported language codes
const (
	English = "en"
	Chinese = "zh"
)

// Languages is the map of all supported languages
var Languages = map[string]Language{
	English: {
		Code:       English,
		Name:       "English",
		NativeName: "English",
		Tag:        language.English,
	},
	Chinese: {
		Code:       Chinese,
		Name:       "Chinese",
		NativeName: "中文",
		Tag:        language.Chinese,
	},
}

// DefaultSupportedLanguages returns the supported languages in display order
func DefaultSupportedLanguages() []string {
	return []string{English, Chinese}
}

// GetLanguage returns language info by code
func GetLanguage(code string) (Language, bool) {
	lang, ok := Languages[code]
	return lang, ok
}

// IsValidLanguageCode checks if a language code is valid
func IsValidLanguageCode(code string) bool {
	_, ok := Languages[code]
	return ok
}
