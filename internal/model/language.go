package model

// Language is a display language code
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

// DefaultLanguage is used when no valid language is configured
const DefaultLanguage = LanguageEnglish

// Other returns the language the toggle switches to
func (l Language) Other() Language {
	if l == LanguageEnglish {
		return LanguageHindi
	}
	return LanguageEnglish
}

// ParseLanguage maps a language code to a Language, falling back to the default
func ParseLanguage(code string) Language {
	switch Language(code) {
	case LanguageEnglish, LanguageHindi:
		return Language(code)
	default:
		return DefaultLanguage
	}
}
