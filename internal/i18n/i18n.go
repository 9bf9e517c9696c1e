// Package i18n provides internationalization support for menu labels and notifications
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	// DefaultLanguage is the fallback language when no translation is available
	DefaultLanguage = "en"
	// RussianMessages is the Russian translation
	RussianMessages = "ru"
	// VietnameseMessages is the Vietnamese translation
	VietnameseMessages = "vi"
)

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Vietnamese,
})

// Localizer provides translation functionality
type Localizer struct {
	language string
	messages map[string]string
}

// NewLocalizer creates a new localizer for the specified language. Regional
// or otherwise unlisted locales are matched to the closest supported language.
func NewLocalizer(locale string) *Localizer {
	lang := Match(locale)
	return &Localizer{
		language: lang,
		messages: getMessages(lang),
	}
}

// Language returns the matched language code
func (l *Localizer) Language() string {
	return l.language
}

// T translates a message key, with optional parameters for formatting
func (l *Localizer) T(key string, args ...interface{}) string {
	if message, exists := l.messages[key]; exists {
		if len(args) > 0 {
			return fmt.Sprintf(message, args...)
		}
		return message
	}

	// Fallback to English if key not found in current language
	if l.language != DefaultLanguage {
		if fallbackMessage, exists := getMessages(DefaultLanguage)[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(fallbackMessage, args...)
			}
			return fallbackMessage
		}
	}

	// Ultimate fallback: return the key itself
	return key
}

// Match maps a locale such as "ru-RU" or "vi_VN" to a supported language code.
func Match(locale string) string {
	if locale == "" {
		return DefaultLanguage
	}
	tag, _ := language.MatchStrings(matcher, locale)
	base, confidence := tag.Base()
	if confidence == language.No {
		return DefaultLanguage
	}
	for _, lang := range GetSupportedLanguages() {
		if base.String() == lang {
			return lang
		}
	}
	return DefaultLanguage
}

// GetSupportedLanguages returns list of supported language codes
func GetSupportedLanguages() []string {
	return []string{DefaultLanguage, RussianMessages, VietnameseMessages}
}

// getMessages returns the message map for a given language
func getMessages(language string) map[string]string {
	switch language {
	case DefaultLanguage:
		return englishMessages
	case RussianMessages:
		return russianMessages
	case VietnameseMessages:
		return vietnameseMessages
	default:
		return englishMessages // Default to English
	}
}
