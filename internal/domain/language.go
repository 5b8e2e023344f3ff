package domain

import (
	"fmt"
	"strings"
)

// Language is a target language the learner practises.
type Language string

// Supported languages.
const (
	LanguageDutch   Language = "Dutch"
	LanguageItalian Language = "Italian"
	LanguageFrench  Language = "French"
	LanguageSpanish Language = "Spanish"
	LanguageGerman  Language = "German"
)

// DefaultLanguage is used when a learner has not chosen a language yet.
const DefaultLanguage = LanguageDutch

// LanguageInfo describes how a language is presented and pronounced.
type LanguageInfo struct {
	Name   Language `json:"name"`
	Flag   string   `json:"flag"`
	Locale string   `json:"locale"`
}

// Languages lists every supported language in display order.
var Languages = []LanguageInfo{
	{Name: LanguageDutch, Flag: "🇳🇱", Locale: "nl-NL"},
	{Name: LanguageItalian, Flag: "🇮🇹", Locale: "it-IT"},
	{Name: LanguageFrench, Flag: "🇫🇷", Locale: "fr-FR"},
	{Name: LanguageSpanish, Flag: "🇪🇸", Locale: "es-ES"},
	{Name: LanguageGerman, Flag: "🇩🇪", Locale: "de-DE"},
}

// ParseLanguage matches s case-insensitively against the supported languages.
func ParseLanguage(s string) (Language, error) {
	for _, info := range Languages {
		if strings.EqualFold(string(info.Name), strings.TrimSpace(s)) {
			return info.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// Info returns the presentation details for l. ok is false for unsupported languages.
func (l Language) Info() (LanguageInfo, bool) {
	for _, info := range Languages {
		if info.Name == l {
			return info, true
		}
	}
	return LanguageInfo{}, false
}

// Locale returns the BCP-47 locale used for pronunciation, e.g. "nl-NL".
func (l Language) Locale() string {
	info, _ := l.Info()
	return info.Locale
}

func (l Language) String() string {
	return string(l)
}
