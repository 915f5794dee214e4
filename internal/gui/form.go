package gui

import (
	"strings"

	"codeberg.org/snonux/cropvoice/internal/language"
)

// languageNames lists the display names for the language selector
func languageNames(langs []language.Language) []string {
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = l.Name
	}
	return names
}

// findLanguage matches a selector value against the table
func findLanguage(langs []language.Language, nameOrCode string) (language.Language, bool) {
	for _, l := range langs {
		if strings.EqualFold(l.Name, nameOrCode) || strings.EqualFold(l.Code, nameOrCode) {
			return l, true
		}
	}
	return language.Language{}, false
}

// accentChoice returns the accent options for a language and whether the
// accent selector should be shown at all
func accentChoice(langs []language.Language, selected string) ([]string, bool) {
	l, ok := findLanguage(langs, selected)
	if !ok || !l.HasAccents() {
		return nil, false
	}
	return l.AccentNames(), true
}

// canConvert reports whether the form holds a complete request
func canConvert(req Request) bool {
	return strings.TrimSpace(req.Crop) != "" &&
		strings.TrimSpace(req.Disease) != "" &&
		strings.TrimSpace(req.Language) != ""
}
