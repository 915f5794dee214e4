package language

import (
	"errors"
	"fmt"
	"strings"
)

// SourceCode is the language the catalog text is written in
const SourceCode = "en"

// ErrUnknownLanguage is returned for selections that are not in the table
var ErrUnknownLanguage = errors.New("unknown language")

// Accent is a regional pronunciation variant of a language
type Accent struct {
	Name string `mapstructure:"name"`
	Code string `mapstructure:"code"` // regional code, e.g. "co.uk"
}

// Language is one selectable output language
type Language struct {
	Name    string   `mapstructure:"name"`
	Code    string   `mapstructure:"code"`
	Accents []Accent `mapstructure:"accents"`
}

// HasAccents reports whether the language supports accent selection
func (l Language) HasAccents() bool {
	return len(l.Accents) > 0
}

// DefaultAccent returns the first accent, or the zero value
func (l Language) DefaultAccent() Accent {
	if len(l.Accents) == 0 {
		return Accent{}
	}
	return l.Accents[0]
}

// Selection is a resolved language plus the accent that applies to it
type Selection struct {
	Language Language
	Accent   Accent
}

// Code returns the language code of the selection
func (s Selection) Code() string {
	return s.Language.Code
}

// String renders the selection for logs and status lines
func (s Selection) String() string {
	if s.Accent.Name == "" {
		return s.Language.Name
	}
	return fmt.Sprintf("%s (%s)", s.Language.Name, s.Accent.Name)
}

// Table is an ordered set of languages
type Table struct {
	languages []Language
}

// englishAccents mirrors the regional Google TLDs used for English voices
var englishAccents = []Accent{
	{Name: "United States", Code: "us"},
	{Name: "United Kingdom", Code: "co.uk"},
	{Name: "Australia", Code: "com.au"},
	{Name: "Canada", Code: "ca"},
	{Name: "India", Code: "co.in"},
	{Name: "Ireland", Code: "ie"},
	{Name: "South Africa", Code: "co.za"},
}

// DefaultLanguages returns the built-in language list
func DefaultLanguages() []Language {
	return []Language{
		{Name: "English", Code: "en", Accents: append([]Accent(nil), englishAccents...)},
		{Name: "Amharic", Code: "am"},
		{Name: "Swahili", Code: "sw"},
		{Name: "Hausa", Code: "ha"},
		{Name: "Yoruba", Code: "yo"},
		{Name: "Zulu", Code: "zu"},
	}
}

// DefaultTable returns a table built from DefaultLanguages
func DefaultTable() *Table {
	t, _ := NewTable(DefaultLanguages())
	return t
}

// NewTable validates and builds a language table
func NewTable(languages []Language) (*Table, error) {
	if len(languages) == 0 {
		return nil, fmt.Errorf("language table is empty")
	}

	seenNames := make(map[string]bool)
	seenCodes := make(map[string]bool)
	for _, l := range languages {
		name := strings.ToLower(strings.TrimSpace(l.Name))
		code := strings.ToLower(strings.TrimSpace(l.Code))
		if name == "" || code == "" {
			return nil, fmt.Errorf("language entry needs both name and code: %+v", l)
		}
		if seenNames[name] {
			return nil, fmt.Errorf("duplicate language name: %s", l.Name)
		}
		if seenCodes[code] {
			return nil, fmt.Errorf("duplicate language code: %s", l.Code)
		}
		seenNames[name] = true
		seenCodes[code] = true
	}

	return &Table{languages: append([]Language(nil), languages...)}, nil
}

// Languages returns the languages in display order
func (t *Table) Languages() []Language {
	return append([]Language(nil), t.languages...)
}

// Names returns the display names in order
func (t *Table) Names() []string {
	names := make([]string, len(t.languages))
	for i, l := range t.languages {
		names[i] = l.Name
	}
	return names
}

// Find looks a language up by display name or code, case-insensitively
func (t *Table) Find(nameOrCode string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrCode))
	for _, l := range t.languages {
		if strings.ToLower(l.Name) == key || strings.ToLower(l.Code) == key {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLanguage, nameOrCode, strings.Join(t.Names(), ", "))
}

// Select resolves a language and accent. The accent is only honoured for
// languages that declare accents; for all others it is ignored. An empty or
// unknown accent falls back to the language default.
func (t *Table) Select(nameOrCode, accent string) (Selection, error) {
	lang, err := t.Find(nameOrCode)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Language: lang}
	if !lang.HasAccents() {
		return sel, nil
	}

	sel.Accent = lang.DefaultAccent()
	key := strings.ToLower(strings.TrimSpace(accent))
	if key == "" {
		return sel, nil
	}
	for _, a := range lang.Accents {
		if strings.ToLower(a.Name) == key || strings.ToLower(a.Code) == key {
			sel.Accent = a
			break
		}
	}
	return sel, nil
}

// AccentNames returns the accent names for a language in order
func (l Language) AccentNames() []string {
	names := make([]string, len(l.Accents))
	for i, a := range l.Accents {
		names[i] = a.Name
	}
	return names
}
