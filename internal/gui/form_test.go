package gui

import (
	"testing"

	"codeberg.org/snonux/cropvoice/internal/language"
)

func TestAccentChoice(t *testing.T) {
	langs := language.DefaultLanguages()

	opts, visible := accentChoice(langs, "English")
	if !visible {
		t.Fatal("accent selector hidden for English")
	}
	if len(opts) == 0 || opts[0] != "United States" {
		t.Errorf("English accents = %v", opts)
	}

	if _, visible := accentChoice(langs, "Swahili"); visible {
		t.Error("accent selector shown for Swahili")
	}
	if _, visible := accentChoice(langs, "Klingon"); visible {
		t.Error("accent selector shown for unknown language")
	}
}

func TestLanguageNames(t *testing.T) {
	names := languageNames(language.DefaultLanguages())
	if len(names) == 0 || names[0] != "English" {
		t.Errorf("languageNames() = %v", names)
	}
}

func TestFindLanguage(t *testing.T) {
	langs := language.DefaultLanguages()

	if l, ok := findLanguage(langs, "sw"); !ok || l.Name != "Swahili" {
		t.Errorf("findLanguage(sw) = %+v, %v", l, ok)
	}
	if _, ok := findLanguage(langs, "xx"); ok {
		t.Error("findLanguage(xx) matched")
	}
}

func TestCanConvert(t *testing.T) {
	tests := []struct {
		req  Request
		want bool
	}{
		{Request{Crop: "Maize", Disease: "Rust", Language: "English"}, true},
		{Request{Crop: "Maize", Disease: "", Language: "English"}, false},
		{Request{Crop: " ", Disease: "Rust", Language: "English"}, false},
		{Request{Crop: "Maize", Disease: "Rust"}, false},
	}

	for _, tt := range tests {
		if got := canConvert(tt.req); got != tt.want {
			t.Errorf("canConvert(%+v) = %v, want %v", tt.req, got, tt.want)
		}
	}
}
