package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/cropvoice/internal/language"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if config.Speed != 140 {
		t.Errorf("Expected default speed 140, got %d", config.Speed)
	}

	if config.Pitch != 50 {
		t.Errorf("Expected default pitch 50, got %d", config.Pitch)
	}
}

func TestVoiceFor(t *testing.T) {
	table := language.DefaultTable()

	tests := []struct {
		lang, accent string
		want         string
	}{
		{"English", "", "en-us"},
		{"English", "United Kingdom", "en-gb"},
		{"English", "com.au", "en-gb"},
		{"Swahili", "", "sw"},
		{"Swahili", "co.uk", "sw"},
		{"Amharic", "", "am"},
	}

	for _, tt := range tests {
		sel, err := table.Select(tt.lang, tt.accent)
		if err != nil {
			t.Fatalf("Select(%q) error: %v", tt.lang, err)
		}
		if got := VoiceFor(sel); got != tt.want {
			t.Errorf("VoiceFor(%s) = %q, want %q", sel, got, tt.want)
		}
	}

	if got := VoiceFor(language.Selection{}); got != "en" {
		t.Errorf("VoiceFor(empty) = %q, want en", got)
	}
}

func TestSetSpeed(t *testing.T) {
	espeak := &ESpeak{config: DefaultConfig()}

	tests := []struct {
		input    int
		expected int
	}{
		{150, 150},
		{50, 80},
		{500, 450},
		{200, 200},
	}

	for _, tt := range tests {
		espeak.SetSpeed(tt.input)
		if espeak.config.Speed != tt.expected {
			t.Errorf("SetSpeed(%d) resulted in speed %d, expected %d",
				tt.input, espeak.config.Speed, tt.expected)
		}
	}
}

func TestSetPitch(t *testing.T) {
	espeak := &ESpeak{config: DefaultConfig()}

	espeak.SetPitch(-5)
	if espeak.config.Pitch != 0 {
		t.Errorf("SetPitch(-5) = %d, want 0", espeak.config.Pitch)
	}
	espeak.SetPitch(120)
	if espeak.config.Pitch != 99 {
		t.Errorf("SetPitch(120) = %d, want 99", espeak.config.Pitch)
	}
}

func TestESpeakGenerateWAV_Integration(t *testing.T) {
	if checkESpeakInstalled() != nil {
		t.Skip("espeak-ng not installed, skipping integration test")
	}

	provider, err := NewESpeakProvider(nil)
	if err != nil {
		t.Fatalf("NewESpeakProvider() error: %v", err)
	}

	sel, _ := language.DefaultTable().Select("English", "")
	outputFile := filepath.Join(t.TempDir(), "Maize_Rust.wav")
	if err := provider.GenerateAudio(context.Background(), Speech{Text: "Crop: Maize", Selection: sel}, outputFile); err != nil {
		t.Fatalf("GenerateAudio() failed: %v", err)
	}

	info, err := os.Stat(outputFile)
	if err != nil {
		t.Fatalf("Output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Output file is empty")
	}
}
