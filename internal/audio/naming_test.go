package audio

import (
	"strings"
	"testing"
	"unicode/utf8"

	"codeberg.org/snonux/cropvoice/internal"
)

func TestArtifactName(t *testing.T) {
	tests := []struct {
		crop, disease, format string
		want                  string
	}{
		{"Maize", "Rust", "mp3", "Maize_Rust.mp3"},
		{"Maize", "Leaf Blight", "mp3", "Maize_Leaf_Blight.mp3"},
		{" Cassava ", "Mosaic/Virus", "", "Cassava_Mosaic_Virus.mp3"},
		{"Tomato", "Early Blight", ".WAV", "Tomato_Early_Blight.wav"},
		{"Teff", "Rust", "mp3", "Teff_Rust.mp3"},
		{"ጤፍ", "ዝገት", "mp3", "ጤፍ_ዝገት.mp3"},
		{"../etc", "passwd", "mp3", "___etc_passwd.mp3"},
	}

	for _, tt := range tests {
		got := ArtifactName(tt.crop, tt.disease, tt.format)
		if got != tt.want {
			t.Errorf("ArtifactName(%q, %q, %q) = %q, want %q", tt.crop, tt.disease, tt.format, got, tt.want)
		}
	}
}

func TestArtifactNameTruncation(t *testing.T) {
	long := strings.Repeat("Phytophthora", 10)

	a := ArtifactName("Potato", long+"A", "mp3")
	b := ArtifactName("Potato", long+"B", "mp3")

	if a == b {
		t.Fatalf("long names sharing a prefix collided: %q", a)
	}

	stem := strings.TrimSuffix(a, ".mp3")
	if n := utf8.RuneCountInString(stem); n != internal.MaxFileStemLength {
		t.Errorf("stem length = %d, want %d", n, internal.MaxFileStemLength)
	}
	if !strings.HasPrefix(stem, "Potato_Phytophthora") {
		t.Errorf("truncated stem lost its prefix: %q", stem)
	}

	// Deterministic
	if again := ArtifactName("Potato", long+"A", "mp3"); again != a {
		t.Errorf("ArtifactName not deterministic: %q vs %q", a, again)
	}
}
