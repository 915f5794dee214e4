package advice

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/cropvoice/internal/catalog"
)

func TestCompose(t *testing.T) {
	rec := catalog.Record{
		Crop:       "Maize",
		Disease:    "Rust",
		Causes:     "Fungus",
		Prevention: "Rotate crops",
		Treatment:  "Apply fungicide",
	}

	text, err := Compose(rec)
	require.NoError(t, err)
	assert.Equal(t, "Disease: Rust\nCauses: Fungus\nPrevention: Rotate crops\nTreatment: Apply fungicide", text)
}

func TestComposeAlwaysFourLines(t *testing.T) {
	tests := []struct {
		name string
		rec  catalog.Record
	}{
		{"empty details", catalog.Record{Disease: "Rust"}},
		{"multi-line causes", catalog.Record{Disease: "Rust", Causes: "Fungus\nspread by wind", Treatment: "Spray\r\nearly"}},
		{"whitespace only", catalog.Record{Disease: "Rust", Causes: "   ", Prevention: "\t", Treatment: "\n"}},
		{"colons in values", catalog.Record{Disease: "Rust", Causes: "Puccinia: sorghi"}},
	}

	labels := []string{LabelDisease, LabelCauses, LabelPrevention, LabelTreatment}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Compose(tt.rec)
			require.NoError(t, err)

			lines := strings.Split(text, "\n")
			require.Len(t, lines, 4)
			for i, label := range labels {
				assert.True(t, strings.HasPrefix(lines[i], label+":"), "line %d = %q", i, lines[i])
			}
		})
	}
}

func TestComposeFlattensValues(t *testing.T) {
	text, err := Compose(catalog.Record{Disease: "Rust", Causes: "Fungus\nspread   by wind"})
	require.NoError(t, err)
	assert.Contains(t, text, "Causes: Fungus spread by wind\n")
	assert.True(t, strings.HasSuffix(text, "Treatment:"))
}

func TestComposeRequiresDisease(t *testing.T) {
	_, err := Compose(catalog.Record{Crop: "Maize", Causes: "Fungus"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, LabelDisease, ve.Field)
}
