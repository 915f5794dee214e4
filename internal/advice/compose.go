// Package advice renders the spoken disease management summary.
package advice

import (
	"errors"
	"fmt"
	"strings"

	"codeberg.org/snonux/cropvoice/internal/catalog"
)

// ErrValidation marks records that cannot be composed
var ErrValidation = errors.New("invalid record")

// ValidationError reports a record field that is required but missing
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s is required", e.Field)
}

// Is lets errors.Is match ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Labels in output order
const (
	LabelDisease    = "Disease"
	LabelCauses     = "Causes"
	LabelPrevention = "Prevention"
	LabelTreatment  = "Treatment"
)

// Compose renders exactly four lines: Disease, Causes, Prevention and
// Treatment, each as "Label: value". Only the disease name is required;
// empty detail fields still produce their line.
func Compose(rec catalog.Record) (string, error) {
	disease := flatten(rec.Disease)
	if disease == "" {
		return "", &ValidationError{Field: LabelDisease}
	}

	lines := []string{
		line(LabelDisease, disease),
		line(LabelCauses, flatten(rec.Causes)),
		line(LabelPrevention, flatten(rec.Prevention)),
		line(LabelTreatment, flatten(rec.Treatment)),
	}
	return strings.Join(lines, "\n"), nil
}

func line(label, value string) string {
	if value == "" {
		return label + ":"
	}
	return label + ": " + value
}

// flatten keeps multi-line cell values on a single output line
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
