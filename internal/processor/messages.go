package processor

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/cropvoice/internal/advice"
	"codeberg.org/snonux/cropvoice/internal/audio"
	"codeberg.org/snonux/cropvoice/internal/catalog"
	"codeberg.org/snonux/cropvoice/internal/language"
	"codeberg.org/snonux/cropvoice/internal/translation"
)

// UserMessage converts a pipeline failure into a message for the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var notFound *catalog.NotFoundError
	var validation *advice.ValidationError
	var synth *audio.SynthesisError

	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("No information found for %q on %q. Pick a disease listed for this crop.",
			notFound.Disease, notFound.Crop)
	case errors.Is(err, catalog.ErrData):
		return fmt.Sprintf("The disease catalog could not be loaded: %v", err)
	case errors.As(err, &validation):
		return fmt.Sprintf("The catalog entry is incomplete: %s is missing.", validation.Field)
	case errors.Is(err, language.ErrUnknownLanguage):
		return fmt.Sprintf("This language is not supported: %v", err)
	case errors.Is(err, translation.ErrTranslation):
		return "Translation is unavailable right now, the advice is read in English."
	case errors.As(err, &synth):
		if errors.Is(err, context.DeadlineExceeded) {
			return "Creating the audio took too long. Please try again."
		}
		return fmt.Sprintf("The audio could not be created: %v", synth.Err)
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
