package audio

import (
	"strings"

	"codeberg.org/snonux/cropvoice/internal"
)

// ArtifactName derives the audio file name for a crop/disease pair:
// "<crop>_<disease>" sanitized, truncated and given the format extension.
// Truncated names keep a short hash of the full stem so that long names
// sharing a prefix do not collide.
func ArtifactName(crop, disease, format string) string {
	stem := internal.SanitizeFilename(strings.TrimSpace(crop) + "_" + strings.TrimSpace(disease))

	if truncated := internal.TruncateRunes(stem, internal.MaxFileStemLength); truncated != stem {
		hash := internal.ShortHash(stem)
		stem = internal.TruncateRunes(stem, internal.MaxFileStemLength-len(hash)-1) + "_" + hash
	}

	return stem + "." + normalizeFormat(format)
}

func normalizeFormat(format string) string {
	format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if format == "" {
		return "mp3"
	}
	return format
}
