package internal

import (
	"crypto/md5"
	"encoding/hex"
	"unicode"
)

// Version is the cropvoice release version
const Version = "0.3.0"

// MaxFileStemLength bounds generated file names (without extension)
const MaxFileStemLength = 64

// SanitizeFilename creates a safe filename from a string. Spaces and path
// separators become underscores, as does anything that is not a letter,
// digit, dash or underscore.
func SanitizeFilename(s string) string {
	runes := make([]rune, 0, len(s))
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			runes = append(runes, r)
		} else {
			runes = append(runes, '_')
		}
	}
	return string(runes)
}

// TruncateRunes shortens s to at most n runes
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ShortHash returns the first 8 hex chars of the MD5 of s
func ShortHash(s string) string {
	hash := md5.Sum([]byte(s))
	return hex.EncodeToString(hash[:])[:8]
}

// isAlphaNumeric checks if a rune is a letter or digit in any script
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
