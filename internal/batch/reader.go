package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Separator splits the fields of a batch line
const Separator = "|"

// Entry is one requested conversion
type Entry struct {
	Line     int
	Crop     string
	Disease  string
	Language string // empty means the default language
	Accent   string
}

// ReadBatchFile reads requests from a file and returns Entry slice
// Supports formats:
// - "Maize | Rust" (default language)
// - "Maize | Rust | Swahili"
// - "Maize | Rust | English | Australia"
// Blank lines and lines starting with '#' are ignored.
func ReadBatchFile(filename string) ([]Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads batch entries from r
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, Separator)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 || len(parts) > 4 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("line %d: expected 'crop | disease [| language [| accent]]', got %q", lineNo, line)
		}

		entry := Entry{Line: lineNo, Crop: parts[0], Disease: parts[1]}
		if len(parts) > 2 {
			entry.Language = parts[2]
		}
		if len(parts) > 3 {
			entry.Accent = parts[3]
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return entries, nil
}
