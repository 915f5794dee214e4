package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LoadCSV reads a catalog from a CSV file with a header row
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataError{Source: path, Err: err}
	}
	defer f.Close()

	c, err := parse(path, f)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Parse reads a CSV catalog from a stream
func Parse(r io.Reader) (*Catalog, error) {
	return parse("<stream>", r)
}

func parse(source string, r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, &DataError{Source: source, Err: fmt.Errorf("empty file")}
	}
	if err != nil {
		return nil, &DataError{Source: source, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &DataError{Source: source, Err: fmt.Errorf("malformed CSV: %w", err)}
	}

	return build(source, headers, rows)
}
