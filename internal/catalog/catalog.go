package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names after header normalization
const (
	ColumnCrop       = "Crop"
	ColumnDisease    = "Crop Disease"
	ColumnCauses     = "Causes"
	ColumnPrevention = "Prevention"
	ColumnTreatment  = "Treatment"
)

var requiredColumns = []string{ColumnCrop, ColumnDisease, ColumnCauses, ColumnPrevention, ColumnTreatment}

// Record is one disease entry of the catalog
type Record struct {
	Crop       string
	Disease    string
	Causes     string
	Prevention string
	Treatment  string
}

type key struct {
	crop    string
	disease string
}

// Catalog is the read-only crop/disease index
type Catalog struct {
	source   string
	crops    []string
	diseases map[string][]string
	records  map[key]Record
}

// Load reads a catalog from a file, choosing the loader by extension
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path, DefaultTable)
	case ".csv", "":
		return LoadCSV(path)
	default:
		return nil, &DataError{Source: path, Err: fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))}
	}
}

// Source returns where the catalog was loaded from
func (c *Catalog) Source() string {
	return c.source
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.records)
}

// Crops returns the distinct crop names in first-seen order
func (c *Catalog) Crops() []string {
	return append([]string(nil), c.crops...)
}

// Diseases returns the distinct disease names of a crop in first-seen order
func (c *Catalog) Diseases(crop string) []string {
	return append([]string(nil), c.diseases[crop]...)
}

// Lookup returns the record for a crop/disease pair. Matching is exact.
func (c *Catalog) Lookup(crop, disease string) (Record, error) {
	rec, ok := c.records[key{crop: crop, disease: disease}]
	if !ok {
		return Record{}, &NotFoundError{Crop: crop, Disease: disease}
	}
	return rec, nil
}

// NormalizeHeader trims, collapses inner whitespace and title-cases a column name
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.Join(strings.Fields(h), " ")
	return cases.Title(language.English).String(h)
}

// build indexes raw rows under normalized headers
func build(source string, headers []string, rows [][]string) (*Catalog, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		name := NormalizeHeader(h)
		if _, dup := index[name]; dup {
			return nil, &DataError{Source: source, Err: fmt.Errorf("duplicate column %q", name)}
		}
		index[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &DataError{Source: source, Err: fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	c := &Catalog{
		source:   source,
		diseases: make(map[string][]string),
		records:  make(map[key]Record),
	}

	for n, row := range rows {
		rec := Record{
			Crop:       cell(row, ColumnCrop),
			Disease:    cell(row, ColumnDisease),
			Causes:     cell(row, ColumnCauses),
			Prevention: cell(row, ColumnPrevention),
			Treatment:  cell(row, ColumnTreatment),
		}
		if rec.Crop == "" || rec.Disease == "" {
			log.Warn("skipping catalog row without crop or disease", "source", source, "row", n+2)
			continue
		}

		k := key{crop: rec.Crop, disease: rec.Disease}
		if _, exists := c.records[k]; exists {
			log.Warn("duplicate catalog entry, keeping the first", "crop", rec.Crop, "disease", rec.Disease)
			continue
		}

		if _, seen := c.diseases[rec.Crop]; !seen {
			c.crops = append(c.crops, rec.Crop)
		}
		c.diseases[rec.Crop] = append(c.diseases[rec.Crop], rec.Disease)
		c.records[k] = rec
	}

	if len(c.records) == 0 {
		return nil, &DataError{Source: source, Err: fmt.Errorf("no records")}
	}

	log.Debug("catalog loaded", "source", source, "crops", len(c.crops), "records", len(c.records))
	return c, nil
}
