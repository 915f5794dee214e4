package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTable is the table read from SQLite catalogs
const DefaultTable = "diseases"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads a catalog from a table of a SQLite database. The table
// uses the same column names as the CSV format.
func LoadSQLite(path, table string) (*Catalog, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, &DataError{Source: path, Err: fmt.Errorf("invalid table name %q", table)}
	}

	// sql.Open would silently create a missing database
	if _, err := os.Stat(path); err != nil {
		return nil, &DataError{Source: path, Err: err}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &DataError{Source: path, Err: err}
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, &DataError{Source: path, Err: fmt.Errorf("failed to query table %s: %w", table, err)}
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, &DataError{Source: path, Err: err}
	}

	var records [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(headers))
		dest := make([]any, len(headers))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, &DataError{Source: path, Err: fmt.Errorf("failed to scan row: %w", err)}
		}

		row := make([]string, len(headers))
		for i, v := range values {
			row[i] = v.String
		}
		records = append(records, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DataError{Source: path, Err: err}
	}

	return build(path, headers, records)
}
