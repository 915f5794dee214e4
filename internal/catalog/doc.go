// Package catalog loads the crop disease table and answers lookups by
// crop and disease name. A Catalog is immutable once loaded and safe to
// share between goroutines.
package catalog
