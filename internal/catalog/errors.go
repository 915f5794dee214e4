package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrData marks failures to read or parse the catalog source
	ErrData = errors.New("catalog data error")
	// ErrNotFound marks lookups for a crop/disease pair that is not in the catalog
	ErrNotFound = errors.New("disease not found")
)

// DataError reports a missing, unreadable or malformed catalog source
type DataError struct {
	Source string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Source, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrData
func (e *DataError) Is(target error) bool { return target == ErrData }

// NotFoundError reports a lookup miss
type NotFoundError struct {
	Crop    string
	Disease string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record for disease %q of crop %q", e.Disease, e.Crop)
}

// Is lets errors.Is match ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
