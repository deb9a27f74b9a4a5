package domain

import "fmt"

// FormatError means a source file does not match the shape its format tag
// promises. It is fatal to the job that was reading the file; no partial load
// is attempted.
type FormatError struct {
	Source string
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s does not match the %s format: %s", e.Source, e.Path, e.Source, e.Reason)
}

// MappingError means a single record could not be normalized into the
// destination vocabulary. The record is skipped and counted; the job continues.
type MappingError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map %s=%q: %s", e.Field, e.Value, e.Reason)
}

// ValidationError means a normalized record fails a business rule, e.g. a
// Result with neither a numeric value nor a recognized non-detect qualifier.
// The record is skipped and counted; the job continues.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.Field, e.Reason)
}

// GeometryError means station coordinates are outside the valid WGS-84 range.
// The station still loads, with a null geometry; the error is counted.
type GeometryError struct {
	Lon float64
	Lat float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("coordinates (%g, %g) outside valid longitude/latitude range", e.Lon, e.Lat)
}

// LoadError means a database write failed. The current batch rolls back,
// previously committed batches stand, and the job ends in Failed.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
