// Package pipelineerror defines the error taxonomy of the analysis run.
// Every error here is fatal: it propagates unhandled to the run boundary
// and no partial output is written.
package pipelineerror

import "fmt"

// NotFoundError indicates a missing input file or missing required sheets.
type NotFoundError struct {
	Path      string
	Missing   []string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("input file not found: %s", e.Path)
	}
	return fmt.Sprintf("missing sheets in '%s': %v. Available sheets: %v",
		e.Path, e.Missing, e.Available)
}

// SchemaError indicates a loaded table lacks required columns.
type SchemaError struct {
	Table     string
	Missing   []string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns in '%s': %v. Available columns: %v",
		e.Table, e.Missing, e.Available)
}

// DataQualityError indicates the data itself cannot support the analysis:
// an unparseable operation date, or zero months with usable data.
type DataQualityError struct {
	Table  string
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *DataQualityError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: bad value for %s='%s': %s", e.Table, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Reason)
}

func (e *DataQualityError) Unwrap() error {
	return e.Err
}

// SheetNameError indicates no unique output tab name could be produced
// after exhausting the numeric suffixes.
type SheetNameError struct {
	Name string
}

func (e *SheetNameError) Error() string {
	return fmt.Sprintf("could not generate a unique sheet name for '%s'", e.Name)
}
