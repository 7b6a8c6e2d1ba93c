// Package parsererror defines the typed errors produced by the conversion
// pipeline. File-level and header-resolution errors abort a conversion;
// row-level errors only skip the offending row.
package parsererror

import (
	"fmt"
	"strings"
)

// MissingFieldError reports that a mandatory semantic field could not be
// matched against any header column.
type MissingFieldError struct {
	Field    string
	Accepted []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no column found for '%s' in the CSV header; accepted spellings: %s",
		e.Field, strings.Join(e.Accepted, ", "))
}

// RowError reports a single data row that could not be parsed. It carries
// the row content for diagnostics.
type RowError struct {
	Row  int
	Line string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v (content: %q)", e.Row, e.Err, e.Line)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// InvalidFormatError reports a file that does not conform to the expected
// statement format, carrying the path for diagnostics.
type InvalidFormatError struct {
	FilePath string
	Err      error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid statement format in file '%s': %v", e.FilePath, e.Err)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}
