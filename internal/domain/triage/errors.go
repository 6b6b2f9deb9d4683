package triage

import (
	"errors"
	"fmt"
)

var (
	// ErrCategoryNotFound signals a category id that does not resolve.
	// Callers treat it as a warning, not a fatal failure.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrEventNotFound signals a ledger id that does not resolve.
	ErrEventNotFound = errors.New("triage event not found")

	// ErrNothingToExport is the distinct outcome of exporting an empty
	// ledger scope. No file is written and no data is lost.
	ErrNothingToExport = errors.New("nothing to export")
)

// ValidationError rejects caller-supplied data before any storage mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NewRequiredError reports an empty required field.
func NewRequiredError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "must not be empty"}
}

// ExportError wraps a failure of the report artifact write. The ledger is
// unaffected regardless of export outcome.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export report to %q: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
