package domain

import "fmt"

// ParseError means the payload could not be decoded as the declared format
// at all (corrupt file, unsupported encoding). Fatal for the request; the
// pipeline never retries or falls back past it.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s payload: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationReason classifies why an upload was rejected.
type ValidationReason string

const (
	// ReasonNoStructure: nothing in the document resembled tabular or
	// numeric content at all.
	ReasonNoStructure ValidationReason = "no-structure"
	// ReasonNotFinancial: structure was found but too few rows pair a date
	// with a signed amount (manuals, educational text with stray numbers).
	ReasonNotFinancial ValidationReason = "not-financial"
	// ReasonAllRowsSkipped: the file passed content validation but every
	// single row failed normalization.
	ReasonAllRowsSkipped ValidationReason = "all-rows-skipped"
)

// ValidationError rejects an upload with a human-readable explanation that
// distinguishes format problems from content problems.
type ValidationError struct {
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Reason, e.Message)
}
