/*
errors.go - Centralized error types for the claims engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Calculation packages return validation failures as *values* inside their
  result envelopes; the errors here cover repository and request-level
  failures that must flow through Go error returns.

ERROR CATEGORIES:
  1. Validation errors - malformed inputs rejected before calculation
  2. Store errors - persistence-level failures

USAGE:
  Callers can branch on sentinels:

    if errors.Is(err, engine.ErrNotFound) {
        writeError(w, http.StatusNotFound, err)
    }

SEE ALSO:
  - month.go: MonthKey validation feeding ErrInvalidMonth
  - store: wraps these errors with record context
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidMonth is returned when a month key is not "YYYY-MM".
	ErrInvalidMonth = errors.New("invalid month key")

	// ErrInvalidInput is returned when a request fails structural validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDataset is returned when a calculation requires at least one
	// record and received none.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrDuplicateRecord is returned when an insert collides with an
	// existing record for the same key.
	ErrDuplicateRecord = errors.New("duplicate record")

	// ErrStoreFailed is returned when a repository operation cannot complete.
	ErrStoreFailed = errors.New("store operation failed")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError identifies the missing record.
type NotFoundError struct {
	Kind string // e.g. "fee structure", "experience month"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError carries a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrDuplicateRecord)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
