package propstream

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates a temporary failure: connection errors,
	// non-2xx upstream responses, timeouts. The turn surfaces a single
	// user-visible error event; no automatic retry.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates a failure that retrying cannot fix, such
	// as a response missing a required field.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorMalformed indicates undecodable or partially invalid data.
	// Malformed data is logged and skipped locally, never fatal to a turn.
	ErrorMalformed ErrorCategory = "malformed"
)

// CategorizedError is an error that provides information about how it
// should be handled.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int // HTTP status code if applicable, 0 otherwise
}

// Error is a categorized error with metadata for error handling decisions.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Code  int   // HTTP status code, 0 if not applicable
	Cause error // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// NewTransientError creates a transient error.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, Cause: cause}
}

// NewPermanentError creates a permanent error.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Code: statusCode, Cause: cause}
}

// NewMalformedError creates a malformed-data error.
func NewMalformedError(msg string, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorMalformed, Cause: cause}
}

// IsTransient returns true if the error is categorized as transient.
// It checks if the error or any wrapped error implements CategorizedError.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsMalformed returns true if the error is categorized as malformed data.
func IsMalformed(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorMalformed
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// NotFoundError is returned when a referenced thread item does not exist.
type NotFoundError struct {
	Resource string // e.g. "thread", "item"
	ID       string
}

// Error returns a formatted not-found message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
