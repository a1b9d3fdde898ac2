package errors

import (
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")

	// Lookup and ownership errors
	ErrNotFound       = New("not found")
	ErrForbidden      = New("forbidden")
	ErrAlreadyExists  = New("already exists")
	ErrInvalidLogin   = New("invalid email or password")
	ErrSessionExpired = New("session expired")

	// Job state errors
	ErrNotProcessing = New("podcast is not processing")

	// Database errors
	ErrQueryFailed  = New("query failed")
	ErrInsertFailed = New("insert failed")
	ErrUpdateFailed = New("update failed")
	ErrDeleteFailed = New("delete failed")

	// File and artifact errors
	ErrUnsupportedFile = New("unsupported file type")
	ErrArtifactMissing = New("artifact not found")

	// Queue errors
	ErrQueueClosed = New("queue closed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// NotFound returns an error for items that were not found. It matches ErrNotFound.
func NotFound(itemType string, identifier string) error {
	return Wrap(ErrNotFound, fmt.Sprintf("%s %s", itemType, identifier))
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Newf("%s is invalid: %s", field, reason)
}
