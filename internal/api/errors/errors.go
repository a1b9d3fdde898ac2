package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	apperrors "docpod/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindConflict        ErrorKind = "conflict"
	KindInternal        ErrorKind = "internal"
	KindBadRequest      ErrorKind = "bad_request"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
	KindUnavailable     ErrorKind = "service_unavailable"
)

// APIError is the JSON body of every error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{Kind: KindValidation, Message: message, Details: fields}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{Kind: KindForbidden, Message: message}
}

func NewConflictError(message string) *APIError {
	return &APIError{Kind: KindConflict, Message: message}
}

func NewInternalError(message string) *APIError {
	return &APIError{Kind: KindInternal, Message: message}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewPayloadTooLargeError reports a request body over limit bytes
func NewPayloadTooLargeError(limit int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("request body exceeds %d bytes", limit),
	}
}

func NewUnavailableError(message string) *APIError {
	return &APIError{Kind: KindUnavailable, Message: message}
}

// FromDomain maps an application error to its API error. Errors without a
// known sentinel become a generic internal error so no detail leaks.
func FromDomain(err error, resource string) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case stderrors.Is(err, apperrors.ErrNotFound):
		return NewNotFoundError(resource)
	case stderrors.Is(err, apperrors.ErrForbidden):
		return NewForbiddenError(fmt.Sprintf("%s belongs to another user", resource))
	case stderrors.Is(err, apperrors.ErrAlreadyExists):
		return NewConflictError(fmt.Sprintf("%s already exists", resource))
	case stderrors.Is(err, apperrors.ErrInvalidLogin), stderrors.Is(err, apperrors.ErrSessionExpired):
		return NewUnauthorizedError(err.Error())
	case stderrors.Is(err, apperrors.ErrUnsupportedFile):
		return NewBadRequestError(err.Error())
	case stderrors.Is(err, apperrors.ErrArtifactMissing):
		return NewNotFoundError("audio file")
	default:
		return NewInternalError("Internal server error")
	}
}
