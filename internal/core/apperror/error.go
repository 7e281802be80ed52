// Package apperror provides the closed error taxonomy shared by every layer above storage.
// Storage failures are classified once (see infrastructure/storage/postgres) and then
// travel upward unchanged.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the classified category of an error.
// It is the only thing the HTTP layer looks at when choosing a status code.
type Kind int

const (
	// KindUnclassified is anything storage could not explain. Surfaced as an internal error.
	KindUnclassified Kind = iota
	// KindConflict is a uniqueness violation.
	KindConflict
	// KindBadRequest is a schema/range violation on write or an invalid argument.
	KindBadRequest
	// KindNotFound means zero documents matched a targeted read, update or delete.
	KindNotFound
	// KindUnauthorized is a missing or invalid credential.
	KindUnauthorized
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unclassified"
	}
}

// HTTPStatus returns the status code the kind maps to.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error codes refine a Kind for logs and clients.
const (
	CodeInternal      = "INTERNAL_ERROR"
	CodeDataIntegrity = "DATA_INTEGRITY"

	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidArgument = "INVALID_ARGUMENT"

	CodeUnauthorized = "UNAUTHORIZED"

	CodeNotFound = "NOT_FOUND"

	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the standard error type for the service.
type AppError struct {
	// Kind selects the HTTP status and is stable across storage backends
	Kind Kind `json:"-"`

	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (entity, key, constraint)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status code suggested by the error kind.
func (e *AppError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a schema/range violation error (400).
func NewValidation(message string) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Code:    CodeValidation,
		Message: message,
	}
}

// NewInvalidArgument is returned for caller mistakes that never reach storage,
// such as an unknown quantity operation.
func NewInvalidArgument(param string, value any) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf("argument %s is out of range", param),
		Details: map[string]any{"param": param, "value": value},
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    CodeConflict,
		Message: message,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, constraint string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s already exists", entity),
		Details: map[string]any{"entity": entity, "constraint": constraint},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Kind:    KindUnclassified,
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewDataIntegrity reports a stored document that cannot be turned back into an entity.
func NewDataIntegrity(entity string, err error) *AppError {
	return &AppError{
		Kind:    KindUnclassified,
		Code:    CodeDataIntegrity,
		Message: "Internal server error",
		Details: map[string]any{"entity": entity},
		Err:     err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindUnclassified for foreign errors.
func KindOf(err error) Kind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindUnclassified
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	return KindOf(err).HTTPStatus()
}

// IsNotFound reports whether err is classified as not found.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsConflict reports whether err is classified as a uniqueness conflict.
func IsConflict(err error) bool {
	return err != nil && KindOf(err) == KindConflict
}

// IsBadRequest reports whether err is classified as a bad request.
func IsBadRequest(err error) bool {
	return err != nil && KindOf(err) == KindBadRequest
}
