// Package apperror carries the HTTP status and user-facing message of a
// failure from the services to the response writer.
package apperror

import (
	"errors"
	"net/http"
)

// AppError is a failure a client can act on
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError names the request field a validation failure belongs to
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

var (
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
	ErrInternal           = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
)

// NewAppError creates an error with an explicit status
func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap keeps cause for logs while the client only sees message
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, cause: cause}
}

// NewValidationError reports one or more invalid fields
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError reports a missing resource, e.g. NewNotFoundError("Quote")
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

// NewUnprocessableError rejects a well-formed request the current state cannot serve
func NewUnprocessableError(message string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message}
}

// NewUnavailableError reports a collaborator that is not configured
func NewUnavailableError(message string) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message}
}

// IsAppError reports whether err wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the AppError in err's chain. Anything else becomes a
// generic 500 so driver and storage messages never reach the client.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal
}

// HasCode reports whether err is an AppError with the given status
func HasCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
