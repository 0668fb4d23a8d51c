// Package apperrors defines the error taxonomy shared by the lifecycle,
// routing and storage layers. Every error carries a stable type tag and the
// HTTP status code the handlers map it to. None of these are retried by the
// core; a conflict may be retried once by the caller with fresh state.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType tags an AppError with its taxonomy bucket.
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation_error"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypePermission        ErrorType = "permission_error"
	ErrorTypeInvalidTransition ErrorType = "invalid_transition"
	ErrorTypeConflict          ErrorType = "conflict"
	ErrorTypeInternal          ErrorType = "internal_error"
)

// AppError is an application error with the context handlers need to build
// a response without inspecting error strings.
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"-"`
	Details string    `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Is lets errors.Is match two AppErrors by type, ignoring message text.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Type == t.Type
}

func NewValidationError(message string, details ...string) *AppError {
	return newError(ErrorTypeValidation, message, http.StatusBadRequest, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newError(ErrorTypeNotFound, message, http.StatusNotFound, details)
}

func NewPermissionError(message string, details ...string) *AppError {
	return newError(ErrorTypePermission, message, http.StatusForbidden, details)
}

func NewInvalidTransitionError(message string, details ...string) *AppError {
	return newError(ErrorTypeInvalidTransition, message, http.StatusUnprocessableEntity, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newError(ErrorTypeConflict, message, http.StatusConflict, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newError(ErrorTypeInternal, message, http.StatusInternalServerError, details)
}

func newError(typ ErrorType, message string, code int, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{Type: typ, Message: message, Code: code, Details: detail}
}

// AsAppError extracts an AppError from err, wrapping unknown errors as
// internal so handlers always have a code to respond with.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("Something went wrong", err.Error())
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, typ ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == typ
}
