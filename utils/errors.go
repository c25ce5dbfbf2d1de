package utils

import (
	"fmt"
	"net/http"
)

// AppError represents an application error carrying the HTTP status it maps to
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError creates a 400 error for missing or malformed input
func ValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// NotFoundError creates a 404 error for an absent resource
func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// InvalidStateError creates a 400 error for a resource in the wrong state,
// such as an inactive offer or one outside its validity window
func InvalidStateError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// LimitReachedError creates a 400 error for an exhausted redemption cap
func LimitReachedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// InternalError creates a 500 error. The wrapped cause is logged server-side
// and never leaks to the caller.
func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "Internal Server Error", err)
}
