package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNetwork ErrorCode = iota + 1000
	ErrUnauthorized
	ErrNotFound
	ErrBadResponse
	ErrValidation
	ErrInternal
)

// Error constructors
func Network(message string, err error) *AppError {
	return &AppError{
		Code:    ErrNetwork,
		Message: message,
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "no autorizado, inicia sesión de nuevo",
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadResponse(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadResponse,
		Message: message,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}

// FromStatus maps an HTTP response status onto the client error
// taxonomy. Only server-side statuses become network errors; every
// 4xx is the caller's fault and stays a local error class.
func FromStatus(status int, resource string, err error) *AppError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Unauthorized(err)
	case status == http.StatusNotFound:
		return NotFound(resource, err)
	case status >= 400 && status < 500:
		return Validation(fmt.Sprintf("request for %s rejected with status %d", resource, status), err)
	default:
		return Network(fmt.Sprintf("request for %s failed with status %d", resource, status), err)
	}
}

// CodeOf returns the AppError code, or ErrInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}
