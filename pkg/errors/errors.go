package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Error codes used across all packages
const (
	// Generic errors
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"

	// Authentication errors
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       ErrorCode = "TOKEN_INVALID"

	// Resource errors
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeRoleNotFound ErrorCode = "ROLE_NOT_FOUND"

	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
)

// Error represents a structured error with code, message, and optional details
type Error struct {
	Code    ErrorCode           // Unique error code
	Message string              // Human-readable error message
	Fields  map[string][]string // Field-level validation messages, if any
	Err     error               // Wrapped underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the appropriate HTTP status code for this error
func (e *Error) HTTPStatusCode() int {
	return MapErrorCodeToHTTPStatus(e.Code)
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with code and message
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrapf wraps an existing error with code and formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
// Returns ErrCodeInternal if the error is not a structured Error
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// GetFields extracts field-level validation messages from an error
// Returns nil if the error carries none
func GetFields(err error) map[string][]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// MapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func MapErrorCodeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest

	case ErrCodeUnauthorized, ErrCodeInvalidCredentials,
		ErrCodeTokenExpired, ErrCodeTokenInvalid:
		return http.StatusUnauthorized

	case ErrCodeForbidden:
		return http.StatusForbidden

	case ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeRoleNotFound:
		return http.StatusNotFound

	// Uniqueness conflicts surface as validation failures at the API edge
	case ErrCodeValidationFailed, ErrCodeAlreadyExists:
		return http.StatusUnprocessableEntity

	case ErrCodeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// NotFound creates a "not found" error
func NotFound(resourceType, identifier string) *Error {
	return Newf(ErrCodeNotFound, "%s not found: %s", resourceType, identifier)
}

// Unauthorized creates an "unauthorized" error
func Unauthorized(message string) *Error {
	return New(ErrCodeUnauthorized, message)
}

// Internal creates an "internal error" wrapping the given cause
func Internal(err error, message string) *Error {
	return Wrap(err, ErrCodeInternal, message)
}
