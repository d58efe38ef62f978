package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error type of the chat relay.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeConfiguration indicates a required setting (such as the completion API key) is missing.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeNotFound indicates the requested record does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUpstream indicates the completion API call failed.
	ErrCodeUpstream ErrorCode = "UPSTREAM"
	// ErrCodeStore indicates a database read or write failed.
	ErrCodeStore ErrorCode = "STORE"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a structured error carrying a code.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

// Configuration creates a configuration error.
func Configuration(msg string) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: msg}
}

// Upstream creates an upstream error.
func Upstream(msg string, cause error) *Error {
	return &Error{Code: ErrCodeUpstream, Message: msg, Cause: cause}
}

// Store creates a store error.
func Store(msg string, cause error) *Error {
	return &Error{Code: ErrCodeStore, Message: msg, Cause: cause}
}

// IsCode checks if an error, or any error it wraps, is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an *Error.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return defaultCode
}

// HTTPStatus maps an error code to the HTTP status returned to callers.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
