package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeTransport indicates a network or transport failure
	ErrorTypeTransport ErrorType = "TRANSPORT"

	// ErrorTypeAPI indicates a non-2xx response from the backend
	ErrorTypeAPI ErrorType = "API"

	// ErrorTypeMalformed indicates a response that does not match the
	// expected envelope shape (missing items.rows)
	ErrorTypeMalformed ErrorType = "MALFORMED"

	// ErrorTypeValidation indicates a local validation failure caught
	// before any network call
	ErrorTypeValidation ErrorType = "VALIDATION"
)

// AppError represents an application error
type AppError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new transport error
func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransport,
		Message: message,
		Err:     err,
	}
}

// NewAPIError creates a new API error carrying the response status code
// and the best-effort message extracted from the response body
func NewAPIError(statusCode int, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAPI,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewMalformedError creates a new malformed-response error
func NewMalformedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformed,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsAPI reports whether err is a non-2xx backend response
func IsAPI(err error) bool {
	return isType(err, ErrorTypeAPI)
}

// IsTransport reports whether err is a network/transport failure
func IsTransport(err error) bool {
	return isType(err, ErrorTypeTransport)
}

// IsMalformed reports whether err is a malformed-response error
func IsMalformed(err error) bool {
	return isType(err, ErrorTypeMalformed)
}

func isType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// UserMessage returns the message suitable for a user-facing alert.
// API and validation errors carry their own message; anything else
// falls back to the given default.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
