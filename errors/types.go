package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Validation errors (caught before any network call)
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Session errors
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeNoSession      ErrorCode = "NO_SESSION"
	ErrCodeBadCredentials ErrorCode = "BAD_CREDENTIALS"

	// Lifecycle errors
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
	ErrCodeNotAuthor         ErrorCode = "NOT_AUTHOR"
	ErrCodeNotHelper         ErrorCode = "NOT_HELPER"
	ErrCodeDuplicateInterest ErrorCode = "DUPLICATE_INTEREST"
	ErrCodeAlreadyRated      ErrorCode = "ALREADY_RATED"

	// Remote errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeServer   ErrorCode = "SERVER_ERROR"
	ErrCodeNetwork  ErrorCode = "NETWORK_ERROR"

	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// VizError is the error type used throughout the client.
type VizError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *VizError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VizError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *VizError) WithDetail(key string, value interface{}) *VizError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *VizError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new VizError
func New(code ErrorCode, message string) *VizError {
	return &VizError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a VizError
func Wrap(err error, code ErrorCode, message string) *VizError {
	return &VizError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific VizError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	vizErr, ok := err.(*VizError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return vizErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	vizErr, ok := err.(*VizError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return vizErr.Code
}
