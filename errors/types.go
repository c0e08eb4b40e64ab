package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Authentication errors
	ErrCodeAuthRequired ErrorCode = "AUTH_REQUIRED"
	ErrCodeAuthFailed   ErrorCode = "AUTH_FAILED"

	// Remote API errors
	ErrCodeAPIUnavailable ErrorCode = "API_UNAVAILABLE"
	ErrCodeAPIError       ErrorCode = "API_ERROR"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"

	// Realtime channel errors
	ErrCodeChannelConnect ErrorCode = "CHANNEL_CONNECT"
	ErrCodeChannelClosed  ErrorCode = "CHANNEL_CLOSED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// StaffdeskError represents a structured error with context
type StaffdeskError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *StaffdeskError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StaffdeskError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *StaffdeskError) WithDetail(key string, value interface{}) *StaffdeskError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *StaffdeskError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new StaffdeskError
func New(code ErrorCode, message string) *StaffdeskError {
	return &StaffdeskError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a StaffdeskError
func Wrap(err error, code ErrorCode, message string) *StaffdeskError {
	return &StaffdeskError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific StaffdeskError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	sdErr, ok := err.(*StaffdeskError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return sdErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	sdErr, ok := err.(*StaffdeskError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return sdErr.Code
}
