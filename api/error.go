package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a non-2xx response from the server, carried back to the caller
// raw: status, body, and the structured error message when the body had
// one. The gateway never interprets it; stores and commands decide what
// it means.
type Error struct {
	StatusCode int
	Body       []byte
	// Message is the body's structured "error" field, empty if the body
	// was not JSON or had no such field.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// newError builds an *Error from a response body, extracting the
// structured {"error": "..."} field if present.
func newError(statusCode int, body []byte) *Error {
	apiErr := &Error{StatusCode: statusCode, Body: body}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
	}

	return apiErr
}

// ErrorMessage implements the stores' failure-extraction policy: the
// server's structured error message when there is one, otherwise the
// operation-specific fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
