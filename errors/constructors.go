package errors

import "fmt"

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *StaffdeskError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *StaffdeskError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// AuthRequired creates an error for operations that need a logged-in session
func AuthRequired() *StaffdeskError {
	return New(ErrCodeAuthRequired, "not logged in; run 'staffdesk login' first")
}

// AuthFailed creates a login failure error
func AuthFailed(user string, err error) *StaffdeskError {
	return Wrap(err, ErrCodeAuthFailed, fmt.Sprintf("authentication failed for '%s'", user)).
		WithDetail("user", user)
}

// APIUnavailable creates an error for transport-level failures reaching the API
func APIUnavailable(baseURL string, err error) *StaffdeskError {
	return Wrap(err, ErrCodeAPIUnavailable, fmt.Sprintf("could not reach %s", baseURL)).
		WithDetail("baseUrl", baseURL)
}

// EmployeeNotFound creates a not-found error for an employee id
func EmployeeNotFound(id string) *StaffdeskError {
	return New(ErrCodeNotFound, fmt.Sprintf("employee '%s' not found", id)).
		WithDetail("id", id)
}

// ChannelConnect creates a realtime connection failure error
func ChannelConnect(url string, err error) *StaffdeskError {
	return Wrap(err, ErrCodeChannelConnect, fmt.Sprintf("realtime connection to %s failed", url)).
		WithDetail("url", url)
}

// InvalidInput creates a validation error for a named field
func InvalidInput(field, reason string) *StaffdeskError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithDetail("field", field)
}
