package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/staffdesk/errors"
)

// ErrorHandler prints user-facing error messages for known error codes
// before letting the error propagate to the exit status.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle prints a friendly message for the error's code and returns the
// error unchanged.
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeAuthRequired:
		fmt.Fprintf(os.Stderr, "❌ Not logged in. Run 'staffdesk login' first.\n")
		return err

	case errors.ErrCodeAuthFailed:
		if sdErr, ok := err.(*errors.StaffdeskError); ok {
			fmt.Fprintf(os.Stderr, "❌ Authentication failed for '%s'\n", sdErr.Details["user"])
			fmt.Fprintf(os.Stderr, "Check the username and password and try again.\n")
		}
		return err

	case errors.ErrCodeAPIUnavailable:
		fmt.Fprintf(os.Stderr, "❌ Cannot reach the staffdesk API. Is the server running?\n")
		fmt.Fprintf(os.Stderr, "Set STAFFDESK_API_URL or api.base_url in staffdesk.yml to point at it.\n")
		return err

	case errors.ErrCodeNotFound:
		if sdErr, ok := err.(*errors.StaffdeskError); ok {
			fmt.Fprintf(os.Stderr, "❌ Employee '%s' not found\n", sdErr.Details["id"])
			fmt.Fprintf(os.Stderr, "Run 'staffdesk employees list' to see known employees.\n")
		}
		return err

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration file not found.\n")
		return err

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if sdErr, ok := err.(*errors.StaffdeskError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", sdErr.ToJSON())
			}
		}
		return err
	}
}
