package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/errors"
	"github.com/grovetools/staffdesk/tui/theme"
)

// NewPasswdCmd creates the `passwd` command.
func NewPasswdCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"passwd",
		"Change the password for the logged-in account",
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if _, err := requireCredentials(); err != nil {
			return err
		}

		oldPassword, err := readPassword("Current password: ")
		if err != nil {
			return err
		}
		newPassword, err := readPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm new password: ")
		if err != nil {
			return err
		}
		if newPassword != confirm {
			return errors.InvalidInput("password", "entries do not match")
		}

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		if err := client.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
			return err
		}

		fmt.Printf("%s Password changed\n", theme.RenderStatus("success", "✓"))
		return nil
	}

	return cmd
}
