package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/state"
	"github.com/grovetools/staffdesk/tui/theme"
)

// NewLogoutCmd creates the `logout` command.
func NewLogoutCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"logout",
		"Log out and discard the stored session",
	)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Logging out never fails on a missing session.
		if err := state.ClearCredentials(); err != nil {
			return err
		}
		fmt.Printf("%s Logged out\n", theme.RenderStatus("success", "✓"))
		return nil
	}

	return cmd
}
