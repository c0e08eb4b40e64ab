package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/errors"
	"github.com/grovetools/staffdesk/tui/theme"
)

// NewRegisterCmd creates the `register` command.
func NewRegisterCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"register [username]",
		"Create a new account on the employee service",
	)
	cmd.Args = cobra.MaximumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		username := ""
		if len(args) > 0 {
			username = args[0]
		} else {
			var err error
			username, err = readLine("Username: ")
			if err != nil {
				return err
			}
		}
		if username == "" {
			return errors.InvalidInput("username", "must not be empty")
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.InvalidInput("password", "entries do not match")
		}

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		if err := client.Register(cmd.Context(), username, password); err != nil {
			return err
		}

		fmt.Printf("%s Account created. Run 'staffdesk login %s' to sign in.\n",
			theme.RenderStatus("success", "✓"), username)
		return nil
	}

	return cmd
}
