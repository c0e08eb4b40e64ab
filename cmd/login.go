package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/errors"
	"github.com/grovetools/staffdesk/state"
	"github.com/grovetools/staffdesk/store"
	"github.com/grovetools/staffdesk/tui/theme"
)

// NewLoginCmd creates the `login` command.
func NewLoginCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"login [username]",
		"Log in to the employee service",
	)
	cmd.Long = `Authenticates against the employee service and stores the session
token locally. The session persists until 'staffdesk logout'.

Examples:
  # Log in interactively
  staffdesk login

  # Log in as a specific user
  staffdesk login admin
`
	cmd.Args = cobra.MaximumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)

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

		client, _, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		auth, err := client.Login(cmd.Context(), username, password)
		if err != nil {
			return errors.AuthFailed(username, err)
		}

		role := store.DeriveRole(username)
		if err := state.SaveCredentials(state.Credentials{
			User:  username,
			Token: auth.AccessToken,
			Role:  string(role),
		}); err != nil {
			return err
		}

		logger.WithField("user", username).Info("logged in")
		fmt.Printf("%s Logged in as %s (%s)\n",
			theme.RenderStatus("success", "✓"), username, role)
		return nil
	}

	return cmd
}
