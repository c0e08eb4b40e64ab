package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/config"
	"github.com/grovetools/staffdesk/realtime"
	"github.com/grovetools/staffdesk/store"
	"github.com/grovetools/staffdesk/tui"
	"github.com/grovetools/staffdesk/tui/dashboard"
	"github.com/grovetools/staffdesk/tui/theme"
)

// NewDashboardCmd creates the `dashboard` command.
func NewDashboardCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"dashboard",
		"Open the interactive employee dashboard",
	)
	cmd.Long = `Launches a full-screen TUI over the employee directory. While the
dashboard is open, a realtime channel delivers push notifications from
the server; the admin account additionally receives admin-only events.

Examples:
  # Open the dashboard
  staffdesk dashboard
`

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger := cli.GetLogger(cmd)

		creds, err := requireCredentials()
		if err != nil {
			return err
		}

		client, cfg, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		theme.Set(cfg.ThemeName())
		tui.InitializeTUI()

		stores := store.New(client, logger)
		stores.Session.Restore(creds)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if cfg.RealtimeEnabled() {
			channel := realtime.NewChannel(
				client.BaseURL(), cfg.Realtime.Path,
				stores.Notifications, logger,
			)
			supervisor := realtime.NewSupervisor(channel, stores.Session, logger)
			go supervisor.Run(ctx)
		}

		// Pick up theme changes from the config file while running.
		watcher, err := config.NewWatcher(logger, func(updated *config.Config) {
			theme.Set(updated.ThemeName())
		})
		if err == nil && watcher != nil {
			go watcher.Run(ctx)
		}

		p := tea.NewProgram(dashboard.New(stores, logger), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
			return err
		}

		return nil
	}

	return cmd
}
