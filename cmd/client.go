// Package cmd implements the staffdesk subcommands.
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grovetools/staffdesk/api"
	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/config"
	"github.com/grovetools/staffdesk/errors"
	"github.com/grovetools/staffdesk/state"
)

// newAPIClient builds the gateway from the effective configuration.
func newAPIClient(cmd *cobra.Command) (*api.Client, *config.Config, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts := []api.Option{api.WithLogger(cli.GetLogger(cmd))}
	if cfg.API.TimeoutSeconds > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second))
	}

	return api.NewClient(cfg.API.BaseURL, opts...), cfg, nil
}

// requireCredentials loads the persisted session and fails if none exists.
func requireCredentials() (state.Credentials, error) {
	creds, err := state.LoadCredentials()
	if err != nil {
		return creds, err
	}
	if creds.User == "" || creds.Token == "" {
		return creds, errors.AuthRequired()
	}
	return creds, nil
}

// readPassword prompts on stderr and reads without echo when stdin is a
// terminal, falling back to a plain line read otherwise (pipes, tests).
func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readLine prompts on stderr and reads one line from stdin.
func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
