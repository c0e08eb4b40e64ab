package main

import (
	"os"

	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"staffdesk",
		"Terminal client for the employee management service",
	)

	rootCmd.AddCommand(cmd.NewLoginCmd())
	rootCmd.AddCommand(cmd.NewLogoutCmd())
	rootCmd.AddCommand(cmd.NewRegisterCmd())
	rootCmd.AddCommand(cmd.NewPasswdCmd())
	rootCmd.AddCommand(cmd.NewEmployeesCmd())
	rootCmd.AddCommand(cmd.NewDashboardCmd())
	rootCmd.AddCommand(cmd.NewLogsCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		verbose := false
		for _, arg := range os.Args[1:] {
			if arg == "-v" || arg == "--verbose" {
				verbose = true
			}
		}
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
