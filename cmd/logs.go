package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/grovetools/staffdesk/cli"
	"github.com/grovetools/staffdesk/state"
	"github.com/grovetools/staffdesk/tui/theme"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"logs [component]",
		"Show staffdesk's own log files",
	)
	cmd.Long = `Prints log output written under the staffdesk state directory.
Without arguments, all components are shown; pass a component name
(api, cli, realtime, ...) to filter.

Examples:
  # Show all logs
  staffdesk logs

  # Follow the api component
  staffdesk logs api -f
`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		component := ""
		if len(args) > 0 {
			component = args[0]
		}
		follow, _ := cmd.Flags().GetBool("follow")

		dir, err := state.Dir()
		if err != nil {
			return err
		}
		logsDir := filepath.Join(dir, "logs")

		files, err := logFiles(logsDir, component)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println(theme.DefaultTheme.Muted.Render("No log files yet."))
			return nil
		}

		lines := make(chan string, 64)
		var wg sync.WaitGroup

		for _, file := range files {
			wg.Add(1)
			go tailLogFile(file, follow, lines, &wg)
		}
		go func() {
			wg.Wait()
			close(lines)
		}()

		for line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	return cmd
}

// logFiles returns the log files in dir, newest last, optionally
// filtered to one component.
func logFiles(dir, component string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".log") {
			continue
		}
		if component != "" && !strings.HasPrefix(name, component+"-") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func tailLogFile(path string, follow bool, lines chan<- string, wg *sync.WaitGroup) {
	defer wg.Done()

	component := componentFromFilename(filepath.Base(path))
	prefix := theme.DefaultTheme.Accent.Render(fmt.Sprintf("%-10s", component))

	t, err := tail.TailFile(path, tail.Config{
		Follow: follow,
		ReOpen: follow,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return
	}

	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		lines <- prefix + " " + line.Text
	}
}

// componentFromFilename strips the date suffix from "<component>-<date>.log".
func componentFromFilename(name string) string {
	name = strings.TrimSuffix(name, ".log")
	// Date suffixes are YYYY-MM-DD, so drop the last three dash parts.
	parts := strings.Split(name, "-")
	if len(parts) >= 4 {
		return strings.Join(parts[:len(parts)-3], "-")
	}
	return name
}
