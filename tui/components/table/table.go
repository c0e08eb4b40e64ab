package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/staffdesk/tui/theme"
)

// NewStyledTable creates a new lipgloss table with staffdesk's default styling
func NewStyledTable() *ltable.Table {
	t := theme.DefaultTheme

	table := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				// Header row with padding
				return t.TableHeader.Padding(0, 1)
			}
			// Regular rows with subtle alternating background
			baseStyle := lipgloss.NewStyle().Padding(0, 1)
			if row%2 == 0 {
				return baseStyle.Background(theme.SubtleBackground)
			}
			return baseStyle
		})

	return table
}

// Options provides additional configuration for the table
type Options struct {
	Bordered      bool
	HeaderStyle   lipgloss.Style
	RowStyle      lipgloss.Style
	AlternateRows bool
	SelectedRow   int // 1-based data row to highlight; 0 for none
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		Bordered:      true,
		HeaderStyle:   theme.DefaultTheme.TableHeader.Padding(0, 1),
		RowStyle:      theme.DefaultTheme.TableRow.Padding(0, 1),
		AlternateRows: true,
	}
}

// NewStyledTableWithOptions creates a table with custom options
func NewStyledTableWithOptions(opts Options) *ltable.Table {
	table := ltable.New()

	if opts.Bordered {
		table = table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border))
	}

	table = table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == 0 {
			return opts.HeaderStyle
		}

		if opts.SelectedRow > 0 && row == opts.SelectedRow {
			return opts.RowStyle.
				Background(theme.SelectedBackground).
				Foreground(theme.DefaultTheme.Colors.LightText)
		}

		style := opts.RowStyle
		if opts.AlternateRows && row%2 == 0 {
			style = style.Background(theme.SubtleBackground)
		}
		return style
	})

	return table
}
