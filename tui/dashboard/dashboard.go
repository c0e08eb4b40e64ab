// Package dashboard is the interactive employee browser: a full-screen
// TUI over the application stores with list, add/edit, delete and
// notification surfaces.
package dashboard

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/store"
	"github.com/grovetools/staffdesk/tui/theme"
)

// New creates a dashboard model over the given stores.
func New(stores *store.Store, log *logrus.Entry) *Model {
	t := theme.DefaultTheme

	inputs := make([]textinput.Model, fieldCount)
	placeholders := []string{"Name", "Position", "Department", "Salary"}
	for i := range inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.PromptStyle = t.Accent
		input.TextStyle = t.Input
		input.PlaceholderStyle = t.Placeholder
		input.CharLimit = 64
		inputs[i] = input
	}

	return &Model{
		stores:        stores,
		log:           log,
		session:       stores.Session.Snapshot(),
		employees:     stores.Employees.Snapshot(),
		notifications: stores.Notifications.Snapshot(),
		inputs:        inputs,
		keys:          DefaultKeyMap,
		help:          help.New(),
	}
}
