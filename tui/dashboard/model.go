package dashboard

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/store"
)

// mode selects which surface the dashboard is showing.
type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
	modeNotifications
)

// Form input order.
const (
	fieldName = iota
	fieldPosition
	fieldDepartment
	fieldSalary
	fieldCount
)

// Model is the state of the employee dashboard TUI. It holds snapshots
// of the stores; the stores themselves are the source of truth and are
// re-read on every tick and after every operation.
type Model struct {
	stores *store.Store
	log    *logrus.Entry

	session       store.Session
	employees     store.EmployeeState
	notifications store.NotificationState

	mode         mode
	cursor       int
	scrollOffset int

	// Add/edit form state. editingID is empty for a new employee.
	inputs     []textinput.Model
	focusIndex int
	editingID  string
	formError  string

	// Pending delete target while in modeConfirmDelete.
	deleteTarget string

	keys   KeyMap
	help   help.Model
	width  int
	height int
}

// Init starts the initial fetch and the refresh ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchAllCmd(), tickCmd())
}
