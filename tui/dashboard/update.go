package dashboard

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/staffdesk/api"
	"github.com/grovetools/staffdesk/store"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.resnapshot()
		return m, tickCmd()

	case opDoneMsg:
		m.resnapshot()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeNotifications:
			return m.updateNotifications(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.employees.Employees)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		if n := len(m.employees.Employees); n > 0 {
			m.cursor = n - 1
		}

	case key.Matches(msg, m.keys.Select):
		if emp := m.employeeAtCursor(); emp != nil {
			return m, m.fetchByIDCmd(emp.ID)
		}

	case key.Matches(msg, m.keys.Back):
		m.stores.Employees.ClearSelectedEmployee()
		m.resnapshot()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchAllCmd()

	case key.Matches(msg, m.keys.Add):
		if m.isAdmin() {
			m.openForm(nil)
		}

	case key.Matches(msg, m.keys.Edit):
		if emp := m.employeeAtCursor(); emp != nil && m.isAdmin() {
			m.openForm(emp)
		}

	case key.Matches(msg, m.keys.Delete):
		if emp := m.employeeAtCursor(); emp != nil && m.isAdmin() {
			m.deleteTarget = emp.ID
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Notifications):
		// Opening the panel marks everything read; the entries stay.
		m.stores.Notifications.MarkAllRead()
		m.resnapshot()
		m.mode = modeNotifications

	case key.Matches(msg, m.keys.DismissError):
		m.stores.Employees.ClearError()
		m.resnapshot()
	}

	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.formError = ""
		return m, nil

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		m.focusField((m.focusIndex + 1) % fieldCount)
		return m, textinput.Blink

	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		m.focusField((m.focusIndex + fieldCount - 1) % fieldCount)
		return m, textinput.Blink

	case msg.Type == tea.KeyEnter:
		if m.focusIndex < fieldCount-1 {
			m.focusField(m.focusIndex + 1)
			return m, textinput.Blink
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.deleteTarget
		m.deleteTarget = ""
		m.mode = modeList
		return m, m.deleteCmd(id)
	case "n", "N", "esc", "q":
		m.deleteTarget = ""
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) updateNotifications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back),
		key.Matches(msg, m.keys.Notifications),
		key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	}
	return m, nil
}

// submitForm validates the inputs and dispatches the create or update.
func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	position := strings.TrimSpace(m.inputs[fieldPosition].Value())
	department := strings.TrimSpace(m.inputs[fieldDepartment].Value())
	salaryText := strings.TrimSpace(m.inputs[fieldSalary].Value())

	if name == "" {
		m.formError = "name is required"
		return m, nil
	}

	// Salary is optional; a blank field means unset, not invalid.
	salary := 0.0
	if salaryText != "" {
		parsed, err := strconv.ParseFloat(salaryText, 64)
		if err != nil || parsed < 0 {
			m.formError = "salary must be a non-negative number"
			return m, nil
		}
		salary = parsed
	}

	m.formError = ""
	m.mode = modeList

	if m.editingID != "" {
		return m, m.updateCmd(m.editingID, api.UpdateEmployeeRequest{
			Name:       name,
			Position:   position,
			Department: department,
			Salary:     salary,
		})
	}
	return m, m.createCmd(api.CreateEmployeeRequest{
		Name:       name,
		Position:   position,
		Department: department,
		Salary:     salary,
	})
}

// openForm prepares the add/edit form, prefilling from an existing
// employee when editing.
func (m *Model) openForm(emp *api.Employee) {
	m.editingID = ""
	m.formError = ""
	values := []string{"", "", "", ""}

	if emp != nil {
		m.editingID = emp.ID
		values = []string{
			emp.Name,
			emp.Position,
			emp.Department,
			strconv.FormatFloat(emp.Salary, 'f', -1, 64),
		}
	}

	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
	m.focusField(fieldName)
	m.mode = modeForm
}

func (m *Model) focusField(index int) {
	m.focusIndex = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// resnapshot re-reads all three stores and keeps the cursor in range.
func (m *Model) resnapshot() {
	m.session = m.stores.Session.Snapshot()
	m.employees = m.stores.Employees.Snapshot()
	m.notifications = m.stores.Notifications.Snapshot()

	if m.cursor >= len(m.employees.Employees) {
		m.cursor = len(m.employees.Employees) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) employeeAtCursor() *api.Employee {
	if m.cursor < 0 || m.cursor >= len(m.employees.Employees) {
		return nil
	}
	emp := m.employees.Employees[m.cursor]
	return &emp
}

func (m *Model) isAdmin() bool {
	return m.session.Role == store.RoleAdmin
}
