package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/staffdesk/tui/components/table"
	"github.com/grovetools/staffdesk/tui/theme"
)

const (
	headerHeight = 3
	footerHeight = 2
)

// View renders the dashboard.
func (m *Model) View() string {
	if m.width > 0 && (m.width < 50 || m.height < 12) {
		return "Terminal too small. Please resize."
	}

	t := theme.DefaultTheme

	var body string
	switch m.mode {
	case modeForm:
		body = m.viewForm()
	case modeConfirmDelete:
		body = m.viewConfirmDelete()
	case modeNotifications:
		body = m.viewNotifications()
	default:
		body = m.viewList()
	}

	sections := []string{m.viewHeader(), body}

	if m.employees.Error != "" && m.mode != modeForm {
		banner := t.Error.Render("✗ " + m.employees.Error)
		hint := t.Muted.Render("  (x to dismiss)")
		sections = append(sections, banner+hint)
	}

	sections = append(sections, m.viewFooter())

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewHeader() string {
	t := theme.DefaultTheme

	title := "STAFFDESK"
	sub := fmt.Sprintf("%s (%s)", m.session.User, m.session.Role)
	if !m.session.IsAuthenticated {
		sub = "not logged in"
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Orange).
		Padding(0, 2).
		Bold(true)

	line := title + "  " + t.Muted.Render(sub)
	if m.employees.Loading {
		line += "  " + t.Info.Render("⟳ loading")
	}
	return style.Render(line)
}

func (m *Model) viewList() string {
	t := theme.DefaultTheme
	employees := m.employees.Employees

	if len(employees) == 0 {
		msg := "No employees yet."
		if m.isAdmin() {
			msg += " Press a to add one."
		}
		return t.Box.Render(t.Muted.Render(msg))
	}

	// Keep the cursor inside the visible window.
	visible := m.visibleRowCount()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
	end := m.scrollOffset + visible
	if end > len(employees) {
		end = len(employees)
	}

	tbl := table.NewStyledTableWithOptions(table.Options{
		Bordered:      true,
		HeaderStyle:   t.TableHeader.Padding(0, 1),
		RowStyle:      t.TableRow.Padding(0, 1),
		AlternateRows: false,
		SelectedRow:   m.cursor - m.scrollOffset + 1,
	})
	tbl.Headers("NAME", "POSITION", "DEPARTMENT", "SALARY")
	for _, emp := range employees[m.scrollOffset:end] {
		tbl.Row(emp.Name, emp.Position, emp.Department, fmt.Sprintf("%.2f", emp.Salary))
	}

	out := tbl.Render()
	if len(employees) > visible {
		out += "\n" + t.Muted.Render(fmt.Sprintf("Showing %d-%d of %d employees",
			m.scrollOffset+1, end, len(employees)))
	}

	if sel := m.employees.SelectedEmployee; sel != nil {
		detail := strings.Join([]string{
			t.Bold.Render(sel.Name),
			fmt.Sprintf("Position:    %s", sel.Position),
			fmt.Sprintf("Department:  %s", sel.Department),
			fmt.Sprintf("Salary:      %.2f", sel.Salary),
		}, "\n")
		if sel.CreatedBy != "" {
			detail += "\n" + t.Muted.Render("Created by "+sel.CreatedBy)
		}
		out += "\n" + t.DetailsBox.Render(detail)
	}

	return out
}

func (m *Model) viewForm() string {
	t := theme.DefaultTheme

	title := "Add employee"
	if m.editingID != "" {
		title = "Edit employee"
	}

	lines := []string{t.Title.Render(title)}
	labels := []string{"Name", "Position", "Department", "Salary"}
	for i, input := range m.inputs {
		label := t.Muted.Render(fmt.Sprintf("%-12s", labels[i]))
		lines = append(lines, label+input.View())
	}
	if m.formError != "" {
		lines = append(lines, "", t.Error.Render("✗ "+m.formError))
	}
	lines = append(lines, "", t.Muted.Render("enter to save, esc to cancel"))

	return t.DetailsBox.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewConfirmDelete() string {
	t := theme.DefaultTheme

	name := m.deleteTarget
	for _, emp := range m.employees.Employees {
		if emp.ID == m.deleteTarget {
			name = emp.Name
			break
		}
	}

	content := strings.Join([]string{
		t.Warning.Render("Delete employee?"),
		"",
		t.Bold.Render(name),
		"",
		t.Muted.Render("y to confirm, n to cancel"),
	}, "\n")

	return t.DetailsBox.BorderForeground(t.Colors.Red).Render(content)
}

func (m *Model) viewNotifications() string {
	t := theme.DefaultTheme

	notifications := m.notifications.Notifications
	lines := []string{t.Title.Render("Notifications")}

	if len(notifications) == 0 {
		lines = append(lines, t.Muted.Render("Nothing yet."))
	}
	for _, n := range notifications {
		line := fmt.Sprintf("%s  %s", t.Accent.Render(n.Type), n.Message)
		if n.Timestamp != "" {
			line += "  " + t.Muted.Render(n.Timestamp)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", t.Muted.Render("esc to close"))

	return t.DetailsBox.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewFooter() string {
	t := theme.DefaultTheme

	parts := []string{m.help.View(m.keys)}
	if unread := m.notifications.UnreadCount; unread > 0 {
		parts = append([]string{t.Badge.Render(fmt.Sprintf("%d new", unread))}, parts...)
	}
	return t.StatusBar.Render(strings.Join(parts, "  "))
}

// visibleRowCount is how many data rows fit in the main area.
func (m *Model) visibleRowCount() int {
	if m.height == 0 {
		return 20
	}
	// Table border and header eat four lines.
	rows := m.height - headerHeight - footerHeight - 4
	if rows < 3 {
		rows = 3
	}
	return rows
}
