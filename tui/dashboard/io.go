package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/staffdesk/api"
)

const (
	refreshInterval  = time.Second
	operationTimeout = 10 * time.Second
)

// tickMsg drives the periodic store re-snapshot.
type tickMsg time.Time

// opDoneMsg is sent when an employee store operation has settled.
type opDoneMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Store operations run in the background so the event loop never
// blocks on the network; opDoneMsg triggers the re-snapshot.

func (m *Model) fetchAllCmd() tea.Cmd {
	stores := m.stores
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()
		stores.Employees.FetchAll(ctx)
		return opDoneMsg{}
	}
}

func (m *Model) fetchByIDCmd(id string) tea.Cmd {
	stores := m.stores
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()
		stores.Employees.FetchByID(ctx, id)
		return opDoneMsg{}
	}
}

func (m *Model) createCmd(req api.CreateEmployeeRequest) tea.Cmd {
	stores := m.stores
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()
		stores.Employees.Create(ctx, req)
		return opDoneMsg{}
	}
}

func (m *Model) updateCmd(id string, req api.UpdateEmployeeRequest) tea.Cmd {
	stores := m.stores
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()
		stores.Employees.Update(ctx, id, req)
		return opDoneMsg{}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	stores := m.stores
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()
		stores.Employees.Delete(ctx, id)
		return opDoneMsg{}
	}
}
