package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/api"
)

// Fallback error messages, used when the server's failure body carries no
// structured error field.
const (
	msgFetchAllFailed = "Failed to fetch employees"
	msgFetchOneFailed = "Failed to fetch employee"
	msgCreateFailed   = "Failed to create employee"
	msgUpdateFailed   = "Failed to update employee"
	msgDeleteFailed   = "Failed to delete employee"
)

// EmployeeState is a point-in-time snapshot of the employee collection
// and the status of the store's most recent operation.
type EmployeeState struct {
	Employees        []api.Employee
	SelectedEmployee *api.Employee
	Loading          bool
	Error            string
}

// EmployeeStore keeps the local employee collection synchronized with the
// server. Every operation follows the same start/settle protocol: on
// start, Loading flips true and Error clears; on settlement, Loading
// flips false and either the state or Error is updated. Mutations never
// patch the collection locally: after a successful create, update, or
// delete the store re-fetches the full list, so the local view always
// matches server state including server-computed fields.
//
// Operations are independent and unordered relative to each other. Two
// concurrent mutations can interleave their trailing re-fetch, and the
// collection then reflects whichever re-fetch settled last.
type EmployeeStore struct {
	mu     sync.RWMutex
	client *api.Client
	state  EmployeeState
	log    *logrus.Entry
}

// NewEmployeeStore creates an empty store backed by the given gateway.
func NewEmployeeStore(client *api.Client, log *logrus.Entry) *EmployeeStore {
	return &EmployeeStore{client: client, log: log}
}

// Snapshot returns a copy of the current state. The employee slice is
// copied so callers can't observe later mutations.
func (s *EmployeeStore) Snapshot() EmployeeState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Employees = append([]api.Employee(nil), s.state.Employees...)
	if s.state.SelectedEmployee != nil {
		selected := *s.state.SelectedEmployee
		snap.SelectedEmployee = &selected
	}
	return snap
}

// FetchAll replaces the collection with the server's current list.
func (s *EmployeeStore) FetchAll(ctx context.Context) {
	s.begin()

	employees, err := s.client.ListEmployees(ctx)
	if err != nil {
		s.fail(err, msgFetchAllFailed)
		return
	}

	s.mu.Lock()
	s.state.Loading = false
	s.state.Employees = employees
	s.mu.Unlock()
}

// FetchByID loads one employee into SelectedEmployee, leaving the
// collection untouched.
func (s *EmployeeStore) FetchByID(ctx context.Context, id string) {
	s.begin()

	employee, err := s.client.GetEmployee(ctx, id)
	if err != nil {
		s.fail(err, msgFetchOneFailed)
		return
	}

	s.mu.Lock()
	s.state.Loading = false
	s.state.SelectedEmployee = &employee
	s.mu.Unlock()
}

// Create persists a new employee, then reconciles by re-fetching the full
// list. The store never synthesizes the record locally; on any failure
// the collection is left exactly as it was.
func (s *EmployeeStore) Create(ctx context.Context, req api.CreateEmployeeRequest) {
	s.begin()

	if _, err := s.client.CreateEmployee(ctx, req); err != nil {
		s.fail(err, msgCreateFailed)
		return
	}

	employees, err := s.client.ListEmployees(ctx)
	if err != nil {
		s.fail(err, msgCreateFailed)
		return
	}

	s.mu.Lock()
	s.state.Loading = false
	s.state.Employees = employees
	s.mu.Unlock()

	s.log.WithField("name", req.Name).Info("employee created")
}

// Update applies changes to an employee, then reconciles by re-fetching.
func (s *EmployeeStore) Update(ctx context.Context, id string, req api.UpdateEmployeeRequest) {
	s.begin()

	if _, err := s.client.UpdateEmployee(ctx, id, req); err != nil {
		s.fail(err, msgUpdateFailed)
		return
	}

	employees, err := s.client.ListEmployees(ctx)
	if err != nil {
		s.fail(err, msgUpdateFailed)
		return
	}

	s.mu.Lock()
	s.state.Loading = false
	s.state.Employees = employees
	s.mu.Unlock()

	s.log.WithField("id", id).Info("employee updated")
}

// Delete removes an employee, then reconciles by re-fetching.
func (s *EmployeeStore) Delete(ctx context.Context, id string) {
	s.begin()

	if _, err := s.client.DeleteEmployee(ctx, id); err != nil {
		s.fail(err, msgDeleteFailed)
		return
	}

	employees, err := s.client.ListEmployees(ctx)
	if err != nil {
		s.fail(err, msgDeleteFailed)
		return
	}

	s.mu.Lock()
	s.state.Loading = false
	s.state.Employees = employees
	s.mu.Unlock()

	s.log.WithField("id", id).Info("employee deleted")
}

// ClearError dismisses the stored error without retrying anything.
func (s *EmployeeStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}

// ClearSelectedEmployee drops the selection.
func (s *EmployeeStore) ClearSelectedEmployee() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedEmployee = nil
}

// SetSelectedEmployee seeds the selection directly, typically to
// pre-fill an edit form.
func (s *EmployeeStore) SetSelectedEmployee(employee *api.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if employee == nil {
		s.state.SelectedEmployee = nil
		return
	}
	selected := *employee
	s.state.SelectedEmployee = &selected
}

func (s *EmployeeStore) begin() {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()
}

// fail settles an operation with an error, leaving the collection and
// selection untouched. The message comes from the server's structured
// error field when present, else the operation's fallback.
func (s *EmployeeStore) fail(err error, fallback string) {
	message := api.ErrorMessage(err, fallback)

	s.mu.Lock()
	s.state.Loading = false
	s.state.Error = message
	s.mu.Unlock()

	s.log.WithError(err).Warn(message)
}
