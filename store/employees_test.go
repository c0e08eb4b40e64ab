package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/staffdesk/api"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "test")
}

type fixedToken struct{}

func (fixedToken) Token() string { return "test-token" }

func newEmployeeStore(serverURL string) *EmployeeStore {
	client := api.NewClient(serverURL, api.WithTokenSource(fixedToken{}))
	return NewEmployeeStore(client, testLogger())
}

func TestFetchAllReplacesCollectionInServerOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.Employee{
			{ID: "2", Name: "Bob"},
			{ID: "1", Name: "Alice"},
		})
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.FetchAll(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	require.Len(t, snap.Employees, 2)
	assert.Equal(t, "Bob", snap.Employees[0].Name)
	assert.Equal(t, "Alice", snap.Employees[1].Name)
}

func TestLoadingIsTrueStrictlyBetweenStartAndSettlement(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	assert.False(t, s.Snapshot().Loading, "loading must be false before start")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.FetchAll(context.Background())
	}()

	<-entered
	assert.True(t, s.Snapshot().Loading, "loading must be true while the request is outstanding")

	close(release)
	wg.Wait()
	assert.False(t, s.Snapshot().Loading, "loading must be false after settlement")
}

func TestFetchAllFailureUsesStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.FetchAll(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "boom", snap.Error)
	assert.Empty(t, snap.Employees)
}

func TestFetchAllFailureFallsBackToFixedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.FetchAll(context.Background())

	assert.Equal(t, "Failed to fetch employees", s.Snapshot().Error)
}

func TestErrorClearsAtStartOfNextAttempt(t *testing.T) {
	var failing = true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.FetchAll(context.Background())
	require.NotEmpty(t, s.Snapshot().Error)

	failing = false
	s.FetchAll(context.Background())
	assert.Empty(t, s.Snapshot().Error)
}

func TestFetchByIDSetsSelectionOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/employees/7", r.URL.Path)
		json.NewEncoder(w).Encode(api.Employee{ID: "7", Name: "Grace"})
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.FetchByID(context.Background(), "7")

	snap := s.Snapshot()
	require.NotNil(t, snap.SelectedEmployee)
	assert.Equal(t, "Grace", snap.SelectedEmployee.Name)
	assert.Empty(t, snap.Employees, "FetchByID must not touch the collection")
}

func TestCreateReconcilesByRefetch(t *testing.T) {
	var created bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			created = true
			json.NewEncoder(w).Encode(api.CreateResult{InsertedID: "9"})
		default:
			// The authoritative list, including server-computed fields
			// the client could never have synthesized.
			json.NewEncoder(w).Encode([]api.Employee{
				{ID: "9", Name: "Bob", CreatedBy: "alice"},
			})
		}
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.Create(context.Background(), api.CreateEmployeeRequest{Name: "Bob"})

	require.True(t, created)
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	require.Len(t, snap.Employees, 1)
	assert.Equal(t, "alice", snap.Employees[0].CreatedBy)
}

func TestCreateSucceedsButRefetchFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(api.CreateResult{InsertedID: "9"})
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	before := s.Snapshot().Employees

	s.Create(context.Background(), api.CreateEmployeeRequest{Name: "Bob"})

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "Failed to create employee", snap.Error)
	assert.Equal(t, before, snap.Employees, "collection must be unchanged when settlement fails")
}

func TestUpdateReconcilesByRefetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			require.Equal(t, "/employees/3", r.URL.Path)
			json.NewEncoder(w).Encode(api.UpdateResult{ModifiedCount: 1})
			return
		}
		json.NewEncoder(w).Encode([]api.Employee{{ID: "3", Name: "Carol", Position: "Lead"}})
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.Update(context.Background(), "3", api.UpdateEmployeeRequest{Position: "Lead"})

	snap := s.Snapshot()
	require.Len(t, snap.Employees, 1)
	assert.Equal(t, "Lead", snap.Employees[0].Position)
}

func TestDeleteNonExistentIDSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	}))
	defer server.Close()

	s := newEmployeeStore(server.URL)
	s.Delete(context.Background(), "123")

	assert.Equal(t, "Not found", s.Snapshot().Error)
}

func TestSynchronousReducers(t *testing.T) {
	s := newEmployeeStore("http://unused.invalid")

	s.fail(nil, "some error")
	require.Equal(t, "some error", s.Snapshot().Error)
	s.ClearError()
	assert.Empty(t, s.Snapshot().Error)

	employee := &api.Employee{ID: "1", Name: "Dora"}
	s.SetSelectedEmployee(employee)
	require.NotNil(t, s.Snapshot().SelectedEmployee)

	// The stored selection is a copy, not an alias.
	employee.Name = "changed"
	assert.Equal(t, "Dora", s.Snapshot().SelectedEmployee.Name)

	s.ClearSelectedEmployee()
	assert.Nil(t, s.Snapshot().SelectedEmployee)

	s.SetSelectedEmployee(nil)
	assert.Nil(t, s.Snapshot().SelectedEmployee)
}
