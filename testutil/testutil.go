// Package testutil provides helpers shared by staffdesk tests: an
// isolated state home and an in-memory employee API server.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/staffdesk/api"
	"github.com/grovetools/staffdesk/state"
)

// TempHome points STAFFDESK_HOME at a fresh temp directory so tests
// never touch the real ~/.staffdesk. Returns the directory.
func TempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STAFFDESK_HOME", dir)
	return dir
}

// SeedCredentials writes persisted credentials into the test home.
func SeedCredentials(t *testing.T, user, token string, role string) {
	t.Helper()
	require.NoError(t, state.SaveCredentials(state.Credentials{
		User:  user,
		Token: token,
		Role:  role,
	}))
}

// RandomString generates a random hex string of the specified length.
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}

// EmployeeServer is an in-memory stand-in for the staffdesk API,
// covering the auth and employee endpoints the client talks to.
type EmployeeServer struct {
	*httptest.Server

	Token string

	mu        sync.Mutex
	employees []api.Employee
	nextID    int
}

// NewEmployeeServer starts a fake API seeded with the given employees.
// Every protected request must carry "Bearer <Token>".
func NewEmployeeServer(t *testing.T, seed ...api.Employee) *EmployeeServer {
	t.Helper()

	s := &EmployeeServer{
		Token:     "test-token-" + RandomString(8),
		employees: append([]api.Employee(nil), seed...),
		nextID:    1000,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Employees returns a copy of the current collection.
func (s *EmployeeServer) Employees() []api.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Employee(nil), s.employees...)
}

func (s *EmployeeServer) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/auth/login" && r.Method == http.MethodPost:
		s.handleLogin(w, r)
	case r.URL.Path == "/auth/register" && r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
	case r.URL.Path == "/auth/change-password" && r.Method == http.MethodPut:
		if !s.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		w.WriteHeader(http.StatusOK)
	case strings.HasPrefix(r.URL.Path, "/employees"):
		if !s.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		s.handleEmployees(w, r)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	}
}

func (s *EmployeeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": s.Token})
}

func (s *EmployeeServer) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+s.Token
}

func (s *EmployeeServer) handleEmployees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimPrefix(r.URL.Path, "/employees")
	id = strings.TrimPrefix(id, "/")

	switch {
	case id == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.employees)

	case id == "" && r.Method == http.MethodPost:
		var req api.CreateEmployeeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
			return
		}
		s.nextID++
		emp := api.Employee{
			ID:         "emp-" + hex.EncodeToString([]byte{byte(s.nextID >> 8), byte(s.nextID)}),
			Name:       req.Name,
			Position:   req.Position,
			Department: req.Department,
			Salary:     req.Salary,
		}
		s.employees = append(s.employees, emp)
		writeJSON(w, http.StatusCreated, api.CreateResult{InsertedID: emp.ID})

	case id != "" && r.Method == http.MethodGet:
		for _, emp := range s.employees {
			if emp.ID == id {
				writeJSON(w, http.StatusOK, emp)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})

	case id != "" && r.Method == http.MethodPut:
		var req api.UpdateEmployeeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
			return
		}
		for i, emp := range s.employees {
			if emp.ID == id {
				s.employees[i].Name = req.Name
				s.employees[i].Position = req.Position
				s.employees[i].Department = req.Department
				s.employees[i].Salary = req.Salary
				writeJSON(w, http.StatusOK, api.UpdateResult{ModifiedCount: 1})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})

	case id != "" && r.Method == http.MethodDelete:
		for i, emp := range s.employees {
			if emp.ID == id {
				s.employees = append(s.employees[:i], s.employees[i+1:]...)
				writeJSON(w, http.StatusOK, api.DeleteResult{DeletedCount: 1})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
