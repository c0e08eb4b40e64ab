package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "secret", body["password"])

		json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("")))
	resp, err := client.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok1", resp.AccessToken)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("tok-42")))
	_, err := client.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-42", gotAuth)
}

func TestNoTokenMeansNoHeader(t *testing.T) {
	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("")))
	_, err := client.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.False(t, hadHeader, "unauthenticated calls must not send an Authorization header")
}

func TestEmployeeCRUDRoundTrips(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /employees":
			json.NewEncoder(w).Encode([]Employee{{ID: "1", Name: "Bob"}})
		case "GET /employees/1":
			json.NewEncoder(w).Encode(Employee{ID: "1", Name: "Bob", CreatedBy: "alice"})
		case "POST /employees":
			json.NewEncoder(w).Encode(CreateResult{InsertedID: "2"})
		case "PUT /employees/1":
			json.NewEncoder(w).Encode(UpdateResult{ModifiedCount: 1})
		case "DELETE /employees/1":
			json.NewEncoder(w).Encode(DeleteResult{DeletedCount: 1})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("t")))
	ctx := context.Background()

	employees, err := client.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Bob", employees[0].Name)

	employee, err := client.GetEmployee(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", employee.CreatedBy)

	created, err := client.CreateEmployee(ctx, CreateEmployeeRequest{Name: "Carol"})
	require.NoError(t, err)
	assert.Equal(t, "2", created.InsertedID)

	updated, err := client.UpdateEmployee(ctx, "1", UpdateEmployeeRequest{Position: "Lead"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ModifiedCount)

	deleted, err := client.DeleteEmployee(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted.DeletedCount)
}

func TestStructuredErrorExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("t")))
	_, err := client.GetEmployee(context.Background(), "123")
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok, "expected *api.Error, got %T", err)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Not found", apiErr.Message)

	assert.Equal(t, "Not found", ErrorMessage(err, "fallback"))
}

func TestUnstructuredErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("t")))
	_, err := client.ListEmployees(context.Background())
	require.Error(t, err)

	assert.Equal(t, "Failed to fetch employees", ErrorMessage(err, "Failed to fetch employees"))
}

func TestTransportErrorFallsBack(t *testing.T) {
	// Point at a closed server so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, WithTokenSource(staticToken("t")))
	_, err := client.ListEmployees(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch employees", ErrorMessage(err, "Failed to fetch employees"))
}
