// Package api is the stateless gateway to the remote employee service.
// Each call is a single attempt: no retry, no caching, no request
// coalescing. A bearer token is attached when durable storage holds one;
// otherwise the call proceeds unauthenticated and the server rejects it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/staffdesk/state"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outgoing requests. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StateTokenSource reads the token persisted by login from the state file.
type StateTokenSource struct{}

// Token returns the persisted session token, or empty if there is none.
func (StateTokenSource) Token() string {
	token, err := state.GetString(state.KeyAuthToken)
	if err != nil {
		return ""
	}
	return token
}

// Client talks to the employee service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logrus.Entry
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource replaces the token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger attaches a logger for request-level debug output.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a gateway for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     StateTokenSource{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request and decodes a 2xx JSON body into out (when out
// is non-nil). Non-2xx responses come back as *Error with the raw body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.log != nil {
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("api request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}

	return nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &resp)
	return resp, err
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", loginRequest{Username: username, Password: password}, nil)
}

// ChangePassword rotates the current user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/auth/change-password", changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}

// ListEmployees returns all employees in server order.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := c.do(ctx, http.MethodGet, "/employees", nil, &employees)
	return employees, err
}

// GetEmployee returns a single employee by id.
func (c *Client) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var employee Employee
	err := c.do(ctx, http.MethodGet, "/employees/"+id, nil, &employee)
	return employee, err
}

// CreateEmployee persists a new employee and returns its assigned id.
func (c *Client) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (CreateResult, error) {
	var result CreateResult
	err := c.do(ctx, http.MethodPost, "/employees", req, &result)
	return result, err
}

// UpdateEmployee applies changes to an existing employee.
func (c *Client) UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (UpdateResult, error) {
	var result UpdateResult
	err := c.do(ctx, http.MethodPut, "/employees/"+id, req, &result)
	return result, err
}

// DeleteEmployee removes an employee by id.
func (c *Client) DeleteEmployee(ctx context.Context, id string) (DeleteResult, error) {
	var result DeleteResult
	err := c.do(ctx, http.MethodDelete, "/employees/"+id, nil, &result)
	return result, err
}
