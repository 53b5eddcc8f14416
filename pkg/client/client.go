package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/redcore/yabutech-api/pkg/role"
	"github.com/redcore/yabutech-api/pkg/user"
)

// genericFailure is shown when the server response carries no message
const genericFailure = "Request failed. Please try again."

// Client is an API client for the admin backend. It owns the session:
// the bearer token is attached to every outgoing request, persisted on
// login/register success and cleared on logout.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
	session Session
}

// NewClient creates a client against the given base URL (e.g.
// "http://127.0.0.1:8000/api"). The persisted token, if any, is loaded so a
// restarted process starts authenticated.
func NewClient(baseURL string, store SessionStore) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
	}

	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	c.session.Token = token
	return c, nil
}

// Session returns the current session state
func (c *Client) Session() Session {
	return c.session
}

// LoginParams are the credentials for Login
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterParams is the payload for Register
type RegisterParams struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	RoleID               int64  `json:"role_id"`
}

type authPayload struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    user.UserWithRole `json:"user"`
}

// Login authenticates and stores the returned token in memory and in the
// session store
func (c *Client) Login(ctx context.Context, params LoginParams) error {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/login", params, &payload); err != nil {
		return err
	}
	return c.adopt(payload)
}

// Register creates an account and stores the returned token like Login does
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/register", params, &payload); err != nil {
		return err
	}
	return c.adopt(payload)
}

// Logout revokes the server-side tokens and clears the session from memory
// and the store
func (c *Client) Logout(ctx context.Context) error {
	// Best effort: the local session is cleared even if the server call fails
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)

	c.session = Session{}
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// CurrentUser fetches the caller's own record and caches it on the session
func (c *Client) CurrentUser(ctx context.Context) (user.UserWithRole, error) {
	var me user.UserWithRole
	if err := c.do(ctx, http.MethodGet, "/user", nil, &me); err != nil {
		return user.UserWithRole{}, err
	}
	c.session.User = &me
	return me, nil
}

// ListRoles fetches all roles
func (c *Client) ListRoles(ctx context.Context) ([]role.Role, error) {
	var roles []role.Role
	if err := c.do(ctx, http.MethodGet, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ListUsers fetches all users with their roles
func (c *Client) ListUsers(ctx context.Context) ([]user.UserWithRole, error) {
	var users []user.UserWithRole
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// RoleParams is the payload for creating or updating a role
type RoleParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateRole creates a role
func (c *Client) CreateRole(ctx context.Context, params RoleParams) (role.Role, error) {
	var created role.Role
	if err := c.do(ctx, http.MethodPost, "/roles", params, &created); err != nil {
		return role.Role{}, err
	}
	return created, nil
}

// UpdateRole updates a role
func (c *Client) UpdateRole(ctx context.Context, id int64, params RoleParams) (role.Role, error) {
	var updated role.Role
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/roles/%d", id), params, &updated); err != nil {
		return role.Role{}, err
	}
	return updated, nil
}

// DeleteRole deletes a role
func (c *Client) DeleteRole(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/roles/%d", id), nil, nil)
}

// UserParams is the payload for creating or updating a user. The password
// fields may be left empty on update to keep the stored password.
type UserParams struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
	RoleID               int64  `json:"role_id"`
}

// GetUser fetches a single user with its role
func (c *Client) GetUser(ctx context.Context, id int64) (user.UserWithRole, error) {
	var found user.UserWithRole
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &found); err != nil {
		return user.UserWithRole{}, err
	}
	return found, nil
}

// CreateUser creates a user
func (c *Client) CreateUser(ctx context.Context, params UserParams) (user.UserWithRole, error) {
	var created user.UserWithRole
	if err := c.do(ctx, http.MethodPost, "/users", params, &created); err != nil {
		return user.UserWithRole{}, err
	}
	return created, nil
}

// UpdateUser updates a user
func (c *Client) UpdateUser(ctx context.Context, id int64, params UserParams) (user.UserWithRole, error) {
	var updated user.UserWithRole
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), params, &updated); err != nil {
		return user.UserWithRole{}, err
	}
	return updated, nil
}

// DeleteUser deletes a user
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}

func (c *Client) adopt(payload authPayload) error {
	c.session.Token = payload.Token
	c.session.User = &payload.User
	if err := c.store.Save(payload.Token); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// APIError is a failure response from the server
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// do sends a JSON request with the bearer token attached and decodes the
// response into out when it is non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: genericFailure}
		var failure struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil && failure.Message != "" {
			apiErr.Message = failure.Message
			apiErr.Fields = failure.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
