// Package api is a typed HTTP client for the user endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/vedran77/roster/internal/domain"
	"github.com/vedran77/roster/pkg/validator"
)

// Error is returned whenever the server answers with success=false.
type Error struct {
	Status  int
	Message string
	Details []validator.FieldError
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HasDetails reports whether the error carries field-level messages.
func (e *Error) HasDetails() bool { return len(e.Details) > 0 }

type envelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details []validator.FieldError `json:"details,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL, which includes the /api prefix.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) GetAllUsers(ctx context.Context) ([]domain.UserResponse, error) {
	var users []domain.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.UserResponse{}
	}
	return users, nil
}

func (c *Client) GetUserByID(ctx context.Context, id string) (*domain.UserResponse, error) {
	var user domain.UserResponse
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.UserResponse, error) {
	var user domain.UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, input domain.UpdateUserInput) (*domain.UserResponse, error) {
	var user domain.UserResponse
	if err := c.do(ctx, http.MethodPut, userPath(id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}

// do sends the request and unwraps the envelope into out. Transport and
// decoding failures come back as plain errors, server failures as *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("api: decode response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "API request failed"
		}
		return &Error{Status: resp.StatusCode, Message: msg, Details: env.Details}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api: decode data: %w", err)
		}
	}
	return nil
}
