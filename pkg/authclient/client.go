// Package authclient is a Go client for the session-cookie auth API. It
// keeps the session cookie in a jar so consecutive calls share a session.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/imoveiscrm/realestate-api/internal/core/domain"
)

// User is the account payload returned by the API.
type User = domain.User

// Sentinel errors for the failures callers usually branch on.
var (
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrUnauthenticated    = domain.ErrUnauthenticated
	ErrUserNotFound       = domain.ErrUserNotFound
	ErrEmailTaken         = domain.ErrUserExists
)

// FieldError is one entry of a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is any other non-2xx answer.
type APIError struct {
	StatusCode int
	Message    string
	Details    []FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its Jar is replaced with a
// fresh cookie jar when nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type userEnvelope struct {
	User    *User  `json:"user"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
}

// Login opens a session for email.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out userEnvelope
	status, err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &out)
	if err != nil {
		if status == http.StatusUnauthorized {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return out.User, nil
}

// Register creates a client account and opens its session.
func (c *Client) Register(ctx context.Context, email, password, name string) (*User, error) {
	var out userEnvelope
	_, err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: password, Name: name}, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message == ErrEmailTaken.Error() {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return out.User, nil
}

// Logout ends the session, if any.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	return err
}

// CurrentUser returns the signed-in user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out userEnvelope
	status, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out)
	if err != nil {
		switch status {
		case http.StatusUnauthorized:
			return nil, ErrUnauthenticated
		case http.StatusNotFound:
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return out.User, nil
}

// do sends body as JSON and decodes a 2xx answer into out. On failure the
// status code is returned alongside the error; it is 0 for transport faults.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var env errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: env.Error, Details: env.Details}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
