// Package client talks to the status page API on behalf of the public
// status view and the admin console.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/utils"
)

const defaultTimeout = 10 * time.Second

// Client performs public calls. Admin calls go through Admin().
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a client for the API rooted at baseURL, e.g.
// "http://localhost:3001/api".
func New(baseURL string, tokens TokenStore, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", baseURL)
	}
	if tokens == nil {
		tokens = &MemoryTokenStore{}
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Tokens returns the session slot used by admin calls.
func (c *Client) Tokens() TokenStore { return c.tokens }

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, false, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return fmt.Errorf("login response carried no token")
	}
	return c.tokens.SetToken(out.Token)
}

// Logout forgets the stored token. There is no server-side session.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// ListServices fetches the public service list.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := c.do(ctx, http.MethodGet, "/services", nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetService fetches one service without credentials.
func (c *Client) GetService(ctx context.Context, id string) (*domain.Service, error) {
	var out domain.Service
	if err := c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(id), nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, false, nil)
}

// Admin returns the view used by admin screens. Every call it makes
// carries the stored bearer token.
func (c *Client) Admin() *Admin {
	return &Admin{c: c}
}

// Admin performs authenticated calls.
type Admin struct {
	c *Client
}

func (a *Admin) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := a.c.do(ctx, http.MethodGet, "/services", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) GetService(ctx context.Context, id string) (*domain.Service, error) {
	var out domain.Service
	if err := a.c.do(ctx, http.MethodGet, "/services/"+url.PathEscape(id), nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Admin) CreateService(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error) {
	var out domain.Service
	if err := a.c.do(ctx, http.MethodPost, "/services", fields, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Admin) UpdateService(ctx context.Context, id string, fields domain.ServiceFields) (*domain.Service, error) {
	var out domain.Service
	if err := a.c.do(ctx, http.MethodPut, "/services/"+url.PathEscape(id), fields, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteService returns the server's confirmation message.
func (a *Admin) DeleteService(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := a.c.do(ctx, http.MethodDelete, "/services/"+url.PathEscape(id), nil, true, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, admin bool, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if admin {
		tok, err := c.tokens.Token()
		if err != nil {
			return err
		}
		if tok == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer utils.DrainAndClose(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeError(resp)
		if admin && resp.StatusCode == http.StatusUnauthorized {
			apiErr.sessionExpired = true
			if err := c.tokens.Clear(); err != nil {
				return fmt.Errorf("%w (and failed to clear session: %v)", apiErr, err)
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) *APIError {
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	return newAPIError(resp.StatusCode, body.Code, body.Error)
}
