// Package client is the browser-side half of the application expressed
// as a Go library: a thin REST client plus a sync controller that owns
// the note snapshot, the active filter, and the view state machine.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"example.com/mynotes/internal/notes"
)

// User is the account shape auth endpoints return.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// APIError is an application-level failure: either a non-2xx status or
// a success:false envelope. Message is the server's user-facing text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsAuthFailure reports whether err is a 401 from the server.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to the REST API. The cookie jar carries the session, so
// one Client is one browser session.
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Jar: jar},
	}, nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &u)
	return u, err
}

func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/auth/register", nil,
		map[string]string{"name": name, "email": email, "password": password}, &u)
	return u, err
}

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": email, "password": password}, &u)
	return u, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/auth/logout", nil, nil, nil)
}

func (c *Client) ListNotes(ctx context.Context, f notes.Filter) ([]notes.Note, error) {
	q := url.Values{}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	var ns []notes.Note
	if err := c.do(ctx, http.MethodGet, "/notes", q, nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (notes.Note, error) {
	var n notes.Note
	err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, nil, &n)
	return n, err
}

func (c *Client) CreateNote(ctx context.Context, p notes.Payload) (notes.Note, error) {
	var n notes.Note
	err := c.do(ctx, http.MethodPost, "/notes", nil, p, &n)
	return n, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, p notes.Payload) (notes.Note, error) {
	var n notes.Note
	err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), nil, p, &n)
	return n, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil, nil)
}

// envelope mirrors respond.Envelope with raw data for two-step decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
