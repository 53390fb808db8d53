// Package remote is the HTTP adapter to a blinky API server. Every operation
// is a single request/response round trip with no retries; failures are
// normalized into *Error carrying the status code and the server-provided
// message when the body has one.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blinky/internal/core"
	"blinky/internal/state"
)

// Error is the normalized store failure.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote store: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to one blinky server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL. The platform default
// transport is kept; only an overall timeout is applied.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Projects() state.Store[core.Project] {
	return &resource[core.Project]{client: c, path: "/projects"}
}

func (c *Client) Income() state.Store[core.Income] {
	return &resource[core.Income]{client: c, path: "/income"}
}

func (c *Client) Expenses() state.Store[core.Expense] {
	return &resource[core.Expense]{client: c, path: "/expenses"}
}

func (c *Client) Goals() state.Store[core.SavingsGoal] {
	return &resource[core.SavingsGoal]{client: c, path: "/savings-goals"}
}

// Summary fetches the server-side finance aggregates, optionally windowed to
// a month.
func (c *Client) Summary(ctx context.Context, year, month int) (core.Summary, []core.GoalOutlook, error) {
	path := "/summary"
	if year != 0 {
		path = fmt.Sprintf("/summary?year=%d&month=%d", year, month)
	}

	var payload struct {
		Summary core.Summary       `json:"summary"`
		Goals   []core.GoalOutlook `json:"goals"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return core.Summary{}, nil, err
	}
	return payload.Summary, payload.Goals, nil
}

// Healthy reports whether the server answers its health probe.
func (c *Client) Healthy(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// do issues one round trip. A non-2xx response becomes a *Error; out, when
// non-nil, receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Message: errorMessage(resp.Body, resp.StatusCode), StatusCode: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage surfaces the server's message text when the body carries one.
func errorMessage(body io.Reader, status int) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err == nil && len(data) > 0 {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			if payload.Error != "" {
				return payload.Error
			}
			if payload.Message != "" {
				return payload.Message
			}
		}
	}
	return http.StatusText(status)
}

// resource maps the four store operations onto one entity endpoint.
type resource[T state.Entity[T]] struct {
	client *Client
	path   string
}

func (r *resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *resource[T]) Insert(ctx context.Context, item T) error {
	return r.client.do(ctx, http.MethodPost, r.path, item, nil)
}

func (r *resource[T]) Replace(ctx context.Context, item T) error {
	return r.client.do(ctx, http.MethodPut, r.path+"/"+item.EntityID(), item, nil)
}

func (r *resource[T]) Remove(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.path+"/"+id, nil, nil)
}
