// Package api implements the HTTP client for the remote business API.
//
// Every dashboard resource (companies, branches, products, orders, bills,
// invoices, payments) lives behind this API; the dashboard never persists
// entities itself. Calls attach a bearer token, issue exactly one request
// and translate non-2xx responses into *Error. No retries, no backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/meridian-bms/meridian/internal/platform/httpx"
)

const genericFailure = "request to business api failed"

// Error carries the upstream HTTP status and the server-supplied message.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return genericFailure
	}
	return e.Message
}

// Unwrap maps upstream statuses onto the shared sentinels so callers can
// classify with errors.Is without parsing messages.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return httpx.ErrUnauthorized
	case http.StatusNotFound:
		return httpx.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return httpx.ErrValidation
	default:
		return httpx.ErrUpstream
	}
}

// errorBody mirrors the error shape the remote API returns.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// Observer counts upstream calls by method and response status.
type Observer interface {
	ObserveUpstream(method string, status int)
}

// Client issues authenticated requests against the remote API.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	observer Observer
}

// New constructs a Client for the given base URL.
func New(baseURL string, logger *slog.Logger) (*Client, error) {
	trimmed := strings.TrimRight(baseURL, "/")
	if trimmed == "" {
		return nil, errors.New("api: base url required")
	}
	return &Client{baseURL: trimmed, http: &http.Client{}, logger: logger}, nil
}

// SetObserver installs the upstream call counter. Nil disables counting.
func (c *Client) SetObserver(obs Observer) {
	c.observer = obs
}

// Get fetches path and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, token, path string, out any) error {
	return c.do(ctx, http.MethodGet, token, path, nil, out)
}

// Post sends payload to path and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, token, path string, payload, out any) error {
	return c.do(ctx, http.MethodPost, token, path, payload, out)
}

// Put replaces the resource at path.
func (c *Client) Put(ctx context.Context, token, path string, payload, out any) error {
	return c.do(ctx, http.MethodPut, token, path, payload, out)
}

// Patch partially updates the resource at path.
func (c *Client) Patch(ctx context.Context, token, path string, payload, out any) error {
	return c.do(ctx, http.MethodPatch, token, path, payload, out)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, token, path string) error {
	return c.do(ctx, http.MethodDelete, token, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, token, path string, payload, out any) error {
	if c == nil {
		return errors.New("api: client not initialised")
	}
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.observer != nil {
			c.observer.ObserveUpstream(method, 0)
		}
		return fmt.Errorf("%w: %s %s: %v", httpx.ErrUpstream, method, path, err)
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(method, resp.StatusCode)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: readMessage(resp.Body)}
		if c.logger != nil {
			c.logger.Warn("api call failed",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", resp.StatusCode))
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// readMessage pulls detail/message from an error body, empty when unparseable.
func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}
	return parsed.Message
}
