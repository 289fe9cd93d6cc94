package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the service API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Health checks that the service answers /healthz.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// Submit posts one submission and returns the rows the service wrote.
func (c *Client) Submit(ctx context.Context, sub any) (int, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out submitResponse
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.Inserted, nil
}

// Summary fetches the per-date summary.
func (c *Client) Summary(ctx context.Context, date string) (Summary, error) {
	target := c.baseURL + "/api/summary?date=" + url.QueryEscape(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create request: %w", err)
	}
	var out Summary
	if err := c.do(req, &out); err != nil {
		return Summary{}, err
	}
	return out, nil
}

// envelope is implemented by every API response.
type envelope interface {
	failure() (bool, string)
}

func (r *Summary) failure() (bool, string) { return !r.OK, r.Error }
func (r *submitResponse) failure() (bool, string) { return !r.OK, r.Error }

func (c *Client) do(req *http.Request, out envelope) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: status %d: %w", req.Method, req.URL.Path, resp.StatusCode, err)
	}
	if failed, msg := out.failure(); failed || resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, msg)
	}
	return nil
}
