// Package fetch provides the resilient HTTP GET used against the Steam
// Store. The Store answers rate-limited or broken requests with HTML
// error pages, so a response is only accepted when it declares a JSON
// content type; anything else counts as a failed attempt and is retried
// with a linearly growing delay.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client performs JSON GETs with retry and content-type validation.
type Client struct {
	httpClient  HTTPDoer
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(time.Duration)
}

// NewClient creates a retrying fetch client with default settings
// (3 attempts, 1s base delay).
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		sleep:       time.Sleep,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithMaxAttempts sets the number of attempts before giving up.
func WithMaxAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.maxAttempts = attempts
		}
	}
}

// WithBaseDelay sets the base backoff delay. The wait after attempt n
// is baseDelay * n.
func WithBaseDelay(d time.Duration) Option {
	return func(client *Client) {
		if d >= 0 {
			client.baseDelay = d
		}
	}
}

// WithSleepFunc replaces the sleep function, so tests can observe
// backoff delays without waiting them out.
func WithSleepFunc(sleep func(time.Duration)) Option {
	return func(client *Client) {
		if sleep != nil {
			client.sleep = sleep
		}
	}
}

// GetJSON fetches url and decodes the JSON response into target.
// Failed attempts (network error, non-2xx status, non-JSON content
// type) are retried up to the configured attempt count, waiting
// baseDelay * attemptNumber between attempts. The last failure is
// returned once attempts are exhausted.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.doJSONRequest(ctx, url, target); err != nil {
			lastErr = err
			slog.Warn("Fetch attempt failed", "url", url, "attempt", attempt, "error", err)
			if attempt < c.maxAttempts {
				c.sleep(c.baseDelay * time.Duration(attempt))
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
			continue
		}
		slog.Debug("Fetch succeeded", "url", url, "attempt", attempt)
		return nil
	}

	slog.Error("Fetch retries exhausted", "url", url, "attempts", c.maxAttempts, "error", lastErr)
	return lastErr
}

func (c *Client) doJSONRequest(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// The Store serves HTML rate-limit and error pages with a 200
	// status. Those must never be parsed as JSON.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("non-JSON response (content type %q): %s", contentType, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
