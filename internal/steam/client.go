// Package steam is the client for the two Steam upstreams: the Web API
// (api.steampowered.com) for identity, library, wishlist and vanity
// resolution, and the Store (store.steampowered.com) for per-app
// catalog details. Each fetcher normalizes its response fully before
// returning, so callers never re-guess defaults.
package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/steamlens/internal/fetch"
	"github.com/lepinkainen/steamlens/internal/ratelimit"
)

const (
	defaultAPIBaseURL   = "https://api.steampowered.com"
	defaultStoreBaseURL = "https://store.steampowered.com"

	// The Web API tolerates bursts; the Store throttles hard and is the
	// reason the appdetails path goes through the retrying fetcher.
	defaultAPIRatePerSecond   = 10
	defaultStoreRatePerSecond = 2
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the Steam Web API and Store endpoints.
type Client struct {
	apiKey       string
	apiBaseURL   string
	storeBaseURL string
	httpClient   HTTPDoer
	fetcher      *fetch.Client
	apiLimiter   *ratelimit.Limiter
	storeLimiter *ratelimit.Limiter
}

// NewClient creates a Steam client. The API key is required for the
// identity, library and vanity endpoints; the wishlist and Store
// endpoints are keyless.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:       apiKey,
		apiBaseURL:   defaultAPIBaseURL,
		storeBaseURL: defaultStoreBaseURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		apiLimiter:   ratelimit.New("steam-api", defaultAPIRatePerSecond),
		storeLimiter: ratelimit.NewWithBurst("steam-store", defaultStoreRatePerSecond, 4),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.fetcher == nil {
		client.fetcher = fetch.NewClient(fetch.WithHTTPClient(client.httpClient))
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

// WithAPIBaseURL sets a custom base URL for the Steam Web API.
func WithAPIBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.apiBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithStoreBaseURL sets a custom base URL for the Steam Store API.
func WithStoreBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.storeBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithFetchClient sets the retrying fetch client used for Store calls.
func WithFetchClient(f *fetch.Client) Option {
	return func(client *Client) {
		if f != nil {
			client.fetcher = f
		}
	}
}

// WithAPILimiter sets the Web API rate limiter. Pass nil to disable.
func WithAPILimiter(l *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.apiLimiter = l
	}
}

// WithStoreLimiter sets the Store rate limiter. Pass nil to disable.
func WithStoreLimiter(l *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.storeLimiter = l
	}
}

// getJSON issues one Web API GET with no retries. The Web API fetchers
// are single-call by design; only the Store path retries.
func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	if err := c.apiLimiter.Wait(ctx); err != nil {
		return err
	}

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

	return json.NewDecoder(resp.Body).Decode(target)
}
