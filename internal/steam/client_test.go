package steam

import (
	"net/http/httptest"
	"time"

	"github.com/lepinkainen/steamlens/internal/fetch"
)

// newTestClient builds a client pointed at a fake upstream, with rate
// limiting disabled and retry delays removed.
func newTestClient(server *httptest.Server) *Client {
	return NewClient("test-key",
		WithAPIBaseURL(server.URL),
		WithStoreBaseURL(server.URL),
		WithAPILimiter(nil),
		WithStoreLimiter(nil),
		WithFetchClient(fetch.NewClient(
			fetch.WithHTTPClient(server.Client()),
			fetch.WithSleepFunc(func(time.Duration) {}),
		)),
	)
}
