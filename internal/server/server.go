// Package server exposes the aggregation pipeline over HTTP: the
// aggregate view, the profile and game-detail lookups, vanity-name
// resolution, health and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lepinkainen/steamlens/internal/aggregate"
	"github.com/lepinkainen/steamlens/internal/metrics"
	"github.com/lepinkainen/steamlens/internal/steam"
)

const (
	defaultRequestTimeout = 60 * time.Second
	resolveCacheEntries   = 1024
)

// Server is the steamlens HTTP server.
type Server struct {
	httpServer     *http.Server
	client         *steam.Client
	builder        *aggregate.Builder
	resolveCache   *lru.Cache[string, string]
	requestTimeout time.Duration
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithRequestTimeout bounds how long one request may run, enrichment
// fan-out included.
func WithRequestTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// NewServer creates a Server listening on the given port.
func NewServer(port int, client *steam.Client, builder *aggregate.Builder, opts ...ServerOption) *Server {
	resolveCache, _ := lru.New[string, string](resolveCacheEntries)

	s := &Server{
		client:         client,
		builder:        builder,
		resolveCache:   resolveCache,
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Timeout(s.requestTimeout))

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/steam", func(r chi.Router) {
		r.Get("/", s.handleAggregate)
		r.Get("/profile", s.handleProfile)
		r.Get("/game", s.handleGameDetails)
		r.Get("/resolve", s.handleResolve)
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") || strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}
