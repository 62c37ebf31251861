// Package metrics exposes Prometheus instrumentation for the HTTP
// surface and the upstream Steam calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamlens_http_requests_total",
			Help: "Total HTTP requests handled, by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "steamlens_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "steamlens_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		},
	)
)

// Upstream metrics
var (
	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamlens_upstream_calls_total",
			Help: "Steam upstream calls, by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	EnrichmentFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steamlens_enrichment_failures_total",
			Help: "Catalog enrichments absorbed as missing details.",
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamlens_cache_lookups_total",
			Help: "Catalog cache lookups, by result (hit or miss).",
		},
		[]string{"result"},
	)
)

// RecordUpstreamCall increments the upstream counter with a success or
// error outcome.
func RecordUpstreamCall(endpoint string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamCallsTotal.WithLabelValues(endpoint, outcome).Inc()
}

// RecordCacheLookup increments the cache counter for a hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}
