// Package metrics defines the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Scraper metrics
	ScraperRequestsTotal   *prometheus.CounterVec
	ScraperDurationSeconds *prometheus.HistogramVec

	// Session metrics
	LoginAttemptsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterWaitDuration prometheus.Histogram

	// Singleflight metrics
	SingleflightDedupTotal *prometheus.CounterVec

	// API metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIDurationSeconds *prometheus.HistogramVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		ScraperRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mountaineers_scraper_requests_total",
				Help: "Total number of upstream page fetches by endpoint and status",
			},
			[]string{"endpoint", "status"}, // status: success, error, not_found
		),

		ScraperDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mountaineers_scraper_duration_seconds",
				Help:    "Upstream fetch duration in seconds by endpoint",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"endpoint"},
		),

		LoginAttemptsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mountaineers_login_attempts_total",
				Help: "Total number of portal login attempts by status",
			},
			[]string{"status"}, // status: success, error
		),

		RateLimiterWaitDuration: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mountaineers_rate_limiter_wait_duration_seconds",
				Help:    "Time spent waiting for the outbound request pacer",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
		),

		SingleflightDedupTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mountaineers_singleflight_dedup_total",
				Help: "Total number of fetches that piggybacked on an in-flight identical fetch",
			},
			[]string{"endpoint"},
		),

		APIRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mountaineers_api_requests_total",
				Help: "Total number of API requests by route and status code",
			},
			[]string{"route", "code"},
		),

		APIDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mountaineers_api_duration_seconds",
				Help:    "API request duration in seconds by route",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
			},
			[]string{"route"},
		),
	}
}

// RecordScraperRequest records one upstream fetch with its outcome
func (m *Metrics) RecordScraperRequest(endpoint, status string, duration float64) {
	m.ScraperRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.ScraperDurationSeconds.WithLabelValues(endpoint).Observe(duration)
}

// RecordLoginAttempt records a portal login attempt
func (m *Metrics) RecordLoginAttempt(status string) {
	m.LoginAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordRateLimiterWait records time spent waiting for the pacer
func (m *Metrics) RecordRateLimiterWait(duration float64) {
	m.RateLimiterWaitDuration.Observe(duration)
}

// RecordSingleflightDedup records a deduplicated fetch
func (m *Metrics) RecordSingleflightDedup(endpoint string) {
	m.SingleflightDedupTotal.WithLabelValues(endpoint).Inc()
}

// RecordAPIRequest records one served API request
func (m *Metrics) RecordAPIRequest(route, code string, duration float64) {
	m.APIRequestsTotal.WithLabelValues(route, code).Inc()
	m.APIDurationSeconds.WithLabelValues(route).Observe(duration)
}
