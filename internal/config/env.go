// Package config defines environment variable keys for configuration.
package config

const (
	// Server
	EnvPort            = "MOUNTAINEERS_PORT"
	EnvLogLevel        = "MOUNTAINEERS_LOG_LEVEL"
	EnvShutdownTimeout = "MOUNTAINEERS_SHUTDOWN_TIMEOUT"

	// Portal session
	EnvBaseURL  = "MOUNTAINEERS_BASE_URL"
	EnvUsername = "MOUNTAINEERS_USERNAME"
	EnvPassword = "MOUNTAINEERS_PASSWORD" //nolint:gosec // env key, not a credential

	// Scraper
	EnvScraperTimeout    = "MOUNTAINEERS_SCRAPER_TIMEOUT"
	EnvScraperMinDelay   = "MOUNTAINEERS_SCRAPER_MIN_DELAY"
	EnvScraperMaxDelay   = "MOUNTAINEERS_SCRAPER_MAX_DELAY"
	EnvScraperMaxRetries = "MOUNTAINEERS_SCRAPER_MAX_RETRIES"
	EnvScraperRetryDelay = "MOUNTAINEERS_SCRAPER_RETRY_DELAY"

	// Sentry Feature
	EnvSentryDSN         = "MOUNTAINEERS_SENTRY_DSN"
	EnvSentryEnvironment = "MOUNTAINEERS_SENTRY_ENVIRONMENT"

	// Metrics Auth Feature
	EnvMetricsUsername = "MOUNTAINEERS_METRICS_USERNAME"
	EnvMetricsPassword = "MOUNTAINEERS_METRICS_PASSWORD" //nolint:gosec // env key, not a credential
)
