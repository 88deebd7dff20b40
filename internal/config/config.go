package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Portal session. Credentials are optional; without them the
	// member-only operations return an error instead of results.
	BaseURL  string
	Username string
	Password string

	// Scraper Configuration
	ScraperTimeout    time.Duration
	ScraperMinDelay   time.Duration // pacing between portal requests
	ScraperMaxDelay   time.Duration
	ScraperMaxRetries int
	ScraperRetryDelay time.Duration // initial backoff delay

	// Sentry
	SentryDSN         string
	SentryEnvironment string

	// Metrics Authentication
	MetricsUsername string // Basic Auth user for /metrics (default: "prometheus")
	MetricsPassword string // empty = no auth
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Ignore a missing .env file
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		BaseURL:  getEnv(EnvBaseURL, "https://www.mountaineers.org"),
		Username: getEnv(EnvUsername, ""),
		Password: getEnv(EnvPassword, ""),

		ScraperTimeout:    getDurationEnv(EnvScraperTimeout, 30*time.Second),
		ScraperMinDelay:   getDurationEnv(EnvScraperMinDelay, 500*time.Millisecond),
		ScraperMaxDelay:   getDurationEnv(EnvScraperMaxDelay, 1500*time.Millisecond),
		ScraperMaxRetries: getIntEnv(EnvScraperMaxRetries, 3),
		ScraperRetryDelay: getDurationEnv(EnvScraperRetryDelay, time.Second),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New(EnvBaseURL+" is required"))
	}
	if c.ScraperTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvScraperTimeout, c.ScraperTimeout))
	}
	if c.ScraperMinDelay < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvScraperMinDelay, c.ScraperMinDelay))
	}
	if c.ScraperMaxDelay < c.ScraperMinDelay {
		errs = append(errs, fmt.Errorf("%s must be at least %s", EnvScraperMaxDelay, EnvScraperMinDelay))
	}
	if c.ScraperMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvScraperMaxRetries, c.ScraperMaxRetries))
	}
	// A configured username without a password (or vice versa) is always a
	// mistake.
	if (c.Username == "") != (c.Password == "") {
		errs = append(errs, errors.New(EnvUsername+" and "+EnvPassword+" must be set together"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasCredentials returns true if portal credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
