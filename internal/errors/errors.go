// Package errors provides domain-specific error types and sentinel errors
// shared by the scraper client and the API surface.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested page or resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden indicates the portal refused access, usually because the
	// session is not (or no longer) authenticated.
	ErrForbidden = errors.New("access denied")

	// ErrRateLimited indicates the portal is throttling us.
	ErrRateLimited = errors.New("rate limited by portal")

	// ErrUnexpectedStatus indicates a response status outside the handled set.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// ScraperError represents a portal fetch failure with its context.
type ScraperError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ScraperError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("scraper error (url=%s, status=%d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("scraper error (url=%s): %v", e.URL, e.Err)
}

func (e *ScraperError) Unwrap() error {
	return e.Err
}

// NewScraperError creates a new scraper error.
func NewScraperError(url string, statusCode int, err error) *ScraperError {
	return &ScraperError{
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}

// StatusCode extracts the HTTP status from an error chain, or 0.
func StatusCode(err error) int {
	var se *ScraperError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
