// Package scraper implements the rate-limited, retrying HTTP session used
// to fetch pages from www.mountaineers.org, including the Plone form login
// needed for member-only pages.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	apperrors "github.com/alpental/mountaineers-go/internal/errors"
	"github.com/alpental/mountaineers-go/internal/logger"
	"github.com/alpental/mountaineers-go/internal/metrics"
)

// ErrNoCredentials is returned when an authenticated fetch is attempted
// without configured portal credentials.
var ErrNoCredentials = errors.New("scraper: MOUNTAINEERS_USERNAME and MOUNTAINEERS_PASSWORD not configured")

// The Plone login form carries a CSRF token in a hidden field.
var authenticatorRE = regexp.MustCompile(`name="_authenticator"\s+value="([^"]*)"`)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Username   string
	Password   string
	Timeout    time.Duration
	MinDelay   time.Duration
	MaxDelay   time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
}

// Client is the portal HTTP session. All fetches share one cookie jar, one
// request pacer, and one in-flight deduplication group.
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
	flight      FetchGroup
	baseURL     string
	username    string
	password    string
	maxRetries  int
	retryDelay  time.Duration
	log         *logger.Logger
	metrics     *metrics.Metrics

	mu       sync.Mutex
	loggedIn bool
}

// NewClient creates a portal session client.
func NewClient(opts Options) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 1 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logger.New("info")
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		rateLimiter: NewRateLimiter(opts.MinDelay, opts.MaxDelay),
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		username:    opts.Username,
		password:    opts.Password,
		maxRetries:  opts.MaxRetries,
		retryDelay:  opts.RetryDelay,
		log:         log.WithModule("scraper"),
		metrics:     opts.Metrics,
	}, nil
}

// BaseURL returns the configured site origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasCredentials reports whether portal credentials are configured.
func (c *Client) HasCredentials() bool {
	return c.username != "" && c.password != ""
}

// Resolve makes a path absolute against the configured origin. Full URLs
// pass through untouched.
func (c *Client) Resolve(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// GetDocument fetches a page and parses it as HTML. Concurrent fetches of
// the same URL are collapsed into one request.
func (c *Client) GetDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	pageURL = c.Resolve(pageURL)
	v, shared, err := c.flight.Do(ctx, pageURL, func() (any, error) {
		body, err := c.fetch(ctx, "page", http.MethodGet, pageURL, "", nil)
		if err != nil {
			return nil, err
		}
		return parseDocument(body)
	})
	if err != nil {
		return nil, err
	}
	if shared && c.metrics != nil {
		c.metrics.RecordSingleflightDedup("page")
	}
	return v.(*goquery.Document), nil
}

// GetFaceted runs a faceted search under basePath and parses the returned
// results fragment.
func (c *Client) GetFaceted(ctx context.Context, basePath string, params url.Values) (*goquery.Document, error) {
	queryURL := c.Resolve(basePath) + "/@@faceted_query"
	if encoded := params.Encode(); encoded != "" {
		queryURL += "?" + encoded
	}

	body, err := c.fetch(ctx, "faceted", http.MethodGet, queryURL, "", http.Header{
		"X-Requested-With": {"XMLHttpRequest"},
	})
	if err != nil {
		return nil, err
	}
	return parseDocument(body)
}

// GetRoster fetches the roster tab fragment of an activity. Requires a
// logged-in session.
func (c *Client) GetRoster(ctx context.Context, activityURL string) (*goquery.Document, error) {
	if err := c.EnsureLoggedIn(ctx); err != nil {
		return nil, err
	}

	rosterURL := strings.TrimRight(c.Resolve(activityURL), "/") + "/roster-tab"
	body, err := c.fetch(ctx, "roster", http.MethodGet, rosterURL, "", http.Header{
		"X-Requested-With": {"XMLHttpRequest"},
	})
	if err != nil {
		return nil, err
	}
	return parseDocument(body)
}

// GetJSON fetches a JSON endpoint into v. Requires a logged-in session.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	if err := c.EnsureLoggedIn(ctx); err != nil {
		return err
	}

	body, err := c.fetch(ctx, "json", http.MethodGet, c.Resolve(path), "", http.Header{
		"Accept":           {"application/json"},
		"X-Requested-With": {"XMLHttpRequest"},
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// EnsureLoggedIn logs in once per session. Safe for concurrent use.
func (c *Client) EnsureLoggedIn(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loggedIn {
		return nil
	}
	if err := c.login(ctx); err != nil {
		if c.metrics != nil {
			c.metrics.RecordLoginAttempt("error")
		}
		return err
	}
	if c.metrics != nil {
		c.metrics.RecordLoginAttempt("success")
	}
	c.loggedIn = true
	return nil
}

// login performs the Plone form login: fetch the login page for session
// cookies and the CSRF token, then post the credentials. The cookie jar
// carries the authenticated session from there.
func (c *Client) login(ctx context.Context) error {
	if !c.HasCredentials() {
		return ErrNoCredentials
	}

	loginURL := c.baseURL + "/login"
	page, err := c.fetch(ctx, "login", http.MethodGet, loginURL, "", nil)
	if err != nil {
		return fmt.Errorf("fetch login page: %w", err)
	}

	form := url.Values{}
	form.Set("__ac_name", c.username)
	form.Set("__ac_password", c.password)
	form.Set("came_from", "")
	if m := authenticatorRE.FindSubmatch(page); m != nil {
		form.Set("_authenticator", string(m[1]))
	}
	form.Set("buttons.login", "Log in")

	if _, err := c.fetch(ctx, "login", http.MethodPost, loginURL, form.Encode(), nil); err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}

	c.log.WithField("user", c.username).Info("logged in to portal")
	return nil
}

// fetch performs one HTTP exchange with pacing, retries, and response
// decoding. formBody, when non-empty, is sent urlencoded as a POST body on
// every attempt.
func (c *Client) fetch(ctx context.Context, endpoint, method, fullURL, formBody string, header http.Header) ([]byte, error) {
	var body []byte
	start := time.Now()

	err := RetryWithBackoff(ctx, c.maxRetries, c.retryDelay, func() error {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return Permanent(err)
		}
		if c.metrics != nil {
			c.metrics.RecordRateLimiterWait(time.Since(waitStart).Seconds())
		}

		var reqBody io.Reader
		if formBody != "" {
			reqBody = strings.NewReader(formBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
		if err != nil {
			return Permanent(fmt.Errorf("create request: %w", err))
		}

		req.Header.Set("User-Agent", uarand.GetRandom())
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept-Encoding", "gzip")
		if formBody != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		for key, values := range header {
			req.Header[key] = values
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", fullURL, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			switch resp.StatusCode {
			case http.StatusTooManyRequests:
				return apperrors.NewScraperError(fullURL, resp.StatusCode, apperrors.ErrRateLimited)
			case http.StatusNotFound:
				return Permanent(apperrors.NewScraperError(fullURL, resp.StatusCode, apperrors.ErrNotFound))
			case http.StatusForbidden, http.StatusUnauthorized:
				return Permanent(apperrors.NewScraperError(fullURL, resp.StatusCode, apperrors.ErrForbidden))
			default:
				// 5xx and anything else unexpected stays retryable.
				return apperrors.NewScraperError(fullURL, resp.StatusCode, apperrors.ErrUnexpectedStatus)
			}
		}

		body, err = decodeBody(resp)
		if err != nil {
			return err
		}
		return nil
	})

	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
			if errors.Is(err, apperrors.ErrNotFound) {
				status = "not_found"
			}
		}
		c.metrics.RecordScraperRequest(endpoint, status, time.Since(start).Seconds())
	}
	if err != nil {
		c.log.WithError(err).WithField("url", fullURL).Warn("fetch failed")
		return nil, err
	}
	return body, nil
}

// decodeBody reads a response body, undoing gzip encoding and transcoding
// the occasional Latin-1 page to UTF-8.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decompress gzip: %w", err)
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "iso-8859-1") || strings.Contains(contentType, "latin1") {
		reader = transform.NewReader(reader, charmap.ISO8859_1.NewDecoder())
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

func parseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}
