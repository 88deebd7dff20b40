// Package tools implements the operations exposed by the API surface, one
// per portal task: faceted searches, detail lookups, and the authenticated
// member operations. Each operation maps its input onto portal requests,
// delegates extraction to the mountaineers parsers, and post-processes with
// listops.
package tools

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher is the portal transport the operations run on. *scraper.Client
// implements it; tests substitute a fake.
type Fetcher interface {
	GetDocument(ctx context.Context, pageURL string) (*goquery.Document, error)
	GetFaceted(ctx context.Context, basePath string, params url.Values) (*goquery.Document, error)
	GetRoster(ctx context.Context, activityURL string) (*goquery.Document, error)
	GetJSON(ctx context.Context, path string, v any) error
	EnsureLoggedIn(ctx context.Context) error
	BaseURL() string
}

// Canonical path prefixes for slug inputs, per entity kind. Courses live
// under /courses/ on detail pages even though their search vertical is under
// /activities/.
const (
	activityPathPrefix   = "/activities/activities/"
	coursePathPrefix     = "/courses/courses-clinics-seminars/"
	routePathPrefix      = "/activities/routes-places/"
	tripReportPathPrefix = "/activities/trip-reports/"
)

// entityURL accepts either a full URL or a bare slug and returns the
// canonical page URL.
func entityURL(f Fetcher, prefix, slugOrURL string) string {
	if strings.HasPrefix(slugOrURL, "http") {
		return slugOrURL
	}
	return f.BaseURL() + prefix + slugOrURL
}
