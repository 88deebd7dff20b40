package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const testBase = "https://www.mountaineers.org"

// fakeFetcher serves canned pages keyed by the exact URL or path the
// operation requests, and records what was asked for.
type fakeFetcher struct {
	base        string
	docs        map[string]string
	jsonBodies  map[string]string
	facetedHTML string
	rosterHTML  string
	loginErr    error

	loginCalls    int
	requestedDocs []string
	facetedPath   string
	facetedParams url.Values
	rosterURL     string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		base:       testBase,
		docs:       map[string]string{},
		jsonBodies: map[string]string{},
	}
}

func (f *fakeFetcher) BaseURL() string { return f.base }

func (f *fakeFetcher) EnsureLoggedIn(context.Context) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeFetcher) GetDocument(_ context.Context, pageURL string) (*goquery.Document, error) {
	f.requestedDocs = append(f.requestedDocs, pageURL)
	html, ok := f.docs[pageURL]
	if !ok {
		return nil, fmt.Errorf("no page for %s", pageURL)
	}
	return parseHTML(html)
}

func (f *fakeFetcher) GetFaceted(_ context.Context, basePath string, params url.Values) (*goquery.Document, error) {
	f.facetedPath = basePath
	f.facetedParams = params
	return parseHTML(f.facetedHTML)
}

func (f *fakeFetcher) GetRoster(_ context.Context, activityURL string) (*goquery.Document, error) {
	f.rosterURL = activityURL
	return parseHTML(f.rosterHTML)
}

func (f *fakeFetcher) GetJSON(_ context.Context, path string, v any) error {
	body, ok := f.jsonBodies[path]
	if !ok {
		return fmt.Errorf("no JSON for %s", path)
	}
	return json.Unmarshal([]byte(body), v)
}

func parseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func requestedDoc(t *testing.T, f *fakeFetcher, i int) string {
	t.Helper()
	if len(f.requestedDocs) <= i {
		t.Fatalf("only %d documents requested", len(f.requestedDocs))
	}
	return f.requestedDocs[i]
}
