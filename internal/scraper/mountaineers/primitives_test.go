package mountaineers

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const testBase = "https://www.mountaineers.org"

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

func TestExtractTextCollapsesWhitespace(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `<div class="x">  Lots   of
		spaces  </div>`)

	got := extractText(doc.Selection, ".x")
	if got == nil {
		t.Fatal("Expected text, got nil")
	}
	if *got != "Lots of spaces" {
		t.Errorf("extractText = %q, want %q", *got, "Lots of spaces")
	}
}

func TestExtractTextEmptyIsNil(t *testing.T) {
	t.Parallel()
	doc := mustDoc(t, `<div class="x">   </div>`)

	if got := extractText(doc.Selection, ".x"); got != nil {
		t.Errorf("Expected nil for whitespace-only text, got %q", *got)
	}
	if got := extractText(doc.Selection, ".missing"); got != nil {
		t.Errorf("Expected nil for missing selector, got %q", *got)
	}
}

func TestResolveHref(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Relative path gets base prefix",
			raw:  "/activities/day-hike",
			want: testBase + "/activities/day-hike",
		},
		{
			name: "Absolute https URL passes through",
			raw:  "https://example.com/page",
			want: "https://example.com/page",
		},
		{
			name: "Absolute http URL passes through",
			raw:  "http://example.com/page",
			want: "http://example.com/page",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveHref(testBase, tt.raw); got != tt.want {
				t.Errorf("resolveHref(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseResultCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "Plain number with id container",
			html: `<div id="faceted-result-count">42 results</div>`,
			want: 42,
		},
		{
			name: "Comma separated thousands",
			html: `<div id="faceted-result-count">1,234 results</div>`,
			want: 1234,
		},
		{
			name: "Class container variant",
			html: `<span class="faceted-result-count">17 items</span>`,
			want: 17,
		},
		{
			name: "Missing counter",
			html: `<div>nothing here</div>`,
			want: 0,
		},
		{
			name: "Counter without digits",
			html: `<div id="faceted-result-count">no results found</div>`,
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := parseResultCount(mustDoc(t, tt.html)); got != tt.want {
				t.Errorf("parseResultCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrailingSegment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Plain path",
			input: "/activities/activities/day-hike-mount-si",
			want:  "day-hike-mount-si",
		},
		{
			name:  "Trailing slash",
			input: "/activities/activities/day-hike-mount-si/",
			want:  "day-hike-mount-si",
		},
		{
			name:  "Full URL",
			input: "https://www.mountaineers.org/members/jane-doe",
			want:  "jane-doe",
		},
		{
			name:  "No slash",
			input: "bare",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := trailingSegment(tt.input); got != tt.want {
				t.Errorf("trailingSegment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMemberSlug(t *testing.T) {
	t.Parallel()
	if got := memberSlug("/personal-images/members/jane-doe/avatar.jpg"); got != "jane-doe" {
		t.Errorf("memberSlug = %q, want %q", got, "jane-doe")
	}
	if got := memberSlug("/images/avatar.jpg"); got != "" {
		t.Errorf("memberSlug = %q, want empty", got)
	}
}

func TestTitleTagPrefix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "Em dash separator",
			html: "<title>Jane Doe — The Mountaineers</title>",
			want: "Jane Doe",
		},
		{
			name: "En dash separator",
			html: "<title>Jane Doe – The Mountaineers</title>",
			want: "Jane Doe",
		},
		{
			name: "Hyphen separator",
			html: "<title>Jane Doe - The Mountaineers</title>",
			want: "Jane Doe",
		},
		{
			name: "No separator",
			html: "<title>Just a title</title>",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := titleTagPrefix(mustDoc(t, tt.html)); got != tt.want {
				t.Errorf("titleTagPrefix = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItemLabel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "Label element with colon",
			html: `<li><label>Difficulty:</label> Easy</li>`,
			want: "difficulty",
		},
		{
			name: "Strong element",
			html: `<li><strong>Activity Type:</strong> Hiking</li>`,
			want: "activity type",
		},
		{
			name: "Unlabeled item",
			html: `<li>Sat, Jun 14, 2025</li>`,
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := mustDoc(t, tt.html)
			if got := itemLabel(doc.Find("li")); got != tt.want {
				t.Errorf("itemLabel = %q, want %q", got, tt.want)
			}
		})
	}
}
