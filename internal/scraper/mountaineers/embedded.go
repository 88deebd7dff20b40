package mountaineers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Client-rendered listings embed their data as JSON in the patternslib
// component marker attribute.
const (
	embeddedListingSelector = ".pat-contentlisting[data-pat-contentlisting]"
	embeddedListingAttr     = "data-pat-contentlisting"
)

// leaderRoles are the roster roles that count as leading an activity,
// matched case-insensitively.
var leaderRoles = map[string]struct{}{
	"leader":           {},
	"primary leader":   {},
	"co-leader":        {},
	"assistant leader": {},
	"instructor":       {},
	"mentor":           {},
}

func isLeaderRole(role string) bool {
	_, ok := leaderRoles[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// rawLeader accepts the three wire encodings of a leader field: a bare
// string, an object with name/href, or null. Decoded once here so nothing
// downstream sees the union.
type rawLeader struct {
	Name string
	Href string
}

func (l *rawLeader) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &l.Name)
	}
	var obj struct {
		Name string `json:"name"`
		Href string `json:"href"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	l.Name, l.Href = obj.Name, obj.Href
	return nil
}

// rawActivityRecord covers both the embedded-listing and the
// activity-history record shapes; absent fields stay zero.
type rawActivityRecord struct {
	UID              string    `json:"uid"`
	Href             string    `json:"href"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	ActivityType     string    `json:"activity_type"`
	Start            string    `json:"start"`
	Date             string    `json:"date"`
	Leader           rawLeader `json:"leader"`
	IsLeader         bool      `json:"is_leader"`
	Position         string    `json:"position"`
	Status           string    `json:"status"`
	Result           string    `json:"result"`
	TripResults      string    `json:"trip_results"`
	DifficultyRating string    `json:"difficulty_rating"`
	LeaderRating     string    `json:"leader_rating"`
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// normalizeRecord maps a raw record into the shared MyActivity shape.
// ISO datetimes are truncated to the date part; a missing uid is derived
// from the URL's trailing segment. Course items carry a "date" range string
// instead of "start"; its HTML entities are decoded before truncation.
func normalizeRecord(raw rawActivityRecord, baseURL, defaultCategory string) MyActivity {
	uid := raw.UID
	if uid == "" && raw.Href != "" {
		uid = trailingSegment(raw.Href)
	}

	url := ""
	if raw.Href != "" {
		url = resolveHref(baseURL, raw.Href)
	}

	start := raw.Start
	if start == "" && raw.Date != "" {
		start = strings.TrimSpace(html.UnescapeString(raw.Date))
	}
	if len(start) > 10 {
		start = start[:10]
	}

	category := raw.Category
	if category == "" {
		category = defaultCategory
	}

	result := raw.TripResults
	if result == "" {
		result = raw.Result
	}

	return MyActivity{
		UID:          uid,
		Title:        raw.Title,
		URL:          url,
		Category:     nonEmpty(category),
		ActivityType: nonEmpty(raw.ActivityType),
		StartDate:    nonEmpty(start),
		Leader:       nonEmpty(raw.Leader.Name),
		IsLeader:     raw.IsLeader || isLeaderRole(raw.Position),
		Position:     nonEmpty(raw.Position),
		Status:       nonEmpty(raw.Status),
		Result:       nonEmpty(result),
		Difficulty:   nonEmpty(raw.DifficultyRating),
		LeaderRating: nonEmpty(raw.LeaderRating),
	}
}

// ParseEmbeddedMyActivities extracts the member activity listing a profile
// dashboard embeds for client-side rendering. A missing marker element means
// an empty list; a marker with corrupt JSON is an error, since a payload
// that exists but cannot be decoded is not the same as no payload.
func ParseEmbeddedMyActivities(doc *goquery.Document, baseURL string) ([]MyActivity, error) {
	marker := doc.Find(embeddedListingSelector).First()
	if marker.Length() == 0 {
		return []MyActivity{}, nil
	}

	payload := marker.AttrOr(embeddedListingAttr, "")
	var listing struct {
		Activities []rawActivityRecord `json:"activities"`
		Courses    []rawActivityRecord `json:"courses"`
	}
	if err := json.Unmarshal([]byte(payload), &listing); err != nil {
		return nil, fmt.Errorf("decode embedded listing: %w", err)
	}

	out := make([]MyActivity, 0, len(listing.Activities)+len(listing.Courses))
	for _, raw := range listing.Activities {
		out = append(out, normalizeRecord(raw, baseURL, "trip"))
	}
	for _, raw := range listing.Courses {
		out = append(out, normalizeRecord(raw, baseURL, "course"))
	}
	return out, nil
}

// NormalizeActivityHistory decodes the member-activity-history endpoint
// body. The endpoint returns either a bare array or an object wrapping the
// array under items, results, or data.
func NormalizeActivityHistory(data []byte, baseURL string) ([]MyActivity, error) {
	data = bytes.TrimSpace(data)

	var records []rawActivityRecord
	if len(data) > 0 && data[0] == '{' {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("decode activity history: %w", err)
		}
		for _, key := range []string{"items", "results", "data"} {
			raw, ok := wrapper[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &records); err == nil {
				break
			}
			records = nil
		}
	} else {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode activity history: %w", err)
		}
	}

	out := make([]MyActivity, 0, len(records))
	for _, raw := range records {
		out = append(out, normalizeRecord(raw, baseURL, ""))
	}
	return out, nil
}
