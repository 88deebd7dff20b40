package tools

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/alpental/mountaineers-go/internal/listops"
	"github.com/alpental/mountaineers-go/internal/scraper/mountaineers"
)

// ErrProfileLinkNotFound means the home page carried no "My Profile" link,
// which usually means the login silently failed.
var ErrProfileLinkNotFound = errors.New("tools: profile link not found on home page")

var memberPathRE = regexp.MustCompile(`/members/([^/]+)`)

// Identity is the logged-in member's resolved identity.
type Identity struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ProfileURL string `json:"profile_url"`
}

// Whoami resolves the logged-in member by locating the "My Profile" link on
// the home page, then reads the display name off the profile page. The slug
// is the name of last resort.
func Whoami(ctx context.Context, f Fetcher) (Identity, error) {
	if err := f.EnsureLoggedIn(ctx); err != nil {
		return Identity{}, err
	}

	home, err := f.GetDocument(ctx, "/")
	if err != nil {
		return Identity{}, err
	}

	var profileURL string
	home.Find("a[href*='/members/']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.TrimSpace(a.Text()) != "My Profile" {
			return true
		}
		href := a.AttrOr("href", "")
		if strings.HasPrefix(href, "http") {
			profileURL = href
		} else {
			profileURL = f.BaseURL() + href
		}
		return false
	})
	if profileURL == "" {
		return Identity{}, ErrProfileLinkNotFound
	}

	slug := ""
	if m := memberPathRE.FindStringSubmatch(profileURL); m != nil {
		slug = m[1]
	}

	page, err := f.GetDocument(ctx, "/members/"+slug)
	if err != nil {
		return Identity{}, err
	}
	profile := mountaineers.ParseMemberProfile(page, f.BaseURL(), profileURL)

	name := profile.Name
	if name == "" || strings.EqualFold(name, "Profile") {
		name = slug
	}
	return Identity{Name: name, Slug: slug, ProfileURL: profileURL}, nil
}

// GetMyActivitiesInput filters the member's own activity list.
type GetMyActivitiesInput struct {
	Category string `form:"category" json:"category"`
	Result   string `form:"result" json:"result"`
	DateFrom string `form:"date_from" json:"date_from"`
	DateTo   string `form:"date_to" json:"date_to"`
	// Limit defaults to 20 when nil; explicit 0 returns everything.
	Limit *int `form:"limit" json:"limit"`
}

// GetMyActivities lists the logged-in member's activities and courses, most
// recent first. The member-activities page renders client-side, so the
// embedded payload is
// read first; when the page carries none, the activity-history JSON endpoint
// supplies the same records.
func GetMyActivities(ctx context.Context, f Fetcher, in GetMyActivitiesInput) ([]mountaineers.MyActivity, error) {
	me, err := Whoami(ctx, f)
	if err != nil {
		return nil, err
	}

	var activities []mountaineers.MyActivity
	if page, err := f.GetDocument(ctx, "/members/"+me.Slug+"/member-activities"); err == nil {
		activities, err = mountaineers.ParseEmbeddedMyActivities(page, f.BaseURL())
		if err != nil {
			return nil, err
		}
	}
	if len(activities) == 0 {
		activities, err = fetchActivityHistory(ctx, f, me.Slug)
		if err != nil {
			return nil, err
		}
	}

	listops.SortByDate(activities, startDate, true)
	activities = filterActivities(activities, in.Category, in.Result, "", in.DateFrom, in.DateTo)

	limit := 20
	if in.Limit != nil {
		limit = *in.Limit
	}
	activities, _ = listops.Limit(activities, limit)
	return activities, nil
}

// GetMyCoursesInput filters the member's own course list.
type GetMyCoursesInput struct {
	Result   string `form:"result" json:"result"`
	DateFrom string `form:"date_from" json:"date_from"`
	DateTo   string `form:"date_to" json:"date_to"`
	// Limit defaults to 20 when nil; explicit 0 returns everything.
	Limit *int `form:"limit" json:"limit"`
}

// GetMyCourses is GetMyActivities restricted to courses.
func GetMyCourses(ctx context.Context, f Fetcher, in GetMyCoursesInput) ([]mountaineers.MyActivity, error) {
	return GetMyActivities(ctx, f, GetMyActivitiesInput{
		Category: "course",
		Result:   in.Result,
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Limit:    in.Limit,
	})
}

// GetMyBadgesInput filters the member's badge list.
type GetMyBadgesInput struct {
	ActiveOnly bool   `form:"active_only" json:"active_only"`
	Name       string `form:"name" json:"name"`
}

// GetMyBadges lists the logged-in member's badges from their profile page.
func GetMyBadges(ctx context.Context, f Fetcher, in GetMyBadgesInput) ([]mountaineers.Badge, error) {
	me, err := Whoami(ctx, f)
	if err != nil {
		return nil, err
	}

	page, err := f.GetDocument(ctx, "/members/"+me.Slug)
	if err != nil {
		return nil, err
	}
	profile := mountaineers.ParseMemberProfile(page, f.BaseURL(), me.ProfileURL)

	badges := profile.Badges
	if in.ActiveOnly {
		today := time.Now().UTC().Format("2006-01-02")
		kept := badges[:0:0]
		for _, b := range badges {
			if b.Expires == nil || *b.Expires >= today {
				kept = append(kept, b)
			}
		}
		badges = kept
	}
	if in.Name != "" {
		needle := strings.ToLower(in.Name)
		kept := badges[:0:0]
		for _, b := range badges {
			if strings.Contains(strings.ToLower(b.Name), needle) {
				kept = append(kept, b)
			}
		}
		badges = kept
	}
	return badges, nil
}

// GetActivityHistoryInput filters the full activity history.
type GetActivityHistoryInput struct {
	Category     string `form:"category" json:"category"`
	Result       string `form:"result" json:"result"`
	ActivityType string `form:"activity_type" json:"activity_type"`
	DateFrom     string `form:"date_from" json:"date_from"`
	DateTo       string `form:"date_to" json:"date_to"`
	// Limit defaults to 20 when nil; explicit 0 returns everything.
	Limit *int `form:"limit" json:"limit"`
}

// GetActivityHistory returns the member's full activity history, most recent
// first, from the activity-history JSON endpoint.
func GetActivityHistory(ctx context.Context, f Fetcher, in GetActivityHistoryInput) (mountaineers.ListResult[mountaineers.MyActivity], error) {
	me, err := Whoami(ctx, f)
	if err != nil {
		return mountaineers.ListResult[mountaineers.MyActivity]{}, err
	}

	activities, err := fetchActivityHistory(ctx, f, me.Slug)
	if err != nil {
		return mountaineers.ListResult[mountaineers.MyActivity]{}, err
	}

	listops.SortByDate(activities, startDate, true)
	activities = filterActivities(activities, in.Category, in.Result, in.ActivityType, in.DateFrom, in.DateTo)

	limit := 20
	if in.Limit != nil {
		limit = *in.Limit
	}
	items, total := listops.Limit(activities, limit)
	return mountaineers.ListResult[mountaineers.MyActivity]{
		TotalCount: total,
		Items:      items,
		Limit:      limit,
	}, nil
}

// fetchActivityHistory pulls member-activity-history.json, whose shape
// varies, and normalizes it.
func fetchActivityHistory(ctx context.Context, f Fetcher, slug string) ([]mountaineers.MyActivity, error) {
	var raw json.RawMessage
	if err := f.GetJSON(ctx, "/members/"+slug+"/member-activity-history.json", &raw); err != nil {
		return nil, err
	}
	return mountaineers.NormalizeActivityHistory(raw, f.BaseURL())
}

func filterActivities(activities []mountaineers.MyActivity, category, result, activityType, dateFrom, dateTo string) []mountaineers.MyActivity {
	if category != "" {
		activities = listops.FilterEqualFold(activities, func(a mountaineers.MyActivity) *string { return a.Category }, category)
	}
	if result != "" {
		activities = listops.FilterEqualFold(activities, func(a mountaineers.MyActivity) *string { return a.Result }, result)
	}
	if activityType != "" {
		activities = listops.FilterEqualFold(activities, func(a mountaineers.MyActivity) *string { return a.ActivityType }, activityType)
	}
	if dateFrom != "" {
		activities = listops.FilterDateFrom(activities, startDate, dateFrom)
	}
	if dateTo != "" {
		activities = listops.FilterDateTo(activities, startDate, dateTo)
	}
	return activities
}

func startDate(a mountaineers.MyActivity) *string { return a.StartDate }
