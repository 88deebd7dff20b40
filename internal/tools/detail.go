package tools

import (
	"context"

	"github.com/alpental/mountaineers-go/internal/scraper/mountaineers"
)

// GetActivity fetches and parses one activity page. urlOrSlug is either a
// full URL or a slug like "day-hike-rock-candy-mountain-11".
func GetActivity(ctx context.Context, f Fetcher, urlOrSlug string) (mountaineers.ActivityDetail, error) {
	pageURL := entityURL(f, activityPathPrefix, urlOrSlug)
	doc, err := f.GetDocument(ctx, pageURL)
	if err != nil {
		return mountaineers.ActivityDetail{}, err
	}
	return mountaineers.ParseActivityDetail(doc, f.BaseURL(), pageURL), nil
}

// GetCourse fetches and parses one course page.
func GetCourse(ctx context.Context, f Fetcher, urlOrSlug string) (mountaineers.CourseDetail, error) {
	pageURL := entityURL(f, coursePathPrefix, urlOrSlug)
	doc, err := f.GetDocument(ctx, pageURL)
	if err != nil {
		return mountaineers.CourseDetail{}, err
	}
	return mountaineers.ParseCourseDetail(doc, f.BaseURL(), pageURL), nil
}

// GetRoute fetches and parses one route/place page.
func GetRoute(ctx context.Context, f Fetcher, urlOrSlug string) (mountaineers.RouteDetail, error) {
	pageURL := entityURL(f, routePathPrefix, urlOrSlug)
	doc, err := f.GetDocument(ctx, pageURL)
	if err != nil {
		return mountaineers.RouteDetail{}, err
	}
	return mountaineers.ParseRouteDetail(doc, f.BaseURL(), pageURL), nil
}

// GetTripReport fetches and parses one trip report page.
func GetTripReport(ctx context.Context, f Fetcher, urlOrSlug string) (mountaineers.TripReportDetail, error) {
	pageURL := entityURL(f, tripReportPathPrefix, urlOrSlug)
	doc, err := f.GetDocument(ctx, pageURL)
	if err != nil {
		return mountaineers.TripReportDetail{}, err
	}
	return mountaineers.ParseTripReportDetail(doc, f.BaseURL(), pageURL), nil
}

// GetMemberProfile fetches and parses a member's profile page. Profile pages
// need an authenticated session.
func GetMemberProfile(ctx context.Context, f Fetcher, memberSlug string) (mountaineers.MemberProfile, error) {
	if err := f.EnsureLoggedIn(ctx); err != nil {
		return mountaineers.MemberProfile{}, err
	}
	pageURL := f.BaseURL() + "/members/" + memberSlug
	doc, err := f.GetDocument(ctx, pageURL)
	if err != nil {
		return mountaineers.MemberProfile{}, err
	}
	return mountaineers.ParseMemberProfile(doc, f.BaseURL(), pageURL), nil
}

// GetActivityRoster fetches an activity's roster tab and lists everyone on
// it, leaders and participants alike.
func GetActivityRoster(ctx context.Context, f Fetcher, urlOrSlug string) (mountaineers.ListResult[mountaineers.RosterEntry], error) {
	pageURL := entityURL(f, activityPathPrefix, urlOrSlug)
	doc, err := f.GetRoster(ctx, pageURL)
	if err != nil {
		return mountaineers.ListResult[mountaineers.RosterEntry]{}, err
	}
	entries := mountaineers.ParseRoster(doc, f.BaseURL())
	return mountaineers.ListResult[mountaineers.RosterEntry]{
		TotalCount: len(entries),
		Items:      entries,
		Limit:      0,
	}, nil
}
