package tools

import (
	"context"
	"net/url"
	"strconv"

	"github.com/alpental/mountaineers-go/internal/scraper/mountaineers"
)

// Faceted search verticals share one query grammar but disagree on which
// criterion number means what, so each search operation carries its own
// mapping.

// SearchActivitiesInput filters the activity search vertical.
type SearchActivitiesInput struct {
	Query        string `form:"query" json:"query"`
	ActivityType string `form:"activity_type" json:"activity_type"`
	Branch       string `form:"branch" json:"branch"`
	Difficulty   string `form:"difficulty" json:"difficulty"`
	Audience     string `form:"audience" json:"audience"`
	DayOfWeek    string `form:"day_of_week" json:"day_of_week"`
	DateStart    string `form:"date_start" json:"date_start"`
	DateEnd      string `form:"date_end" json:"date_end"`
	Type         string `form:"type" json:"type"`
	OpenOnly     bool   `form:"open_only" json:"open_only"`
	Page         int    `form:"page" json:"page"`
}

// SearchActivities queries the activity vertical and parses one result page.
func SearchActivities(ctx context.Context, f Fetcher, in SearchActivitiesInput) (mountaineers.SearchResult[mountaineers.ActivitySummary], error) {
	params := url.Values{}
	setParam(params, "c2", in.Query)
	setParam(params, "c4[]", in.ActivityType)
	setParam(params, "c5[]", in.Audience)
	setParam(params, "c8[]", in.Branch)
	setParam(params, "c15[]", in.Difficulty)
	setParam(params, "c16[]", in.Type)
	if in.OpenOnly {
		params.Set("c17", "1")
	}
	setParam(params, "c21[]", in.DayOfWeek)
	setParam(params, "start", in.DateStart)
	setParam(params, "end", in.DateEnd)
	setPageParam(params, in.Page)

	doc, err := f.GetFaceted(ctx, "/activities/activities", params)
	if err != nil {
		return mountaineers.SearchResult[mountaineers.ActivitySummary]{}, err
	}
	return mountaineers.ParseActivityResults(doc, f.BaseURL(), in.Page), nil
}

// SearchCoursesInput filters the courses/clinics/seminars vertical.
type SearchCoursesInput struct {
	Query        string `form:"query" json:"query"`
	ActivityType string `form:"activity_type" json:"activity_type"`
	Branch       string `form:"branch" json:"branch"`
	Difficulty   string `form:"difficulty" json:"difficulty"`
	OpenOnly     bool   `form:"open_only" json:"open_only"`
	Page         int    `form:"page" json:"page"`
}

// SearchCourses queries the course vertical and parses one result page.
func SearchCourses(ctx context.Context, f Fetcher, in SearchCoursesInput) (mountaineers.SearchResult[mountaineers.CourseSummary], error) {
	params := url.Values{}
	setParam(params, "c2", in.Query)
	setParam(params, "c4[]", in.ActivityType)
	setParam(params, "c7[]", in.Branch)
	setParam(params, "c15[]", in.Difficulty)
	if in.OpenOnly {
		params.Set("c17", "1")
	}
	setPageParam(params, in.Page)

	doc, err := f.GetFaceted(ctx, "/activities/courses-clinics-seminars", params)
	if err != nil {
		return mountaineers.SearchResult[mountaineers.CourseSummary]{}, err
	}
	return mountaineers.ParseCourseResults(doc, f.BaseURL(), in.Page), nil
}

// SearchRoutesInput filters the routes & places vertical.
type SearchRoutesInput struct {
	Query               string `form:"query" json:"query"`
	ActivityType        string `form:"activity_type" json:"activity_type"`
	UsedFor             string `form:"used_for" json:"used_for"`
	ClimbingCategory    string `form:"climbing_category" json:"climbing_category"`
	SnowshoeingCategory string `form:"snowshoeing_category" json:"snowshoeing_category"`
	Difficulty          string `form:"difficulty" json:"difficulty"`
	Page                int    `form:"page" json:"page"`
}

// SearchRoutes queries the routes & places vertical and parses one result page.
func SearchRoutes(ctx context.Context, f Fetcher, in SearchRoutesInput) (mountaineers.SearchResult[mountaineers.RouteSummary], error) {
	params := url.Values{}
	setParam(params, "c2", in.Query)
	setParam(params, "c4[]", in.ActivityType)
	setParam(params, "c5[]", in.Difficulty)
	setParam(params, "c7[]", in.ClimbingCategory)
	setParam(params, "c9[]", in.UsedFor)
	setParam(params, "c10[]", in.SnowshoeingCategory)
	setPageParam(params, in.Page)

	doc, err := f.GetFaceted(ctx, "/activities/routes-places", params)
	if err != nil {
		return mountaineers.SearchResult[mountaineers.RouteSummary]{}, err
	}
	return mountaineers.ParseRouteResults(doc, f.BaseURL(), in.Page), nil
}

// SearchTripReportsInput filters the trip report vertical.
type SearchTripReportsInput struct {
	Query        string `form:"query" json:"query"`
	ActivityType string `form:"activity_type" json:"activity_type"`
	Page         int    `form:"page" json:"page"`
}

// SearchTripReports queries the trip report vertical and parses one result page.
func SearchTripReports(ctx context.Context, f Fetcher, in SearchTripReportsInput) (mountaineers.SearchResult[mountaineers.TripReportSummary], error) {
	params := url.Values{}
	setParam(params, "c2", in.Query)
	setParam(params, "c4[]", in.ActivityType)
	setPageParam(params, in.Page)

	doc, err := f.GetFaceted(ctx, "/activities/trip-reports", params)
	if err != nil {
		return mountaineers.SearchResult[mountaineers.TripReportSummary]{}, err
	}
	return mountaineers.ParseTripReportResults(doc, f.BaseURL(), in.Page), nil
}

func setParam(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

// setPageParam adds the result offset. Page 0 sends no offset at all; the
// portal treats a missing b_start as the first page.
func setPageParam(params url.Values, page int) {
	if page > 0 {
		params.Set("b_start", strconv.Itoa(page*mountaineers.PageSize))
	}
}
