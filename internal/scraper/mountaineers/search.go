package mountaineers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseActivityResults parses one faceted result page of activities.
func ParseActivityResults(doc *goquery.Document, baseURL string, page int) SearchResult[ActivitySummary] {
	items := []ActivitySummary{}
	doc.Find(".result-item").Each(func(_ int, card *goquery.Selection) {
		item := ActivitySummary{
			Type:          extractText(card, ".result-type"),
			Date:          extractText(card, ".result-date"),
			Difficulty:    cardDifficulty(card),
			Availability:  cardAvailability(card),
			Branch:        extractText(card, ".result-branch"),
			Leader:        extractText(card, ".result-leader a"),
			LeaderURL:     extractHref(card, ".result-leader a", baseURL),
			Description:   extractText(card, ".result-summary"),
			Prerequisites: extractText(card, ".result-prereqs"),
		}
		if t := extractText(card, ".result-title a"); t != nil {
			item.Title = *t
		}
		if u := extractHref(card, ".result-title a", baseURL); u != nil {
			item.URL = *u
		}
		items = append(items, item)
	})
	return NewSearchResult(parseResultCount(doc), items, page)
}

// ParseCourseResults parses one faceted result page of courses.
func ParseCourseResults(doc *goquery.Document, baseURL string, page int) SearchResult[CourseSummary] {
	items := []CourseSummary{}
	doc.Find(".result-item").Each(func(_ int, card *goquery.Selection) {
		item := CourseSummary{
			Date:          extractText(card, ".result-date"),
			Prerequisites: extractText(card, ".result-prereqs"),
			Availability:  cardAvailability(card),
			Branch:        extractText(card, ".result-branch"),
			Leader:        extractText(card, ".result-leader a"),
			LeaderURL:     extractHref(card, ".result-leader a", baseURL),
			Description:   extractText(card, ".result-summary"),
		}
		if t := extractText(card, ".result-title a"); t != nil {
			item.Title = *t
		}
		if u := extractHref(card, ".result-title a", baseURL); u != nil {
			item.URL = *u
		}
		items = append(items, item)
	})
	return NewSearchResult(parseResultCount(doc), items, page)
}

// ParseRouteResults parses one faceted result page of routes and places.
func ParseRouteResults(doc *goquery.Document, baseURL string, page int) SearchResult[RouteSummary] {
	items := []RouteSummary{}
	doc.Find(".result-item").Each(func(_ int, card *goquery.Selection) {
		item := RouteSummary{
			Type:        extractText(card, ".result-type"),
			Description: extractText(card, ".result-summary"),
		}
		if t := extractText(card, ".result-title a"); t != nil {
			item.Title = *t
		}
		if u := extractHref(card, ".result-title a", baseURL); u != nil {
			item.URL = *u
		}
		items = append(items, item)
	})
	return NewSearchResult(parseResultCount(doc), items, page)
}

// cardDifficulty reads the difficulty cell, stripping the literal
// "Difficulty:" prefix some card templates render inline.
func cardDifficulty(card *goquery.Selection) *string {
	t := extractText(card, ".result-difficulty")
	if t == nil {
		return nil
	}
	s := strings.TrimSpace(strings.TrimPrefix(*t, "Difficulty:"))
	if s == "" {
		return nil
	}
	return &s
}

// cardAvailability reads the availability cell minus its label child.
func cardAvailability(card *goquery.Selection) *string {
	cell := card.Find(".result-availability").First()
	if cell.Length() == 0 {
		return nil
	}
	return textWithoutLabels(cell)
}

// ParseTripReportResults parses one faceted result page of trip reports.
// Author, activity type, and trip result live in labeled sidebar divs rather
// than dedicated classes.
func ParseTripReportResults(doc *goquery.Document, baseURL string, page int) SearchResult[TripReportSummary] {
	items := []TripReportSummary{}
	doc.Find(".result-item").Each(func(_ int, card *goquery.Selection) {
		item := TripReportSummary{
			Date:        extractText(card, ".result-date"),
			Description: extractText(card, ".result-summary"),
		}
		if t := extractText(card, ".result-title a"); t != nil {
			item.Title = *t
		}
		if u := extractHref(card, ".result-title a", baseURL); u != nil {
			item.URL = *u
		}

		card.Find(".result-sidebar > div").Each(func(_ int, div *goquery.Selection) {
			label := strings.ToLower(collapseSpace(div.Find("label").Text()))
			value := textWithoutLabels(div)
			if value == nil {
				return
			}
			switch {
			case strings.Contains(label, "by"):
				item.Author = value
			case strings.Contains(label, "activity type"):
				item.ActivityType = value
			case strings.Contains(label, "trip result"):
				item.TripResult = value
			}
		})

		items = append(items, item)
	})
	return NewSearchResult(parseResultCount(doc), items, page)
}
