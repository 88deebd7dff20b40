package mountaineers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// detailRule maps a metadata label to its field assignment. Rules are
// evaluated in order against a substring match on the lowercased label; the
// first hit wins. A nil assign recognizes the label and discards it.
type detailRule struct {
	match   string
	exclude string
	assign  func(d *ActivityDetail, value *string, li *goquery.Selection)
}

var activityDetailRules = []detailRule{
	{match: "committee", assign: func(d *ActivityDetail, value *string, li *goquery.Selection) {
		if link := firstLinkText(li); link != nil {
			d.Committee = link
			return
		}
		d.Committee = value
	}},
	{match: "activity type", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.ActivityType = value
	}},
	{match: "audience", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.Audience = value
	}},
	{match: "difficulty", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.Difficulty = value
	}},
	// Leader rating is a participant feedback score, not activity metadata.
	// Recognized so it never falls through to another rule.
	{match: "leader rating"},
	{match: "mileage", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.Mileage = value
	}},
	{match: "distance", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.Mileage = value
	}},
	{match: "elevation gain", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.ElevationGain = value
	}},
	{match: "availability", exclude: "assistant", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.Availability = value
	}},
	{match: "registration open", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.RegistrationOpen = value
	}},
	{match: "registration close", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.RegistrationClose = value
	}},
	{match: "branch", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.Branch = value
	}},
	{match: "prerequisite", assign: func(d *ActivityDetail, value *string, _ *goquery.Selection) {
		d.Prerequisites = value
	}},
}

// ParseActivityDetail parses an activity page. url is the canonical page URL
// and is echoed into the record.
func ParseActivityDetail(doc *goquery.Document, baseURL, url string) ActivityDetail {
	d := ActivityDetail{
		Title:   pageTitle(doc),
		URL:     url,
		Type:    extractText(doc.Selection, "h2.kicker"),
		Leaders: []LeaderEntry{},
	}

	doc.Find(".program-core ul.details li, ul.details li").Each(func(_ int, li *goquery.Selection) {
		label := itemLabel(li)

		if label == "" {
			// The first unlabeled item is the activity date.
			if d.Date == nil {
				d.Date = extractText(li, "")
			}
			return
		}

		value := textWithoutLabels(li)
		for _, rule := range activityDetailRules {
			if !strings.Contains(label, rule.match) {
				continue
			}
			if rule.exclude != "" && strings.Contains(label, rule.exclude) {
				continue
			}
			if rule.assign != nil {
				rule.assign(&d, value, li)
			}
			break
		}
	})

	doc.Find(".leaders .roster-contact").Each(func(_ int, contact *goquery.Selection) {
		d.Leaders = append(d.Leaders, parseLeaderContact(contact, baseURL))
	})
	if len(d.Leaders) > 0 {
		if d.Leaders[0].Name != "" {
			name := d.Leaders[0].Name
			d.Leader = &name
		}
		d.LeaderURL = d.Leaders[0].URL
	}

	doc.Find(".content-text > div").Each(func(_ int, div *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(div.ChildrenFiltered("label").Text()))
		content := textWithoutLabelsRaw(div)
		if content == nil {
			return
		}
		switch {
		case strings.Contains(label, "leader") && strings.Contains(label, "note"):
			d.LeaderNotes = content
		case strings.Contains(label, "meeting"):
			d.MeetingPlace = content
		}
	})

	doc.Find(".tabs .tab").Each(func(_ int, tab *goquery.Selection) {
		title := strings.ToLower(collapseSpace(tab.Find(".tab-title").Text()))
		content := extractText(tab, ".tab-content")
		if content == nil {
			return
		}
		switch {
		case strings.Contains(title, "route"), strings.Contains(title, "place"):
			d.RoutePlace = content
		case strings.Contains(title, "equipment"):
			d.RequiredEquipment = content
		}
	})

	return d
}

// parseLeaderContact resolves one leader block. The image alt is the most
// reliable name source; an explicit member anchor overrides a profile path
// scraped from the avatar src.
func parseLeaderContact(contact *goquery.Selection, baseURL string) LeaderEntry {
	entry := LeaderEntry{
		Role: extractText(contact, ".roster-position"),
	}

	img := contact.Find("img").First()
	entry.Name = strings.TrimSpace(img.AttrOr("alt", ""))
	if entry.Name == "" {
		contact.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
			if div.HasClass("roster-position") {
				return true
			}
			if t := strings.TrimSpace(div.Text()); t != "" {
				entry.Name = t
				return false
			}
			return true
		})
	}

	if slug := memberSlug(img.AttrOr("src", "")); slug != "" {
		u := baseURL + "/members/" + slug
		entry.URL = &u
	}
	if href, ok := contact.Find("a[href*='/members/']").First().Attr("href"); ok {
		u := resolveHref(baseURL, href)
		entry.URL = &u
	}

	return entry
}
