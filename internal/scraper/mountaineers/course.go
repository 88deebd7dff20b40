package mountaineers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseCourseDetail parses a course page.
func ParseCourseDetail(doc *goquery.Document, baseURL, url string) CourseDetail {
	d := CourseDetail{
		Title:        pageTitle(doc),
		URL:          url,
		Category:     extractText(doc.Selection, "h2.kicker"),
		Description:  extractText(doc.Selection, "p.documentDescription"),
		Leaders:      []CourseLeader{},
		BadgesEarned: []string{},
	}

	d.Dates = extractText(doc.Selection, "ul.details li.course-dates")
	if d.Dates != nil {
		if start, end, ok := strings.Cut(*d.Dates, " - "); ok {
			start, end = strings.TrimSpace(start), strings.TrimSpace(end)
			if start != "" {
				d.StartDate = &start
			}
			if end != "" {
				d.EndDate = &end
			}
		}
	}

	doc.Find("ul.details li").Each(func(_ int, li *goquery.Selection) {
		label := itemLabel(li)
		if strings.Contains(label, "committee") {
			if link := firstLinkText(li); link != nil {
				d.Committee = link
			} else {
				d.Committee = textWithoutLabels(li)
			}
			d.CommitteeURL = extractHref(li, "a", baseURL)
		}
	})

	fees := doc.Find("ul.details li.course-fees")
	fees.Find("strong").Each(func(_ int, s *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(s.Text()))
		price := collapseSpace(s.NextFiltered("span").Text())
		if price == "" {
			return
		}
		switch {
		case strings.Contains(label, "member"):
			d.MemberPrice = &price
		case strings.Contains(label, "guest"):
			d.GuestPrice = &price
		}
	})

	avail := doc.Find("ul.details li.course-availability")
	if avail.Length() > 0 {
		spans := avail.Find("span")
		if t := collapseSpace(spans.Eq(0).Text()); t != "" {
			d.Availability = &t
		}
		if t := collapseSpace(spans.Eq(1).Text()); t != "" {
			d.Capacity = &t
		}
	}

	doc.Find(".leaders .roster-contact").Each(func(_ int, contact *goquery.Selection) {
		entry := parseLeaderContact(contact, baseURL)
		if entry.Name == "" {
			return
		}
		d.Leaders = append(d.Leaders, CourseLeader{Name: entry.Name, Role: entry.Role})
	})

	doc.Find("h3").EachWithBreak(func(_ int, h3 *goquery.Selection) bool {
		title := strings.ToLower(h3.Text())
		if !strings.Contains(title, "badge") || !strings.Contains(title, "earn") {
			return true
		}
		h3.NextFiltered("ul").Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := collapseSpace(li.Text()); t != "" {
				d.BadgesEarned = append(d.BadgesEarned, t)
			}
		})
		return false
	})

	return d
}
