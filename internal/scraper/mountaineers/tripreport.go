package mountaineers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseTripReportDetail parses a trip report page. The publish date in the
// header metadata wins over a labeled date in the details list.
func ParseTripReportDetail(doc *goquery.Document, baseURL, url string) TripReportDetail {
	d := TripReportDetail{
		Title: pageTitle(doc),
		URL:   url,
		Body:  extractTextRaw(doc.Selection, "p.documentDescription"),
	}

	// The author anchor wraps an avatar whose alt repeats the name, so
	// prefer the anchor's own text nodes.
	authorEl := doc.Find(".tripreport-metadata span.author a.name")
	if authorEl.Length() > 0 {
		author := directText(authorEl)
		if author == "" {
			author = strings.TrimSpace(authorEl.Text())
		}
		if author != "" {
			d.Author = &author
		}
	}

	d.Date = extractText(doc.Selection, ".tripreport-metadata .pubdate")

	doc.Find(".program-core ul.details li").Each(func(_ int, li *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(li.Find("label").First().Text()))
		label = strings.TrimSpace(strings.TrimRight(label, ": "))
		value := textWithoutLabels(li)

		switch {
		case strings.Contains(label, "date"):
			if d.Date == nil {
				d.Date = value
			}
		case strings.Contains(label, "route"), strings.Contains(label, "place"):
			if link := firstLinkText(li); link != nil {
				d.Route = link
			} else {
				d.Route = value
			}
			d.RelatedActivityURL = extractHref(li, "a", baseURL)
		case strings.Contains(label, "activity type"):
			d.ActivityType = value
		case strings.Contains(label, "trip result"):
			d.TripResult = value
		}
	})

	return d
}
