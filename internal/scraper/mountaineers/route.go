package mountaineers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseRouteDetail parses a route/place page. Stats are spread across
// several ul.details groups with mixed label and strong field names.
func ParseRouteDetail(doc *goquery.Document, baseURL, url string) RouteDetail {
	d := RouteDetail{
		Title:           pageTitle(doc),
		URL:             url,
		Description:     extractText(doc.Selection, "p.documentDescription"),
		RecommendedMaps: []string{},
		RelatedRoutes:   []string{},
	}

	doc.Find("ul.details li").Each(func(_ int, li *goquery.Selection) {
		label := itemLabel(li)
		if label == "" {
			return
		}
		value := textWithoutLabels(li)

		switch {
		case strings.Contains(label, "suitable activities"):
			d.SuitableActivities = value
		case strings.Contains(label, "season"):
			d.Seasons = value
		case strings.Contains(label, "difficulty"):
			d.Difficulty = value
		case strings.Contains(label, "length"):
			d.Length = value
		case strings.Contains(label, "elevation gain"):
			d.ElevationGain = value
		case strings.Contains(label, "high point"):
			d.HighPoint = value
		case strings.Contains(label, "land manager"):
			if link := firstLinkText(li); link != nil {
				d.LandManager = link
			} else {
				d.LandManager = value
			}
		case strings.Contains(label, "parking permit"):
			if link := firstLinkText(li); link != nil {
				d.ParkingPermit = link
			} else {
				d.ParkingPermit = value
			}
		case strings.Contains(label, "recommended party size"):
			d.RecommendedPartySize = value
		case strings.Contains(label, "maximum party size"):
			d.MaximumPartySize = value
		}
	})

	d.Directions = parseDirections(doc)

	doc.Find(".tabs .tab").Each(func(_ int, tab *goquery.Selection) {
		title := strings.ToLower(collapseSpace(tab.Find(".tab-title").Text()))
		switch {
		case strings.Contains(title, "map"):
			tab.Find(".tab-content li").Each(func(_ int, li *goquery.Selection) {
				if t := collapseSpace(li.Text()); t != "" {
					d.RecommendedMaps = append(d.RecommendedMaps, t)
				}
			})
		case strings.Contains(title, "title"):
			tab.Find(".tab-content li").Each(func(_ int, li *goquery.Selection) {
				if t := collapseSpace(li.Text()); t != "" {
					d.RelatedRoutes = append(d.RelatedRoutes, t)
				}
			})
		}
	})

	return d
}

// parseDirections collects the paragraphs of the "getting there" and
// "on the trail" sections, each running from its heading to the next h2.
// Nil when neither section exists.
func parseDirections(doc *goquery.Document) *string {
	var parts []string
	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		heading := strings.ToLower(h2.Text())
		if !strings.Contains(heading, "getting there") && !strings.Contains(heading, "on the trail") {
			return
		}
		h2.NextUntil("h2").Each(func(_ int, sib *goquery.Selection) {
			if goquery.NodeName(sib) != "p" {
				return
			}
			if t := strings.TrimSpace(sib.Text()); t != "" {
				parts = append(parts, t)
			}
		})
	})
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, "\n\n")
	return &joined
}
