package mountaineers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseRoster parses the contact blocks of a roster fragment in DOM order.
// No dedup, no sort. A participant with no resolvable name becomes the
// literal "Unknown"; callers depend on that exact default.
func ParseRoster(doc *goquery.Document, baseURL string) []RosterEntry {
	entries := []RosterEntry{}

	doc.Find(".roster-contact").Each(func(_ int, contact *goquery.Selection) {
		entry := RosterEntry{
			Name: "Unknown",
			Role: extractText(contact, ".roster-position"),
		}

		// Name selectors are tried in priority order, not DOM order; an
		// avatar anchor ahead of the name div must not win with empty text.
		for _, sel := range []string{".roster-name", ".contact-name", "a"} {
			if name := strings.TrimSpace(contact.Find(sel).First().Text()); name != "" {
				entry.Name = name
				break
			}
		}

		link := contact.Find("a.contact-modal, a[href*='/members/']").First()
		if href, ok := link.Attr("href"); ok && href != "" {
			u := resolveHref(baseURL, href)
			entry.ProfileURL = &u
		}

		// Avatar src is kept verbatim, relative or not.
		if src, ok := contact.Find("img").First().Attr("src"); ok && src != "" {
			entry.Avatar = &src
		}

		entries = append(entries, entry)
	})

	return entries
}
