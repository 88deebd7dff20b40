package mountaineers

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	memberSinceRE = regexp.MustCompile(`(?i)member since:\s*(.+)`)
	branchRE      = regexp.MustCompile(`(?i)branch:\s*(.+)`)
	badgeEarnedRE = regexp.MustCompile(`(?i)earned:?\s*([^,;]+)`)
	badgeExpireRE = regexp.MustCompile(`(?i)expires:?\s*([^,;]+)`)
)

// ParseMemberProfile parses a member profile page. url is the canonical
// profile URL. Name resolution skips the generic "Profile" heading and can
// fall back to the <title> tag; an unresolvable name stays "".
func ParseMemberProfile(doc *goquery.Document, baseURL, url string) MemberProfile {
	p := MemberProfile{
		Name:       profileName(doc),
		URL:        url,
		Committees: []string{},
		Badges:     []Badge{},
	}

	doc.Find("ul.details li").Each(func(_ int, li *goquery.Selection) {
		full := collapseSpace(li.Text())
		lower := strings.ToLower(full)
		switch {
		case strings.HasPrefix(lower, "member since"):
			if m := memberSinceRE.FindStringSubmatch(full); m != nil {
				v := strings.TrimSpace(m[1])
				p.MemberSince = &v
			}
		case strings.HasPrefix(lower, "branch"):
			// The branch name is usually a link child.
			if link := strings.TrimSpace(li.Find("a").Text()); link != "" {
				p.Branch = &link
			} else if m := branchRE.FindStringSubmatch(full); m != nil {
				v := strings.TrimSpace(m[1])
				p.Branch = &v
			}
		}
	})

	// Only the profile's own email container counts; the page also has a
	// sharing mailto link.
	emailLink := doc.Find(".email a[href^='mailto:']").First()
	if emailLink.Length() > 0 {
		if t := strings.TrimSpace(emailLink.Text()); t != "" {
			p.Email = &t
		}
	}

	doc.Find(".profile-committees li a, .committees li a").Each(func(_ int, a *goquery.Selection) {
		if t := strings.TrimSpace(a.Text()); t != "" {
			p.Committees = append(p.Committees, t)
		}
	})

	doc.Find(".profile-badges .badge a, .badges .badge a, .badge-list .badge a").Each(func(_ int, a *goquery.Selection) {
		name := strings.TrimSpace(a.Text())
		if name == "" {
			return
		}
		badge := Badge{Name: name}
		title := a.AttrOr("title", "")
		if m := badgeEarnedRE.FindStringSubmatch(title); m != nil {
			v := strings.TrimSpace(m[1])
			badge.Earned = &v
		}
		if m := badgeExpireRE.FindStringSubmatch(title); m != nil {
			v := strings.TrimSpace(m[1])
			badge.Expires = &v
		}
		p.Badges = append(p.Badges, badge)
	})

	return p
}

func profileName(doc *goquery.Document) string {
	name := strings.TrimSpace(doc.Find("h1.documentFirstHeading").Text())
	if name == "" || strings.EqualFold(name, "profile") {
		doc.Find("h1").EachWithBreak(func(_ int, h1 *goquery.Selection) bool {
			t := strings.TrimSpace(h1.Text())
			if t != "" && !strings.EqualFold(t, "profile") {
				name = t
				return false
			}
			return true
		})
	}
	if name == "" || strings.EqualFold(name, "profile") {
		if t := titleTagPrefix(doc); t != "" {
			name = t
		}
	}
	return name
}
