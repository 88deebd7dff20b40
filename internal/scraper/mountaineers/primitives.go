package mountaineers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRE       = regexp.MustCompile(`\s+`)
	resultCountRE = regexp.MustCompile(`\d[\d,]*`)
	memberPathRE  = regexp.MustCompile(`/members/([^/]+)`)
	trailingSegRE = regexp.MustCompile(`/([^/]+)/?$`)
)

// extractText returns the whitespace-collapsed text of the first match of
// selector under sel, or of sel itself when selector is empty. Nil when the
// result is empty after trimming.
func extractText(sel *goquery.Selection, selector string) *string {
	target := sel
	if selector != "" {
		target = sel.Find(selector)
	}
	t := collapseSpace(target.Text())
	if t == "" {
		return nil
	}
	return &t
}

// extractTextRaw trims but keeps inner whitespace, for block content where
// line structure matters.
func extractTextRaw(sel *goquery.Selection, selector string) *string {
	target := sel
	if selector != "" {
		target = sel.Find(selector)
	}
	t := strings.TrimSpace(target.Text())
	if t == "" {
		return nil
	}
	return &t
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

// resolveHref makes a raw href absolute against baseURL. Anything already
// starting with "http" passes through untouched.
func resolveHref(baseURL, raw string) string {
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return baseURL + raw
}

// extractHref resolves the href of the first match of selector under sel.
// Nil when there is no match or the attribute is empty.
func extractHref(sel *goquery.Selection, selector, baseURL string) *string {
	raw, ok := sel.Find(selector).First().Attr("href")
	if !ok || raw == "" {
		return nil
	}
	u := resolveHref(baseURL, raw)
	return &u
}

// parseResultCount reads the faceted result counter. Both the id and class
// variants appear across page templates. No recognizable number means 0.
func parseResultCount(doc *goquery.Document) int {
	countText := strings.TrimSpace(doc.Find("#faceted-result-count, .faceted-result-count").Text())
	m := resultCountRE.FindString(countText)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// itemLabel returns the lowercased text of the first label or strong child,
// with any trailing colon stripped. Empty string means the item is unlabeled.
func itemLabel(sel *goquery.Selection) string {
	label := strings.TrimSpace(sel.Find("label, strong").First().Text())
	label = strings.TrimRight(label, ":")
	return strings.ToLower(strings.TrimSpace(label))
}

// textWithoutLabels is the collapsed text of sel minus its direct label and
// strong children. Nested element text (links, spans) is kept.
func textWithoutLabels(sel *goquery.Selection) *string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "label", "strong":
		default:
			b.WriteString(c.Text())
		}
	})
	t := collapseSpace(b.String())
	if t == "" {
		return nil
	}
	return &t
}

// firstLinkText is the collapsed text of the first anchor under sel.
func firstLinkText(sel *goquery.Selection) *string {
	t := collapseSpace(sel.Find("a").First().Text())
	if t == "" {
		return nil
	}
	return &t
}

// textWithoutLabelsRaw is textWithoutLabels without whitespace collapsing,
// for multi-line sections.
func textWithoutLabelsRaw(sel *goquery.Selection) *string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "label", "strong":
		default:
			b.WriteString(c.Text())
		}
	})
	t := strings.TrimSpace(b.String())
	if t == "" {
		return nil
	}
	return &t
}

// directText is the concatenated text of sel's direct text nodes only,
// skipping all child elements.
func directText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return strings.TrimSpace(b.String())
}

// memberSlug pulls the profile slug out of any URL or path containing a
// /members/ segment.
func memberSlug(s string) string {
	m := memberPathRE.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// trailingSegment is the last path segment of a URL, ignoring a trailing
// slash. Used to derive uids when a record carries none.
func trailingSegment(u string) string {
	m := trailingSegRE.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	return m[1]
}

// pageTitle resolves a page heading: the document heading class first, then
// the first h1. Returns "" when neither resolves.
func pageTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("h1.documentFirstHeading").Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

var titleSepRE = regexp.MustCompile(`^(.+?)\s*[—–-]\s*`)

// titleTagPrefix is the <title> text before an em dash, en dash, or hyphen
// separator ("Jane Doe — The Mountaineers" gives "Jane Doe").
func titleTagPrefix(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").Text())
	if m := titleSepRE.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
