package chart

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Label extracts the best available human-readable label from the outer
// HTML of a located chart element. The priority chain, first non-empty
// match wins:
//
//  1. aria-label attribute on the element itself
//  2. text of a <title> descendant
//  3. text of a <desc> descendant
//  4. alt attribute on the element (rare on SVG but seen in the wild)
//
// Every step is best-effort; a missing attribute or child simply advances
// the chain. The empty string is a valid result, not a failure.
func Label(outerHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(outerHTML))
	if err != nil {
		return ""
	}

	// The fragment parser wraps the element in html/body.
	el := doc.Find("body").Children().First()
	if el.Length() == 0 {
		return ""
	}

	if v, ok := el.Attr("aria-label"); ok {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}

	if s := strings.TrimSpace(el.Find("title").First().Text()); s != "" {
		return s
	}

	if s := strings.TrimSpace(el.Find("desc").First().Text()); s != "" {
		return s
	}

	if v, ok := el.Attr("alt"); ok {
		return strings.TrimSpace(v)
	}

	return ""
}
