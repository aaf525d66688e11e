// ABOUTME: Tidy-repair collaborator backed by a real HTML5 parser
// ABOUTME: Re-parses malformed fragments and renders them back out well-formed

package textnorm

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GoqueryRepair is the default tidy collaborator. It round-trips the
// fragment through goquery's HTML5 parser, which closes unclosed tags,
// reorders mis-nested elements, and drops stray markup. On any parse
// failure the input is returned unchanged, trimmed.
func GoqueryRepair(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return strings.TrimSpace(fragment)
	}

	repaired, err := body.Html()
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(repaired)
}
