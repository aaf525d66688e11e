// ABOUTME: Name/email disentangling for author and publisher strings
// ABOUTME: Regex precedence order is load-bearing; changing it changes output

package parser

import (
	"regexp"
	"strings"

	"feedcanon/core/domain"

	"github.com/antchfx/xmlquery"
	"feedcanon/pkg/xmlres"
)

// Feeds put people in every imaginable shape: "Name <email>",
// "email (Name)", "Name (email)", or a bare address. The patterns below
// are tried in this exact order; it is imperfect but it is the behavior
// downstream consumers depend on.
var (
	angleEmailRe = regexp.MustCompile(`^(.*?)\s*<\s*([^\s<>]+@[^\s<>]+)\s*>\s*$`)
	emailParenRe = regexp.MustCompile(`^([^\s()]+@[^\s()]+)\s*\(\s*(.+?)\s*\)\s*$`)
	parenEmailRe = regexp.MustCompile(`^(.+?)\s*\(\s*([^\s()]+@[^\s()]+)\s*\)\s*$`)
	bareEmailRe  = regexp.MustCompile(`^[^\s()<>]+@[^\s()<>]+$`)
)

// parsePersonString splits a free-form person string into name and email.
func parsePersonString(s string) *domain.Person {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if m := angleEmailRe.FindStringSubmatch(s); m != nil {
		return &domain.Person{Name: strings.TrimSpace(m[1]), Email: m[2]}
	}
	if m := emailParenRe.FindStringSubmatch(s); m != nil {
		return &domain.Person{Name: m[2], Email: m[1]}
	}
	if m := parenEmailRe.FindStringSubmatch(s); m != nil {
		return &domain.Person{Name: strings.TrimSpace(m[1]), Email: m[2]}
	}
	if bareEmailRe.MatchString(s) {
		return &domain.Person{Email: s}
	}
	return &domain.Person{Name: s}
}

// personFromNode extracts a person from either an atom-style structured
// element (name/email/uri children) or a plain text payload.
func personFromNode(res *xmlres.Resolver, n *xmlquery.Node) *domain.Person {
	if n == nil {
		return nil
	}

	name := res.FirstValue(n, []string{"atom10:name", "atom03:name", "atom:name", "name"})
	email := res.FirstValue(n, []string{"atom10:email", "atom03:email", "atom:email", "email"})
	href := res.FirstValue(n, []string{"atom10:uri", "atom03:url", "atom:uri", "uri", "url"})

	if name == "" && email == "" && href == "" {
		return parsePersonString(n.InnerText())
	}

	person := &domain.Person{Name: name, Email: email, Href: href}
	if person.Name != "" && person.Email == "" {
		// The name slot often smuggles a combined string.
		if parsed := parsePersonString(person.Name); parsed != nil && parsed.Email != "" {
			person.Name = parsed.Name
			person.Email = parsed.Email
		}
	}
	return person
}
