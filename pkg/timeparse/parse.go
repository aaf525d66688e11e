// ABOUTME: Liberal timestamp parsing for the date spellings found in real feeds
// ABOUTME: Wraps dateparse with an explicit fallback list of feed-specific layouts

package timeparse

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layouts dateparse occasionally misses but feeds actually emit.
var feedLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC850,
	time.ANSIC,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006",
}

// Parse attempts to interpret a string as a timestamp. The ok result is
// false when nothing usable could be extracted; malformed dates are never
// an error condition.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}

	for _, layout := range feedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseWithDefault parses a timestamp, falling back to the supplied default.
func ParseWithDefault(s string, def time.Time) time.Time {
	if t, ok := Parse(s); ok {
		return t
	}
	return def
}
