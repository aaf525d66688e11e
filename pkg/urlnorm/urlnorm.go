// ABOUTME: Liberal URL repair and normalization for values scraped out of feeds
// ABOUTME: Never fails on malformed input; returns a best-effort string instead

package urlnorm

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	coreerrors "feedcanon/core/errors"
)

var (
	schemeRe    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	driveRe     = regexp.MustCompile(`^[a-zA-Z][:|][/\\]`)
	pseudoRe    = regexp.MustCompile(`(?i)^(feed|rss):(//)?`)
	doubleHTTP  = regexp.MustCompile(`(?i)^http://(http://)+`)
	fileDriveRe = regexp.MustCompile(`^file:/*([a-zA-Z])[:|](.*)$`)
)

// NormalizeURL repairs a URL string the way feed readers have to: missing
// schemes, Windows paths, pseudo-protocols, javascript injection, stray
// backslashes. An empty result means the input held no usable URL at all;
// everything else comes back as a best-effort string, never an error.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Absolute paths become file URLs.
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		s = "file://" + s
	}

	// Windows drive-letter paths.
	if driveRe.MatchString(s) {
		s = "file:///" + s
	}

	// Neutralize javascript pseudo-URLs outright.
	lower := strings.ToLower(s)
	if idx := strings.Index(lower, "javascript:"); idx >= 0 && !strings.ContainsAny(lower[:idx], "/?#") {
		return "#"
	}

	// Unwrap feed:/rss: pseudo-protocol layers around a real scheme.
	for {
		m := pseudoRe.FindString(s)
		if m == "" {
			break
		}
		rest := s[len(m):]
		if schemeRe.MatchString(rest) {
			s = rest
			continue
		}
		// feed://example.com with no inner scheme
		s = "http://" + rest
		break
	}
	for doubleHTTP.MatchString(s) {
		s = "http://" + doubleHTTP.ReplaceAllString(s, "")
	}

	if strings.HasPrefix(strings.ToLower(s), "file:") {
		return normalizeFileURL(s)
	}

	if !hasKnownScheme(s) {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		// Unparseable even after repair; hand back what we have.
		return escapeSpaces(s)
	}

	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Path == "" {
		u.Path = "/"
	}
	for strings.HasPrefix(u.Path, "//") {
		u.Path = u.Path[1:]
	}
	u.Host = strings.ToLower(u.Host)

	return escapeSpaces(rebuild(u))
}

// normalizeFileURL handles the file: scheme separately: backslashes become
// forward slashes and c| drive notation becomes c:.
func normalizeFileURL(s string) string {
	s = strings.ReplaceAll(s, "\\", "/")
	if m := fileDriveRe.FindStringSubmatch(s); m != nil {
		s = "file:///" + strings.ToLower(m[1]) + ":" + m[2]
	}
	return escapeSpaces(s)
}

// rebuild assembles the URL by hand so already-escaped sequences survive
// untouched; url.URL.String would be too eager about re-encoding.
func rebuild(u *url.URL) string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	if u.User != nil {
		b.WriteString(u.User.String())
		b.WriteString("@")
	}
	b.WriteString(u.Host)
	b.WriteString(u.EscapedPath())
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.EscapedFragment())
	}
	return b.String()
}

func escapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}

// knownSchemes lists the schemes we trust enough not to prepend http://.
// A bare "host:port" would otherwise be misread as a scheme.
var knownSchemes = []string{
	"http:", "https:", "ftp:", "file:", "mailto:", "news:",
	"urn:", "tag:", "data:", "irc:", "gopher:",
}

func hasKnownScheme(s string) bool {
	if strings.Contains(s, "://") && schemeRe.MatchString(s) {
		return true
	}
	lower := strings.ToLower(s)
	for _, scheme := range knownSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// IsValidURI reports whether the string parses as an absolute URI.
// It never panics or errors on garbage input.
func IsValidURI(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != ""
}

// BuildTagURI constructs a tag: URI from a URL and a date, for feeds that
// lack an explicit unique id. Both arguments are required; a URL that does
// not normalize into a parseable URI is a caller error.
func BuildTagURI(rawURL string, date time.Time) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", &coreerrors.ContractError{
			Contract: "BuildTagURI",
			Message:  "url cannot be blank",
		}
	}
	if date.IsZero() {
		return "", &coreerrors.ContractError{
			Contract: "BuildTagURI",
			Message:  "date cannot be zero",
		}
	}

	normalized := NormalizeURL(rawURL)
	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" {
		return "", &coreerrors.ContractError{
			Contract: "BuildTagURI",
			Message:  fmt.Sprintf("%q did not normalize to a usable URI", rawURL),
		}
	}

	tag := fmt.Sprintf("tag:%s,%s:%s", strings.ToLower(u.Host),
		date.UTC().Format("2006-01-02"), u.EscapedPath())
	if u.Fragment != "" {
		tag += "/" + u.Fragment
	}
	return tag, nil
}

// BuildURNURI constructs a urn:uuid: URI deterministically from a URL using
// a name-based UUID in the URL namespace.
func BuildURNURI(rawURL string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL))
	return "urn:uuid:" + id.String()
}
