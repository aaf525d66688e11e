// ABOUTME: Feed document model: lazy field resolution over a liberal XML tree
// ABOUTME: Every accessor degrades to an absent value on malformed input

package parser

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"feedcanon/core/domain"
	"feedcanon/pkg/encodingx"
	"feedcanon/pkg/textnorm"
	"feedcanon/pkg/timeparse"
	"feedcanon/pkg/urlnorm"
	"feedcanon/pkg/xmlres"
)

// Feed type constants.
const (
	TypeAtom = "atom"
	TypeRSS  = "rss"
	TypeCDF  = "cdf"
)

// memo is an explicit computed-once cache slot. ok distinguishes "computed
// and absent" from "not yet computed"; done marks computation.
type memo[T any] struct {
	val  T
	done bool
}

func (m *memo[T]) get(compute func() T) T {
	if !m.done {
		m.val = compute()
		m.done = true
	}
	return m.val
}

type feedCache struct {
	feedType   memo[string]
	version    memo[float64]
	id         memo[string]
	title      memo[string]
	subtitle   memo[string]
	copyright  memo[string]
	generator  memo[string]
	docs       memo[string]
	language   memo[string]
	link       memo[string]
	author     memo[*domain.Person]
	publisher  memo[*domain.Person]
	explicit   memo[bool]
	categories memo[[]domain.Category]
	images     memo[[]domain.Image]
	textInput  memo[*domain.TextInput]
	cloud      memo[*domain.Cloud]
	ttl        memo[time.Duration]
	updated    memo[*time.Time]
}

// Feed wraps one raw syndication document and resolves canonical fields
// lazily. Parsing never fails loudly: a document that cannot be read at all
// simply yields absent fields everywhere.
type Feed struct {
	opts Options
	res  *xmlres.Resolver

	rawData         []byte
	declaredCharset string
	charset         string

	url           string
	lastRetrieved time.Time
	httpHeaders   map[string]string

	doc      *xmlquery.Node
	docBuilt bool

	cache feedCache

	// items holds entries in construction order (reversed document
	// order); sibling timestamp estimation depends on this ordering.
	items      []*Item
	itemsBuilt bool
}

// NewFeed creates an empty feed with the given options.
func NewFeed(opts Options) *Feed {
	return &Feed{
		opts: opts,
		res:  xmlres.New(opts.ExtraNamespaces),
	}
}

// ParseFeed constructs a feed directly from raw document bytes.
func ParseFeed(raw []byte, opts Options) *Feed {
	f := NewFeed(opts)
	f.SetRawData(raw, "")
	return f
}

// Resolver exposes the feed's namespace-table-driven resolver.
func (f *Feed) Resolver() *xmlres.Resolver { return f.res }

// Options returns the feed's configuration.
func (f *Feed) Options() Options { return f.opts }

// SetRawData replaces the raw document bytes and invalidates every cached
// field and the parse tree. declaredCharset is the transport-layer charset
// hint and may be blank.
func (f *Feed) SetRawData(raw []byte, declaredCharset string) {
	f.rawData = raw
	f.declaredCharset = declaredCharset
	f.invalidate()
}

// RawData returns the raw document bytes.
func (f *Feed) RawData() []byte { return f.rawData }

// Charset returns the sniffed character encoding of the raw document.
func (f *Feed) Charset() string {
	f.document()
	return f.charset
}

// SetURL records the feed's own URL, normally the retrieval URL.
func (f *Feed) SetURL(url string) {
	f.url = f.normalizeURL(url)
}

// SetLastRetrieved records when the raw data was fetched.
func (f *Feed) SetLastRetrieved(t time.Time) { f.lastRetrieved = t }

// LastRetrieved returns the fetch timestamp; zero means never retrieved.
func (f *Feed) LastRetrieved() time.Time { return f.lastRetrieved }

// SetHTTPHeaders stores the response headers from the last retrieval.
func (f *Feed) SetHTTPHeaders(headers map[string]string) { f.httpHeaders = headers }

// HTTPHeaders returns the stored response headers.
func (f *Feed) HTTPHeaders() map[string]string { return f.httpHeaders }

func (f *Feed) invalidate() {
	f.doc = nil
	f.docBuilt = false
	f.cache = feedCache{}
	f.items = nil
	f.itemsBuilt = false
	f.charset = ""
}

// document builds the parse tree exactly once per raw-data mutation.
func (f *Feed) document() *xmlquery.Node {
	if f.docBuilt {
		return f.doc
	}
	f.docBuilt = true

	if len(f.rawData) == 0 {
		return nil
	}

	decoded, cs := encodingx.Normalize(f.rawData, f.declaredCharset)
	f.charset = cs

	doc, err := parseLenient(decoded)
	if err != nil {
		// One repair attempt: strip anything before the first '<'.
		if i := bytes.IndexByte(decoded, '<'); i > 0 {
			doc, err = parseLenient(decoded[i:])
		}
		if err != nil {
			return nil
		}
	}
	f.doc = doc
	return f.doc
}

// parseLenient builds the tree with a forgiving decoder: undeclared
// namespace prefixes and HTML entities are facts of syndication life,
// not reasons to discard a document.
func parseLenient(data []byte) (*xmlquery.Node, error) {
	return xmlquery.ParseWithOptions(bytes.NewReader(data), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict: false,
			Entity: xml.HTMLEntity,
		},
	})
}

// rootNode returns the document's root element.
func (f *Feed) rootNode() *xmlquery.Node {
	doc := f.document()
	if doc == nil {
		return nil
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// channelNode finds the feed-level container: channel or feedinfo under the
// root, falling back to the root itself.
func (f *Feed) channelNode() *xmlquery.Node {
	root := f.rootNode()
	if root == nil {
		return nil
	}
	if m := f.res.First(root, []string{"channel", "feedinfo"}); m != nil && m.Node != nil {
		return m.Node
	}
	return root
}

// Type detects the feed family from the root element's local name.
func (f *Feed) Type() string {
	return f.cache.feedType.get(func() string {
		root := f.rootNode()
		if root == nil {
			return ""
		}
		switch strings.ToLower(root.Data) {
		case "feed":
			return TypeAtom
		case "rdf", "rss":
			return TypeRSS
		case "channel":
			return TypeCDF
		}
		return ""
	})
}

// Version derives the format version from the version attribute, the default
// namespace, or the type-specific default.
func (f *Feed) Version() float64 {
	return f.cache.version.get(func() float64 {
		root := f.rootNode()
		if root == nil {
			return 0
		}

		if v := f.res.Attr(root, "version"); v != "" {
			if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return parsed
			}
		}

		switch f.Type() {
		case TypeAtom:
			if strings.EqualFold(root.NamespaceURI, "http://purl.org/atom/ns#") {
				return 0.3
			}
			return 1.0
		case TypeRSS:
			if strings.EqualFold(root.Data, "rdf") {
				if strings.Contains(f.namespaceURIs(root), "my.netscape.com/rdf/simple/0.9") {
					return 0.9
				}
				return 1.0
			}
			return 2.0
		case TypeCDF:
			return 0.4
		}
		return 0
	})
}

func (f *Feed) namespaceURIs(root *xmlquery.Node) string {
	var b strings.Builder
	for _, attr := range root.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			b.WriteString(attr.Value)
			b.WriteString(" ")
		}
	}
	return b.String()
}

var feedIDQueries = []string{
	"atom10:id", "atom03:id", "atom:id", "id", "guid",
}

// ID returns the feed's unique identifier.
func (f *Feed) ID() string {
	return f.cache.id.get(func() string {
		if v := f.res.FirstValue(f.channelNode(), feedIDQueries); v != "" {
			return v
		}
		return f.res.FirstValue(f.rootNode(), feedIDQueries)
	})
}

var feedTitleQueries = []string{
	"atom10:title", "atom03:title", "atom:title", "title", "dc:title",
}

// Title returns the feed title as sanitized HTML.
func (f *Feed) Title() string {
	return f.cache.title.get(func() string {
		title := f.textConstruct(f.channelNode(), feedTitleQueries)
		if title == "" {
			title = f.textConstruct(f.rootNode(), feedTitleQueries)
		}
		return strings.Join(strings.Fields(title), " ")
	})
}

var feedSubtitleQueries = []string{
	"atom10:subtitle", "subtitle", "atom03:tagline", "tagline",
	"description", "summary", "abstract", "content:encoded", "encoded",
	"content", "xhtml:body", "body", "blurb", "info",
}

// Subtitle returns the feed subtitle, tagline, or description.
func (f *Feed) Subtitle() string {
	return f.cache.subtitle.get(func() string {
		if v := f.textConstruct(f.channelNode(), feedSubtitleQueries); v != "" {
			return v
		}
		return f.textConstruct(f.channelNode(), []string{"itunes:summary", "itunes:subtitle"})
	})
}

var feedCopyrightQueries = []string{
	"atom10:rights", "atom03:copyright", "copyright", "rights", "dc:rights",
}

// Copyright returns the feed-level rights statement.
func (f *Feed) Copyright() string {
	return f.cache.copyright.get(func() string {
		return f.textConstruct(f.channelNode(), feedCopyrightQueries)
	})
}

// Generator returns the generating software's self-description.
func (f *Feed) Generator() string {
	return f.cache.generator.get(func() string {
		return f.res.FirstValue(f.channelNode(), []string{"generator"})
	})
}

// Docs returns the format-documentation URL, when present.
func (f *Feed) Docs() string {
	return f.cache.docs.get(func() string {
		return f.normalizeURL(f.res.FirstValue(f.channelNode(), []string{"docs"}))
	})
}

// Language returns the feed language code.
func (f *Feed) Language() string {
	return f.cache.language.get(func() string {
		if v := f.res.FirstValue(f.channelNode(), []string{"language", "dc:language", "@xml:lang"}); v != "" {
			return v
		}
		return f.res.FirstValue(f.rootNode(), []string{"@xml:lang"})
	})
}

// Explicit reports the itunes/media adult-content flag.
func (f *Feed) Explicit() bool {
	return f.cache.explicit.get(func() bool {
		v := strings.ToLower(f.res.FirstValue(f.channelNode(),
			[]string{"itunes:explicit", "media:adult"}))
		return v == "yes" || v == "true" || v == "explicit"
	})
}

// linkDisqualified recognizes link elements that are really self-references
// or media pointers and must not become the feed's website link.
func (f *Feed) linkDisqualified(n *xmlquery.Node) bool {
	rel := strings.ToLower(f.res.Attr(n, "rel"))
	typ := strings.ToLower(f.res.Attr(n, "type"))

	switch rel {
	case "self", "enclosure", "replies", "service.edit", "service.post", "hub":
		return true
	}
	if strings.HasPrefix(typ, "image/") {
		return true
	}
	switch typ {
	case "application/rss+xml", "application/atom+xml", "application/rdf+xml", "text/xml":
		return true
	}
	return false
}

var linkElementQueries = []string{
	"atom10:link", "atom03:link", "atom:link", "link",
}

// Link resolves the feed's website URL through the full fallback chain:
// qualified atom links, bare link elements, guid-as-link, CDF base.
func (f *Feed) Link() string {
	return f.cache.link.get(func() string {
		for _, scope := range []*xmlquery.Node{f.channelNode(), f.rootNode()} {
			if scope == nil {
				continue
			}
			for _, m := range f.res.All(scope, linkElementQueries) {
				if m.Node == nil || f.linkDisqualified(m.Node) {
					continue
				}
				href := f.res.Attr(m.Node, "href")
				if href == "" {
					href = strings.TrimSpace(m.Node.InnerText())
				}
				if href != "" {
					return f.normalizeURL(href)
				}
			}
			if f.channelNode() == f.rootNode() {
				break
			}
		}

		// A guid that happens to be a web URL.
		guid := f.res.FirstValue(f.channelNode(), []string{"guid"})
		if urlnorm.IsValidURI(guid) &&
			!strings.HasPrefix(guid, "urn:uuid:") && !strings.HasPrefix(guid, "tag:") {
			return f.normalizeURL(guid)
		}

		// CDF channels carry their link in a base/href attribute.
		if ch := f.channelNode(); ch != nil {
			if base := f.res.Attr(ch, "base"); base != "" {
				return f.normalizeURL(base)
			}
			if href := f.res.Attr(ch, "href"); href != "" {
				return f.normalizeURL(href)
			}
		}
		return ""
	})
}

var selfURLQueries = []string{
	"atom10:link[@rel='self']/@href",
	"atom:link[@rel='self']/@href",
	"link[@rel='self']/@href",
	"admin:feed/@rdf:resource",
	"admin:feed/@resource",
	"admin:feed/@about",
}

// URL returns the feed's own document URL. When the cached value is absent
// or not http(s) and raw data exists, it self-heals from the document; a
// healthy cached URL is never overwritten, and a derived URL equal to the
// website link is discarded.
func (f *Feed) URL() string {
	if isHTTPURL(f.url) || len(f.rawData) == 0 {
		return f.url
	}

	for _, scope := range []*xmlquery.Node{f.channelNode(), f.rootNode()} {
		if scope == nil {
			continue
		}
		if derived := f.res.FirstValue(scope, selfURLQueries); derived != "" {
			derived = f.normalizeURL(derived)
			if derived != "" && derived != f.Link() {
				f.url = derived
				break
			}
		}
	}
	return f.url
}

func isHTTPURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

var feedAuthorQueries = []string{
	"atom10:author", "atom03:author", "atom:author", "author",
	"managingEditor", "dc:creator", "dc:author", "creator",
}

// Author resolves the feed author, with iTunes metadata as a fallback name.
func (f *Feed) Author() *domain.Person {
	return f.cache.author.get(func() *domain.Person {
		m := f.res.First(f.channelNode(), feedAuthorQueries)
		if m == nil {
			m = f.res.First(f.rootNode(), feedAuthorQueries)
		}
		var person *domain.Person
		if m != nil && m.Node != nil {
			person = personFromNode(f.res, m.Node)
		}
		if person == nil || person.Name == "" {
			if itunes := f.res.FirstValue(f.channelNode(), []string{"itunes:author"}); itunes != "" {
				if person == nil {
					person = &domain.Person{}
				}
				person.Name = itunes
			}
		}
		return person
	})
}

// Publisher resolves the feed publisher.
func (f *Feed) Publisher() *domain.Person {
	return f.cache.publisher.get(func() *domain.Person {
		m := f.res.First(f.channelNode(), []string{"webMaster", "dc:publisher", "publisher"})
		if m == nil || m.Node == nil {
			return nil
		}
		return personFromNode(f.res, m.Node)
	})
}

// Categories collects feed-level category assignments.
func (f *Feed) Categories() []domain.Category {
	return f.cache.categories.get(func() []domain.Category {
		return categoriesFromNodes(f.res, f.res.All(f.channelNode(), []string{"category", "dc:subject"}))
	})
}

func categoriesFromNodes(res *xmlres.Resolver, matches []*xmlres.Match) []domain.Category {
	var out []domain.Category
	for _, m := range matches {
		if m.Node == nil {
			continue
		}
		cat := domain.Category{
			Term:   res.Attr(m.Node, "term"),
			Scheme: res.Attr(m.Node, "scheme"),
			Label:  res.Attr(m.Node, "label"),
		}
		if cat.Term == "" {
			cat.Term = strings.TrimSpace(m.Node.InnerText())
		}
		if cat.Scheme == "" {
			cat.Scheme = res.Attr(m.Node, "domain")
		}
		if cat.Term != "" {
			out = append(out, cat)
		}
	}
	return out
}

// Images collects the feed's images: RSS image blocks, atom logo/icon,
// and the iTunes artwork href.
func (f *Feed) Images() []domain.Image {
	return f.cache.images.get(func() []domain.Image {
		var out []domain.Image
		ch := f.channelNode()

		for _, m := range f.res.All(ch, []string{"image"}) {
			if m.Node == nil {
				continue
			}
			img := domain.Image{
				URL:         f.normalizeURL(f.res.FirstValue(m.Node, []string{"url"})),
				Title:       f.res.FirstValue(m.Node, []string{"title"}),
				Link:        f.normalizeURL(f.res.FirstValue(m.Node, []string{"link"})),
				Description: f.res.FirstValue(m.Node, []string{"description"}),
				Height:      atoiOrZero(f.res.FirstValue(m.Node, []string{"height"})),
				Width:       atoiOrZero(f.res.FirstValue(m.Node, []string{"width"})),
			}
			if img.URL == "" {
				// RSS 1.0 image identity lives in rdf:about.
				img.URL = f.normalizeURL(f.res.Attr(m.Node, "about"))
			}
			if img.URL != "" {
				out = append(out, img)
			}
		}

		for _, q := range []string{"atom10:logo", "logo"} {
			if v := f.res.FirstValue(ch, []string{q}); v != "" {
				out = append(out, domain.Image{URL: f.normalizeURL(v), Style: "logo"})
				break
			}
		}
		for _, q := range []string{"atom10:icon", "icon"} {
			if v := f.res.FirstValue(ch, []string{q}); v != "" {
				out = append(out, domain.Image{URL: f.normalizeURL(v), Style: "icon"})
				break
			}
		}
		if v := f.res.FirstValue(ch, []string{"itunes:image/@href", "itunes:image"}); v != "" {
			out = append(out, domain.Image{URL: f.normalizeURL(v), Style: "itunes"})
		}
		return out
	})
}

// TextInput extracts the RSS textInput block, when present.
func (f *Feed) TextInput() *domain.TextInput {
	return f.cache.textInput.get(func() *domain.TextInput {
		m := f.res.First(f.channelNode(), []string{"textInput", "textinput"})
		if m == nil || m.Node == nil {
			return nil
		}
		ti := &domain.TextInput{
			Title:       f.res.FirstValue(m.Node, []string{"title"}),
			Description: f.res.FirstValue(m.Node, []string{"description"}),
			Name:        f.res.FirstValue(m.Node, []string{"name"}),
			Link:        f.normalizeURL(f.res.FirstValue(m.Node, []string{"link"})),
		}
		if ti.Title == "" && ti.Name == "" && ti.Link == "" {
			return nil
		}
		return ti
	})
}

// Cloud extracts the RSS cloud endpoint, when present.
func (f *Feed) Cloud() *domain.Cloud {
	return f.cache.cloud.get(func() *domain.Cloud {
		m := f.res.First(f.channelNode(), []string{"cloud"})
		if m == nil || m.Node == nil {
			return nil
		}
		c := &domain.Cloud{
			Domain:            f.res.Attr(m.Node, "domain"),
			Port:              f.res.Attr(m.Node, "port"),
			Path:              f.res.Attr(m.Node, "path"),
			RegisterProcedure: f.res.Attr(m.Node, "registerProcedure"),
			Protocol:          strings.ToLower(f.res.Attr(m.Node, "protocol")),
		}
		if c.Domain == "" && c.Path == "" {
			return nil
		}
		return c
	})
}

// MinimumTTL is the floor applied to every feed's declared refresh interval.
const MinimumTTL = 30 * time.Minute

var updatePeriods = map[string]time.Duration{
	"hourly":  time.Hour,
	"daily":   24 * time.Hour,
	"weekly":  7 * 24 * time.Hour,
	"monthly": 30 * 24 * time.Hour,
	"yearly":  365 * 24 * time.Hour,
}

var ttlSpans = map[string]time.Duration{
	"seconds": time.Second,
	"minutes": time.Minute,
	"hours":   time.Hour,
	"days":    24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
	"months":  30 * 24 * time.Hour,
	"years":   365 * 24 * time.Hour,
}

// TTL resolves the feed's declared refresh interval: the syndication
// module, the RSS ttl element, or CDF schedule blocks. The result is
// floored at 30 minutes, capped at the configured maximum, and defaults
// to one hour when nothing is declared.
func (f *Feed) TTL() time.Duration {
	ttl := f.cache.ttl.get(func() time.Duration {
		ch := f.channelNode()

		if freqStr := f.res.FirstValue(ch, []string{"syn:updateFrequency"}); freqStr != "" {
			if freq := atoiOrZero(freqStr); freq > 0 {
				period := strings.ToLower(f.res.FirstValue(ch, []string{"syn:updatePeriod"}))
				per, ok := updatePeriods[period]
				if !ok {
					per = updatePeriods["daily"]
				}
				return per / time.Duration(freq)
			}
		}

		if m := f.res.First(ch, []string{"ttl"}); m != nil && m.Node != nil {
			if v := atoiOrZero(strings.TrimSpace(m.Node.InnerText())); v > 0 {
				span := strings.ToLower(f.res.Attr(m.Node, "span"))
				unit, ok := ttlSpans[span]
				if !ok {
					unit = time.Minute
				}
				return time.Duration(v) * unit
			}
		}

		if m := f.res.First(ch, []string{"schedule/intervaltime"}); m != nil && m.Node != nil {
			total := time.Duration(atoiOrZero(f.res.Attr(m.Node, "day")))*24*time.Hour +
				time.Duration(atoiOrZero(f.res.Attr(m.Node, "hour")))*time.Hour +
				time.Duration(atoiOrZero(f.res.Attr(m.Node, "min")))*time.Minute +
				time.Duration(atoiOrZero(f.res.Attr(m.Node, "sec")))*time.Second
			if total > 0 {
				return total
			}
		}
		return 0
	})

	if ttl <= 0 {
		ttl = time.Hour
	}
	if ttl < MinimumTTL {
		ttl = MinimumTTL
	}
	if f.opts.MaxTTL > 0 && ttl > f.opts.MaxTTL {
		ttl = f.opts.MaxTTL
	}
	return ttl
}

// Expired reports whether the feed is due for a refresh.
func (f *Feed) Expired() bool {
	if f.lastRetrieved.IsZero() {
		return true
	}
	ttl := f.TTL()
	if ttl < MinimumTTL {
		ttl = MinimumTTL
	}
	return time.Now().After(f.lastRetrieved.Add(ttl))
}

var feedTimeQueries = []string{
	"atom10:updated", "atom03:modified", "modified", "updated",
	"lastBuildDate", "pubDate", "dc:date", "date",
}

// Updated returns the feed-level timestamp, if one parses.
func (f *Feed) Updated() *time.Time {
	return f.cache.updated.get(func() *time.Time {
		s := f.res.FirstValue(f.channelNode(), feedTimeQueries)
		if s == "" {
			s = f.res.FirstValue(f.rootNode(), feedTimeQueries)
		}
		if t, ok := timeparse.Parse(s); ok {
			return &t
		}
		return nil
	})
}

// Favicon guesses the site favicon location from the link.
// Note: only plain http links produce a guess; https is left alone because
// the original heuristic predates widespread TLS and downstream behavior
// depends on it.
func (f *Feed) Favicon() string {
	link := f.Link()
	if !strings.HasPrefix(strings.ToLower(link), "http://") {
		return ""
	}
	if i := strings.Index(link[len("http://"):], "/"); i >= 0 {
		return link[:len("http://")+i] + "/favicon.ico"
	}
	return link + "/favicon.ico"
}

var entryQueries = []string{
	"atom10:entry", "atom03:entry", "atom:entry", "entry",
}

var rootItemQueries = []string{
	"rss10:item", "item",
}

// entryNodeList gathers entry nodes through the ordered fallback: atom
// entries on the root, rss 1.0 items as root children, items under the
// channel (rss 2.0 and cdf).
func (f *Feed) entryNodeList() []*xmlquery.Node {
	root := f.rootNode()
	if root == nil {
		return nil
	}

	matches := f.res.All(root, entryQueries)
	if len(matches) == 0 {
		matches = f.res.All(root, rootItemQueries)
	}
	if len(matches) == 0 {
		if ch := f.channelNode(); ch != nil && ch != root {
			matches = f.res.All(ch, []string{"item"})
		}
	}

	nodes := make([]*xmlquery.Node, 0, len(matches))
	for _, m := range matches {
		if m.Node != nil {
			nodes = append(nodes, m.Node)
		}
	}
	return nodes
}

// buildItems constructs items in reversed document order. Feeds put the
// newest entry first; reversing gives the chronological order sibling
// timestamp estimation needs.
func (f *Feed) buildItems() {
	if f.itemsBuilt {
		return
	}
	f.itemsBuilt = true

	nodes := f.entryNodeList()
	f.items = make([]*Item, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		f.items = append(f.items, newItem(f, nodes[i], len(nodes)-1-i))
	}
}

// Entries returns the feed's items sorted by time, newest first. Undated
// items sort as the epoch and float relative to their estimated slot.
func (f *Feed) Entries() []*Item {
	f.buildItems()

	sorted := make([]*Item, len(f.items))
	copy(sorted, f.items)

	// Stable sort keeps undated items beside their document neighbors.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortTime(sorted[i]).After(sortTime(sorted[j]))
	})
	return sorted
}

func sortTime(it *Item) time.Time {
	if t, ok := it.explicitTime(); ok {
		return t
	}
	return time.Unix(0, 0)
}

// textConstruct resolves a field through the ordered query list and the
// text-construct normalizer.
func (f *Feed) textConstruct(scope *xmlquery.Node, queries []string) string {
	m := f.res.FirstAccept(scope, queries, func(m *xmlres.Match) bool {
		if m.Node == nil {
			return m.Text() != ""
		}
		return textnorm.NormalizeTextConstruct(m.Node, "", "", "", f.opts.textOptions()) != ""
	})
	if m == nil {
		return ""
	}
	if m.Node == nil {
		return m.Text()
	}
	return textnorm.NormalizeTextConstruct(m.Node, "", "", "", f.opts.textOptions())
}

func (f *Feed) normalizeURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !f.opts.URLNormalizationEnabled {
		return s
	}
	return urlnorm.NormalizeURL(s)
}

func atoiOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// Canonical snapshots every resolved field into the plain domain model.
func (f *Feed) Canonical() *domain.Feed {
	out := &domain.Feed{
		ID:         f.ID(),
		Title:      f.Title(),
		Subtitle:   f.Subtitle(),
		URL:        f.URL(),
		Link:       f.Link(),
		Type:       f.Type(),
		Version:    f.Version(),
		Copyright:  f.Copyright(),
		Language:   f.Language(),
		Generator:  f.Generator(),
		Docs:       f.Docs(),
		Explicit:   f.Explicit(),
		Author:     f.Author(),
		Publisher:  f.Publisher(),
		Categories: f.Categories(),
		Images:     f.Images(),
		TextInput:  f.TextInput(),
		Cloud:      f.Cloud(),
		TTL:        f.TTL(),
		Updated:    f.Updated(),
	}
	if !f.lastRetrieved.IsZero() {
		t := f.lastRetrieved
		out.LastRetrieved = &t
	}
	entries := f.Entries()
	out.Items = make([]domain.Item, 0, len(entries))
	for _, it := range entries {
		out.Items = append(out.Items, *it.Canonical())
	}
	return out
}
