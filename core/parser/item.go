// ABOUTME: Item model: per-entry field resolution with sibling timestamp
// ABOUTME: estimation and multi-source enclosure merging keyed on URL

package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"

	"feedcanon/core/domain"
	coreerrors "feedcanon/core/errors"
	"feedcanon/pkg/textnorm"
	"feedcanon/pkg/timeparse"
	"feedcanon/pkg/xmlres"
)

type itemCache struct {
	id           memo[string]
	title        memo[string]
	link         memo[string]
	content      memo[string]
	summary      memo[string]
	copyright    memo[string]
	comments     memo[string]
	author       memo[*domain.Person]
	publisher    memo[*domain.Person]
	categories   memo[[]domain.Category]
	images       memo[[]domain.Image]
	tags         memo[[]string]
	enclosures   memo[[]*domain.Enclosure]
	explicitT    memo[*time.Time]
	estimatedT   memo[*time.Time]
	published    memo[*time.Time]
	updated      memo[*time.Time]
	explicitFlag memo[bool]
}

// Item is a single feed entry. Every item belongs to exactly one Feed,
// recorded at construction; attaching a node to a second feed is a
// programming error and panics with a contract violation.
type Item struct {
	owner *Feed
	node  *xmlquery.Node
	index int

	cache itemCache
}

func newItem(owner *Feed, node *xmlquery.Node, index int) *Item {
	return &Item{owner: owner, node: node, index: index}
}

// Owner returns the feed this item belongs to.
func (it *Item) Owner() *Feed { return it.owner }

// AttachTo re-parents a detached item. An item already owned by a different
// feed cannot be claimed again; that is a caller bug, not a document problem.
func (it *Item) AttachTo(f *Feed) error {
	if it.owner != nil && it.owner != f {
		return &coreerrors.ContractError{
			Contract: "Item ownership",
			Message:  "item already belongs to another feed",
		}
	}
	it.owner = f
	return nil
}

// Node exposes the underlying element for extension lookups.
func (it *Item) Node() *xmlquery.Node { return it.node }

func (it *Item) res() *xmlres.Resolver { return it.owner.res }

var itemIDQueries = []string{
	"atom10:id", "atom03:id", "atom:id", "id", "guid",
}

// ID returns the entry identifier, falling back to the link.
func (it *Item) ID() string {
	return it.cache.id.get(func() string {
		if v := it.res().FirstValue(it.node, itemIDQueries); v != "" {
			return v
		}
		return it.Link()
	})
}

var itemTitleQueries = []string{
	"atom10:title", "atom03:title", "atom:title", "title", "dc:title",
}

// commentCountRe matches a trailing " (12)" comment counter on titles.
var commentCountRe = regexp.MustCompile(`\s*\(\d+\)\s*$`)

// Title returns the entry title, whitespace-collapsed, optionally with a
// trailing comment counter stripped.
func (it *Item) Title() string {
	return it.cache.title.get(func() string {
		title := it.textConstruct(itemTitleQueries)
		title = strings.Join(strings.Fields(title), " ")
		if it.owner.opts.StripCommentCount {
			title = commentCountRe.ReplaceAllString(title, "")
		}
		return title
	})
}

// Link resolves the entry's web link: qualified atom alternates first, then
// bare links, then a guid that looks like a URL.
func (it *Item) Link() string {
	return it.cache.link.get(func() string {
		queries := []string{
			"atom10:link[@rel='alternate']/@href",
			"atom:link[@rel='alternate']/@href",
			"link[@rel='alternate']/@href",
		}
		if v := it.res().FirstValue(it.node, queries); v != "" {
			return it.owner.normalizeURL(v)
		}

		for _, m := range it.res().All(it.node, linkElementQueries) {
			if m.Node == nil || it.owner.linkDisqualified(m.Node) {
				continue
			}
			href := it.res().Attr(m.Node, "href")
			if href == "" {
				href = strings.TrimSpace(m.Node.InnerText())
			}
			if href != "" {
				return it.owner.normalizeURL(href)
			}
		}

		// guid with isPermaLink unset or true doubles as the link.
		if m := it.res().First(it.node, []string{"guid"}); m != nil && m.Node != nil {
			perma := strings.ToLower(it.res().Attr(m.Node, "isPermaLink"))
			guid := strings.TrimSpace(m.Node.InnerText())
			if perma != "false" && isHTTPURL(guid) {
				return it.owner.normalizeURL(guid)
			}
		}

		// CDF items carry the link in an href attribute.
		if href := it.res().Attr(it.node, "href"); href != "" {
			return it.owner.normalizeURL(href)
		}
		return ""
	})
}

var itemContentQueries = []string{
	"atom10:content", "atom03:content", "atom:content",
	"content:encoded", "encoded", "content", "fullitem",
	"xhtml:body", "body",
}

// Content returns the entry's full content, falling back to the summary.
func (it *Item) Content() string {
	return it.cache.content.get(func() string {
		if v := it.textConstruct(itemContentQueries); v != "" {
			return v
		}
		return it.summaryRaw()
	})
}

var itemSummaryQueries = []string{
	"atom10:summary", "atom03:summary", "atom:summary", "summary",
	"description", "abstract", "blurb",
}

// Summary returns the short form, falling back to the full content.
func (it *Item) Summary() string {
	return it.cache.summary.get(func() string {
		if v := it.summaryRaw(); v != "" {
			return v
		}
		return it.textConstruct(itemContentQueries)
	})
}

func (it *Item) summaryRaw() string {
	if v := it.textConstruct(itemSummaryQueries); v != "" {
		return v
	}
	return it.textConstruct([]string{"itunes:summary", "itunes:subtitle"})
}

// Copyright returns the per-entry rights statement.
func (it *Item) Copyright() string {
	return it.cache.copyright.get(func() string {
		return it.textConstruct(feedCopyrightQueries)
	})
}

// Comments returns the comments-page URL.
func (it *Item) Comments() string {
	return it.cache.comments.get(func() string {
		v := it.res().FirstValue(it.node, []string{"comments", "wfw:comment"})
		return it.owner.normalizeURL(v)
	})
}

// Author resolves the entry author, inheriting the feed author when the
// entry declares none.
func (it *Item) Author() *domain.Person {
	return it.cache.author.get(func() *domain.Person {
		m := it.res().First(it.node, feedAuthorQueries)
		if m != nil && m.Node != nil {
			if p := personFromNode(it.res(), m.Node); p != nil {
				return p
			}
		}
		return it.owner.Author()
	})
}

// Publisher resolves the entry publisher, inheriting from the feed.
func (it *Item) Publisher() *domain.Person {
	return it.cache.publisher.get(func() *domain.Person {
		m := it.res().First(it.node, []string{"webMaster", "dc:publisher", "publisher"})
		if m != nil && m.Node != nil {
			if p := personFromNode(it.res(), m.Node); p != nil {
				return p
			}
		}
		return it.owner.Publisher()
	})
}

// Explicit reports the adult-content flag. The result is the OR of the
// item and its parent feed; a clean marking cannot launder an explicit feed.
func (it *Item) Explicit() bool {
	return it.cache.explicitFlag.get(func() bool {
		v := strings.ToLower(it.res().FirstValue(it.node,
			[]string{"itunes:explicit", "media:adult"}))
		switch v {
		case "yes", "true", "explicit":
			return true
		}
		return it.owner.Explicit()
	})
}

// Categories collects the entry's category assignments.
func (it *Item) Categories() []domain.Category {
	return it.cache.categories.get(func() []domain.Category {
		return categoriesFromNodes(it.res(),
			it.res().All(it.node, []string{"category", "dc:subject"}))
	})
}

// Images collects image references attached to the entry.
func (it *Item) Images() []domain.Image {
	return it.cache.images.get(func() []domain.Image {
		var out []domain.Image
		seen := map[string]bool{}
		add := func(url, style string) {
			url = it.owner.normalizeURL(url)
			if url == "" || seen[url] {
				return
			}
			seen[url] = true
			out = append(out, domain.Image{URL: url, Style: style})
		}

		for _, m := range it.res().All(it.node, []string{"media:thumbnail"}) {
			if m.Node != nil {
				add(it.res().Attr(m.Node, "url"), "thumbnail")
			}
		}
		if v := it.res().FirstValue(it.node, []string{"itunes:image/@href", "itunes:image"}); v != "" {
			add(v, "itunes")
		}
		for _, enc := range it.Enclosures() {
			if enc.IsImage() {
				add(enc.URL, "enclosure")
			}
		}
		return out
	})
}

var explicitTimeQueries = []string{
	"atom10:published", "atom03:issued", "issued", "published",
	"pubDate", "dc:date", "date",
	"atom10:updated", "atom03:modified", "modified", "updated",
}

// titleAsDateSlack guards the title-as-date heuristic: a title that parses
// as a time counts only when it is clearly not "now", which filters out
// titles like numbers that dateparse happily misreads as the current day.
const titleAsDateSlack = 100 * time.Second

// explicitTime returns the entry's declared timestamp. When no time element
// parses, a title that itself parses as a date (some feeds title entries
// with the day) is accepted if it lands more than titleAsDateSlack from now.
func (it *Item) explicitTime() (time.Time, bool) {
	t := it.cache.explicitT.get(func() *time.Time {
		if s := it.res().FirstValue(it.node, explicitTimeQueries); s != "" {
			if parsed, ok := timeparse.Parse(s); ok {
				return &parsed
			}
		}

		if title := it.res().FirstValue(it.node, itemTitleQueries); title != "" {
			if parsed, ok := timeparse.Parse(title); ok {
				if d := time.Since(parsed); d > titleAsDateSlack || d < -titleAsDateSlack {
					return &parsed
				}
			}
		}
		return nil
	})
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// Time returns the entry's effective timestamp. Undated entries borrow from
// their construction-order neighbors when estimation is enabled: one second
// after the nearest dated predecessor, else one second before the nearest
// dated successor, else the current time. Only explicit sibling times feed
// the estimate, so estimates never cascade.
func (it *Item) Time() *time.Time {
	if t, ok := it.explicitTime(); ok {
		out := t
		return &out
	}
	if !it.owner.opts.TimestampEstimationEnabled {
		return nil
	}

	return it.cache.estimatedT.get(func() *time.Time {
		it.owner.buildItems()
		siblings := it.owner.items

		for i := it.index - 1; i >= 0; i-- {
			if t, ok := siblings[i].explicitTime(); ok {
				est := t.Add(time.Second)
				return &est
			}
		}
		for i := it.index + 1; i < len(siblings); i++ {
			if t, ok := siblings[i].explicitTime(); ok {
				est := t.Add(-time.Second)
				return &est
			}
		}
		now := time.Now()
		return &now
	})
}

var publishedQueries = []string{
	"atom10:published", "atom03:issued", "issued", "published",
	"pubDate", "dc:date", "date",
}

// Published returns the declared publication time, if one parses.
func (it *Item) Published() *time.Time {
	return it.cache.published.get(func() *time.Time {
		if s := it.res().FirstValue(it.node, publishedQueries); s != "" {
			if t, ok := timeparse.Parse(s); ok {
				return &t
			}
		}
		return nil
	})
}

var updatedQueries = []string{
	"atom10:updated", "atom03:modified", "modified", "updated",
}

// Updated returns the declared modification time, if one parses.
func (it *Item) Updated() *time.Time {
	return it.cache.updated.get(func() *time.Time {
		if s := it.res().FirstValue(it.node, updatedQueries); s != "" {
			if t, ok := timeparse.Parse(s); ok {
				return &t
			}
		}
		return nil
	})
}

// Tags resolves the entry's flat tag list through the ordered source chain:
// dc:subject rdf:Bag members, taxo:topics resource URL tails, category
// elements, plain dc:subject values, then itunes:keywords split on commas
// (or spaces when no comma appears). Tags are lowercased and deduplicated.
func (it *Item) Tags() []string {
	return it.cache.tags.get(func() []string {
		var raw []string

		// dc:subject with an rdf:Bag of rdf:li members.
		if m := it.res().First(it.node, []string{"dc:subject/rdf:Bag"}); m != nil && m.Node != nil {
			for _, li := range it.res().All(m.Node, []string{"rdf:li", "li"}) {
				if li.Node != nil {
					if v := strings.TrimSpace(li.Node.InnerText()); v != "" {
						raw = append(raw, v)
					} else if v := it.res().Attr(li.Node, "resource"); v != "" {
						raw = append(raw, urlTail(v))
					}
				}
			}
		}

		if len(raw) == 0 {
			if m := it.res().First(it.node, []string{"taxo:topics"}); m != nil && m.Node != nil {
				for _, li := range it.res().All(m.Node, []string{"rdf:Bag/rdf:li", "rdf:li", "li"}) {
					if li.Node == nil {
						continue
					}
					if v := it.res().Attr(li.Node, "resource"); v != "" {
						raw = append(raw, urlTail(v))
					}
				}
			}
		}

		if len(raw) == 0 {
			for _, m := range it.res().All(it.node, []string{"category"}) {
				if m.Node == nil {
					continue
				}
				v := it.res().Attr(m.Node, "term")
				if v == "" {
					v = strings.TrimSpace(m.Node.InnerText())
				}
				if v != "" {
					raw = append(raw, v)
				}
			}
		}

		if len(raw) == 0 {
			for _, m := range it.res().All(it.node, []string{"dc:subject"}) {
				if m.Node != nil {
					if v := strings.TrimSpace(m.Node.InnerText()); v != "" {
						raw = append(raw, v)
					}
				}
			}
		}

		if len(raw) == 0 {
			if kw := it.res().FirstValue(it.node, []string{"itunes:keywords"}); kw != "" {
				parts := strings.Split(kw, ",")
				if len(parts) == 1 {
					parts = strings.Fields(kw)
				}
				for _, p := range parts {
					if p = strings.TrimSpace(p); p != "" {
						raw = append(raw, p)
					}
				}
			}
		}

		seen := map[string]bool{}
		var out []string
		for _, tag := range raw {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
		return out
	})
}

func urlTail(u string) string {
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndexAny(u, "/#"); i >= 0 {
		return u[i+1:]
	}
	return u
}

// Enclosures merges every enclosure source into one URL-keyed list: RSS
// enclosure elements, atom rel=enclosure links, media:content (standalone
// and inside media:group). A media:group yields one default enclosure
// carrying its alternates as versions. Later sources enrich, never
// duplicate, an already-seen URL.
func (it *Item) Enclosures() []*domain.Enclosure {
	return it.cache.enclosures.get(func() []*domain.Enclosure {
		byURL := map[string]*domain.Enclosure{}
		var order []string

		merge := func(enc *domain.Enclosure) *domain.Enclosure {
			if enc == nil || enc.URL == "" {
				return nil
			}
			if existing, ok := byURL[enc.URL]; ok {
				mergeEnclosure(existing, enc)
				return existing
			}
			byURL[enc.URL] = enc
			order = append(order, enc.URL)
			return enc
		}

		for _, m := range it.res().All(it.node, []string{"enclosure"}) {
			if m.Node != nil {
				merge(it.rssEnclosure(m.Node))
			}
		}

		for _, m := range it.res().All(it.node, linkElementQueries) {
			if m.Node == nil {
				continue
			}
			if !strings.EqualFold(it.res().Attr(m.Node, "rel"), "enclosure") {
				continue
			}
			merge(it.atomEnclosure(m.Node))
		}

		// Standalone media:content directly under the item.
		for _, m := range it.res().All(it.node, []string{"media:content"}) {
			if m.Node != nil {
				merge(it.mediaEnclosure(m.Node, nil))
			}
		}

		for _, g := range it.res().All(it.node, []string{"media:group"}) {
			if g.Node == nil {
				continue
			}
			it.mergeMediaGroup(g.Node, merge)
		}

		out := make([]*domain.Enclosure, 0, len(order))
		for _, url := range order {
			out = append(out, byURL[url])
		}

		// A lone enclosure inherits the item-level iTunes duration.
		if len(out) == 1 && out[0].Duration == 0 {
			if d := it.itunesDuration(); d > 0 {
				out[0].Duration = time.Duration(d) * time.Second
			}
		}
		return out
	})
}

func (it *Item) rssEnclosure(n *xmlquery.Node) *domain.Enclosure {
	enc := &domain.Enclosure{
		URL:  it.owner.normalizeURL(it.res().Attr(n, "url")),
		Type: it.res().Attr(n, "type"),
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(it.res().Attr(n, "length")), 10, 64); err == nil && v > 0 {
		enc.FileSize = v
	}
	return enc
}

func (it *Item) atomEnclosure(n *xmlquery.Node) *domain.Enclosure {
	enc := &domain.Enclosure{
		URL:  it.owner.normalizeURL(it.res().Attr(n, "href")),
		Type: it.res().Attr(n, "type"),
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(it.res().Attr(n, "length")), 10, 64); err == nil && v > 0 {
		enc.FileSize = v
	}
	return enc
}

// mediaEnclosure builds an enclosure from a media:content element, with
// group-level metadata inherited for any field the element leaves blank.
func (it *Item) mediaEnclosure(n *xmlquery.Node, group *xmlquery.Node) *domain.Enclosure {
	res := it.res()
	enc := &domain.Enclosure{
		URL:        it.owner.normalizeURL(res.Attr(n, "url")),
		Type:       res.Attr(n, "type"),
		Expression: strings.ToLower(res.Attr(n, "expression")),
		IsDefault:  strings.EqualFold(res.Attr(n, "isDefault"), "true"),
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(res.Attr(n, "fileSize")), 10, 64); err == nil && v > 0 {
		enc.FileSize = v
	}
	enc.Duration = time.Duration(atoiOrZero(res.Attr(n, "duration"))) * time.Second
	enc.Height = atoiOrZero(res.Attr(n, "height"))
	enc.Width = atoiOrZero(res.Attr(n, "width"))
	enc.Bitrate = atoiOrZero(res.Attr(n, "bitrate"))
	enc.Framerate = atoiOrZero(res.Attr(n, "framerate"))

	scopes := []*xmlquery.Node{n}
	if group != nil {
		scopes = append(scopes, group)
	}
	explicitSet := false
	for _, scope := range scopes {
		if enc.Thumbnail == nil {
			if m := res.First(scope, []string{"media:thumbnail"}); m != nil && m.Node != nil {
				enc.Thumbnail = &domain.Image{
					URL:    it.owner.normalizeURL(res.Attr(m.Node, "url")),
					Height: atoiOrZero(res.Attr(m.Node, "height")),
					Width:  atoiOrZero(res.Attr(m.Node, "width")),
					Style:  "thumbnail",
				}
			}
		}
		if enc.Text == "" {
			enc.Text = res.FirstValue(scope, []string{"media:text"})
		}
		if enc.Hash == nil {
			if m := res.First(scope, []string{"media:hash"}); m != nil && m.Node != nil {
				algo := res.Attr(m.Node, "algo")
				if algo == "" {
					algo = "md5"
				}
				enc.Hash = &domain.EnclosureHash{
					Algorithm: strings.ToLower(algo),
					Value:     strings.TrimSpace(m.Node.InnerText()),
				}
			}
		}
		if enc.Player == nil {
			if m := res.First(scope, []string{"media:player"}); m != nil && m.Node != nil {
				enc.Player = &domain.EnclosurePlayer{
					URL:    it.owner.normalizeURL(res.Attr(m.Node, "url")),
					Height: atoiOrZero(res.Attr(m.Node, "height")),
					Width:  atoiOrZero(res.Attr(m.Node, "width")),
				}
			}
		}
		if len(enc.Credits) == 0 {
			for _, m := range res.All(scope, []string{"media:credit"}) {
				if m.Node == nil {
					continue
				}
				enc.Credits = append(enc.Credits, domain.EnclosureCredit{
					Role: strings.ToLower(res.Attr(m.Node, "role")),
					Name: strings.TrimSpace(m.Node.InnerText()),
				})
			}
		}
		if len(enc.Categories) == 0 {
			enc.Categories = categoriesFromNodes(res, res.All(scope, []string{"media:category", "category"}))
		}
		if !explicitSet {
			v := strings.ToLower(strings.TrimSpace(
				res.FirstValue(scope, []string{"media:adult", "itunes:explicit"})))
			if v != "" {
				enc.Explicit = v == "true" || v == "yes" || v == "explicit"
				explicitSet = true
			}
		}
	}
	return enc
}

// mergeMediaGroup folds a media:group into the enclosure set: the default
// member (explicit isDefault, else the first) is merged with the alternates
// recorded as its versions.
func (it *Item) mergeMediaGroup(group *xmlquery.Node, merge func(*domain.Enclosure) *domain.Enclosure) {
	var members []*domain.Enclosure
	for _, m := range it.res().All(group, []string{"media:content"}) {
		if m.Node == nil {
			continue
		}
		if enc := it.mediaEnclosure(m.Node, group); enc.URL != "" {
			members = append(members, enc)
		}
	}
	if len(members) == 0 {
		return
	}

	def := members[0]
	for _, m := range members {
		if m.IsDefault {
			def = m
			break
		}
	}
	def.IsDefault = true

	var versions []*domain.Enclosure
	for _, m := range members {
		if m != def {
			m.DefaultVersion = def
			versions = append(versions, m)
		}
	}
	def.Versions = versions

	merged := merge(def)
	for _, v := range versions {
		v.DefaultVersion = merged
	}
}

// mergeEnclosure copies non-zero fields of src into dst.
func mergeEnclosure(dst, src *domain.Enclosure) {
	if dst.Type == "" {
		dst.Type = src.Type
	}
	if dst.FileSize == 0 {
		dst.FileSize = src.FileSize
	}
	if dst.Duration == 0 {
		dst.Duration = src.Duration
	}
	if dst.Height == 0 {
		dst.Height = src.Height
	}
	if dst.Width == 0 {
		dst.Width = src.Width
	}
	if dst.Bitrate == 0 {
		dst.Bitrate = src.Bitrate
	}
	if dst.Framerate == 0 {
		dst.Framerate = src.Framerate
	}
	if dst.Thumbnail == nil {
		dst.Thumbnail = src.Thumbnail
	}
	if dst.Hash == nil {
		dst.Hash = src.Hash
	}
	if dst.Player == nil {
		dst.Player = src.Player
	}
	if len(dst.Credits) == 0 {
		dst.Credits = src.Credits
	}
	if len(dst.Categories) == 0 {
		dst.Categories = src.Categories
	}
	if dst.Text == "" {
		dst.Text = src.Text
	}
	if dst.Expression == "" {
		dst.Expression = src.Expression
	}
	if len(dst.Versions) == 0 {
		dst.Versions = src.Versions
	}
	dst.IsDefault = dst.IsDefault || src.IsDefault
}

// itunesDuration parses the itunes:duration element: plain seconds, MM:SS,
// or HH:MM:SS.
func (it *Item) itunesDuration() int {
	s := strings.TrimSpace(it.res().FirstValue(it.node, []string{"itunes:duration"}))
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return 0
		}
		total = total*60 + v
	}
	return total
}

// IsValid reports whether the entry carries at least one usable field.
func (it *Item) IsValid() bool {
	return it.Title() != "" || it.Link() != "" || it.Content() != ""
}

func (it *Item) textConstruct(queries []string) string {
	m := it.res().FirstAccept(it.node, queries, func(m *xmlres.Match) bool {
		if m.Node == nil {
			return m.Text() != ""
		}
		return textnorm.NormalizeTextConstruct(m.Node, "", "", "", it.owner.opts.textOptions()) != ""
	})
	if m == nil {
		return ""
	}
	if m.Node == nil {
		return m.Text()
	}
	return textnorm.NormalizeTextConstruct(m.Node, "", "", "", it.owner.opts.textOptions())
}

// Canonical snapshots the item into the plain domain model.
func (it *Item) Canonical() *domain.Item {
	out := &domain.Item{
		ID:         it.ID(),
		Title:      it.Title(),
		Link:       it.Link(),
		Content:    it.Content(),
		Summary:    it.Summary(),
		Copyright:  it.Copyright(),
		Comments:   it.Comments(),
		Explicit:   it.Explicit(),
		Author:     it.Author(),
		Publisher:  it.Publisher(),
		Categories: it.Categories(),
		Images:     it.Images(),
		Tags:       it.Tags(),
		Published:  it.Published(),
		Updated:    it.Updated(),
		Time:       it.Time(),
	}
	for _, enc := range it.Enclosures() {
		out.Enclosures = append(out.Enclosures, *enc)
	}
	return out
}

// String implements fmt.Stringer for log output.
func (it *Item) String() string {
	return fmt.Sprintf("Item(%s)", it.Title())
}
