// ABOUTME: Write-side rendering of the canonical model into RSS 1.0, RSS 2.0
// ABOUTME: and Atom 1.0 documents; requesting an unsupported format fails loudly

package parser

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"feedcanon/core/domain"
	coreerrors "feedcanon/core/errors"
	"feedcanon/pkg/urlnorm"
)

// Output format identifiers accepted by Render.
const (
	FormatRSS10  = "rss_1.0"
	FormatRSS20  = "rss_2.0"
	FormatAtom10 = "atom_1.0"
	FormatAtom03 = "atom_0.3"
)

// Render serializes the feed into the requested format. Unsupported or
// unknown formats are contract violations. Rendering reads through the
// liberal accessors, so a parsed document round-trips into clean output.
func (f *Feed) Render(format string) (string, error) {
	switch normalizeFormat(format) {
	case FormatRSS10:
		return f.renderRSS10()
	case FormatRSS20:
		return f.renderRSS20()
	case FormatAtom10:
		return f.renderAtom10()
	case FormatAtom03:
		return "", &coreerrors.ContractError{
			Contract: "Render",
			Message:  "Atom 0.3 output is obsolete and not supported",
		}
	}
	return "", &coreerrors.ContractError{
		Contract: "Render",
		Message:  fmt.Sprintf("unknown output format %q", format),
	}
}

func normalizeFormat(format string) string {
	s := strings.ToLower(strings.TrimSpace(format))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "rss_1.0", "rss1.0", "rss1", "rdf":
		return FormatRSS10
	case "rss_2.0", "rss2.0", "rss2", "rss":
		return FormatRSS20
	case "atom_1.0", "atom1.0", "atom1", "atom":
		return FormatAtom10
	case "atom_0.3", "atom0.3", "atom03":
		return FormatAtom03
	}
	return s
}

type xmlWriter struct {
	b      strings.Builder
	indent int
}

func (w *xmlWriter) line(s string) {
	w.b.WriteString(strings.Repeat("  ", w.indent))
	w.b.WriteString(s)
	w.b.WriteString("\n")
}

func (w *xmlWriter) open(tag string) {
	w.line("<" + tag + ">")
	w.indent++
}

func (w *xmlWriter) openAttrs(name string, attrs string) {
	w.line("<" + name + " " + attrs + ">")
	w.indent++
}

func (w *xmlWriter) close(name string) {
	w.indent--
	w.line("</" + name + ">")
}

// element writes a simple text element, skipping blank values.
func (w *xmlWriter) element(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	w.line("<" + name + ">" + esc(value) + "</" + name + ">")
}

func esc(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func escAttr(s string) string {
	return esc(s)
}

func (f *Feed) xmlDecl(w *xmlWriter) {
	enc := f.opts.OutputEncoding
	if enc == "" {
		enc = "utf-8"
	}
	w.line(`<?xml version="1.0" encoding="` + escAttr(enc) + `"?>`)
}

func (f *Feed) generatorComment(w *xmlWriter) {
	if f.opts.GeneratorName == "" {
		return
	}
	w.line("<!-- Generated by " + f.opts.GeneratorName + " -->")
}

// renderRSS10 produces an RDF/RSS 1.0 document. The format's rdf:about
// wiring requires every item to have a link; an item without one cannot be
// represented and rendering fails.
func (f *Feed) renderRSS10() (string, error) {
	entries := f.Entries()
	for _, it := range entries {
		if it.Link() == "" {
			return "", &coreerrors.ContractError{
				Contract: "Render rss_1.0",
				Message:  fmt.Sprintf("item %q has no link; RSS 1.0 requires one", it.Title()),
			}
		}
	}

	w := &xmlWriter{}
	f.xmlDecl(w)
	f.generatorComment(w)
	w.openAttrs("rdf:RDF", strings.Join([]string{
		`xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"`,
		`xmlns:dc="http://purl.org/dc/elements/1.1/"`,
		`xmlns:syn="http://purl.org/rss/1.0/modules/syndication/"`,
		`xmlns="http://purl.org/rss/1.0/"`,
	}, " "))

	about := f.URL()
	if about == "" {
		about = f.Link()
	}
	w.openAttrs("channel", `rdf:about="`+escAttr(about)+`"`)
	w.element("title", f.Title())
	w.element("link", f.Link())
	w.element("description", f.Subtitle())
	if lang := f.Language(); lang != "" {
		w.element("dc:language", lang)
	}
	if rights := f.Copyright(); rights != "" {
		w.element("dc:rights", rights)
	}
	if t := f.Updated(); t != nil {
		w.element("dc:date", t.UTC().Format(time.RFC3339))
	}

	w.open("items")
	w.open("rdf:Seq")
	for _, it := range entries {
		w.line(`<rdf:li rdf:resource="` + escAttr(it.Link()) + `" />`)
	}
	w.close("rdf:Seq")
	w.close("items")
	w.close("channel")

	for _, it := range entries {
		w.openAttrs("item", `rdf:about="`+escAttr(it.Link())+`"`)
		w.element("title", it.Title())
		w.element("link", it.Link())
		if s := it.Summary(); s != "" {
			w.element("description", s)
		}
		if t := it.Time(); t != nil {
			w.element("dc:date", t.UTC().Format(time.RFC3339))
		}
		if a := it.Author(); a != nil && a.Name != "" {
			w.element("dc:creator", a.Name)
		}
		for _, tag := range it.Tags() {
			w.element("dc:subject", tag)
		}
		w.close("item")
	}

	w.close("rdf:RDF")
	return w.b.String(), nil
}

// renderRSS20 produces an RSS 2.0 document. RSS enclosures require a
// positive byte length; an enclosure with none is searched for a sized
// alternate version, and when none exists it is dropped with a diagnostic
// comment so the omission is visible in the output.
func (f *Feed) renderRSS20() (string, error) {
	w := &xmlWriter{}
	f.xmlDecl(w)
	f.generatorComment(w)
	w.openAttrs("rss", `version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/"`)
	w.open("channel")

	w.element("title", f.Title())
	w.element("link", f.Link())
	w.element("description", f.Subtitle())
	w.element("language", f.Language())
	w.element("copyright", f.Copyright())
	w.element("docs", f.Docs())
	if f.opts.GeneratorName != "" {
		w.element("generator", f.opts.GeneratorName)
	}
	if ttl := f.TTL(); ttl > 0 {
		w.element("ttl", fmt.Sprintf("%d", int(ttl/time.Minute)))
	}
	if t := f.Updated(); t != nil {
		w.element("lastBuildDate", t.UTC().Format(time.RFC1123Z))
	}
	if a := f.Author(); a != nil {
		if s := rssPersonString(a); s != "" {
			w.element("managingEditor", s)
		}
	}
	if p := f.Publisher(); p != nil {
		if s := rssPersonString(p); s != "" {
			w.element("webMaster", s)
		}
	}
	for _, img := range f.Images() {
		if img.Style != "" && img.Style != "logo" {
			continue
		}
		w.open("image")
		w.element("url", img.URL)
		w.element("title", orDefault(img.Title, f.Title()))
		w.element("link", orDefault(img.Link, f.Link()))
		w.close("image")
		break
	}
	if c := f.Cloud(); c != nil {
		w.line(fmt.Sprintf(`<cloud domain="%s" port="%s" path="%s" registerProcedure="%s" protocol="%s" />`,
			escAttr(c.Domain), escAttr(c.Port), escAttr(c.Path),
			escAttr(c.RegisterProcedure), escAttr(c.Protocol)))
	}

	for _, it := range f.Entries() {
		w.open("item")
		w.element("title", it.Title())
		w.element("link", it.Link())
		if s := it.Summary(); s != "" {
			w.element("description", s)
		}
		if id := it.ID(); id != "" && id != it.Link() {
			w.line(`<guid isPermaLink="false">` + esc(id) + `</guid>`)
		}
		if t := it.Time(); t != nil {
			w.element("pubDate", t.UTC().Format(time.RFC1123Z))
		}
		if a := it.Author(); a != nil {
			if s := rssPersonString(a); s != "" {
				w.element("author", s)
			}
		}
		for _, cat := range it.Categories() {
			if cat.Scheme != "" {
				w.line(`<category domain="` + escAttr(cat.Scheme) + `">` + esc(cat.Term) + `</category>`)
			} else {
				w.element("category", cat.Term)
			}
		}
		w.element("comments", it.Comments())
		f.renderRSSEnclosure(w, it)
		w.close("item")
	}

	w.close("channel")
	w.close("rss")
	return w.b.String(), nil
}

func (f *Feed) renderRSSEnclosure(w *xmlWriter, it *Item) {
	for _, enc := range it.Enclosures() {
		usable := enc
		if _, ok := usable.Size(); !ok {
			usable = nil
			for _, v := range enc.Versions {
				if _, ok := v.Size(); ok {
					usable = v
					break
				}
			}
		}
		if usable == nil {
			w.line("<!-- enclosure " + esc(enc.URL) + " omitted: no byte length available -->")
			continue
		}
		size, _ := usable.Size()
		w.line(fmt.Sprintf(`<enclosure url="%s" length="%d" type="%s" />`,
			escAttr(usable.URL), size, escAttr(usable.Type)))
		// RSS 2.0 allows a single enclosure per item.
		return
	}
}

// renderAtom10 produces an Atom 1.0 document. Every entry needs an id: the
// explicit one when present, else a tag URI derived from the link and
// timestamp. An entry with neither cannot be represented.
func (f *Feed) renderAtom10() (string, error) {
	w := &xmlWriter{}
	f.xmlDecl(w)
	w.openAttrs("feed", `xmlns="http://www.w3.org/2005/Atom"`)

	w.element("title", f.Title())
	if sub := f.Subtitle(); sub != "" {
		w.line(`<subtitle type="html">` + esc(sub) + `</subtitle>`)
	}
	if link := f.Link(); link != "" {
		w.line(`<link href="` + escAttr(link) + `" rel="alternate" />`)
	}
	if u := f.URL(); u != "" {
		w.line(`<link href="` + escAttr(u) + `" rel="self" />`)
	}

	id, err := f.atomFeedID()
	if err != nil {
		return "", err
	}
	w.element("id", id)

	updated := f.Updated()
	if updated == nil {
		now := time.Now()
		updated = &now
	}
	w.element("updated", updated.UTC().Format(time.RFC3339))

	if f.opts.GeneratorName != "" {
		if f.opts.GeneratorHref != "" {
			w.line(`<generator uri="` + escAttr(f.opts.GeneratorHref) + `">` +
				esc(f.opts.GeneratorName) + `</generator>`)
		} else {
			w.element("generator", f.opts.GeneratorName)
		}
	}
	w.element("rights", f.Copyright())
	if a := f.Author(); a != nil {
		writeAtomPerson(w, "author", a)
	}

	for _, it := range f.Entries() {
		w.open("entry")
		w.element("title", it.Title())
		if link := it.Link(); link != "" {
			w.line(`<link href="` + escAttr(link) + `" rel="alternate" />`)
		}

		entryID, err := atomEntryID(it)
		if err != nil {
			return "", err
		}
		w.element("id", entryID)

		t := it.Time()
		if t == nil {
			t = updated
		}
		w.element("updated", t.UTC().Format(time.RFC3339))
		if p := it.Published(); p != nil {
			w.element("published", p.UTC().Format(time.RFC3339))
		}
		if s := it.Summary(); s != "" {
			w.line(`<summary type="html">` + esc(s) + `</summary>`)
		}
		if c := it.Content(); c != "" && c != it.Summary() {
			w.line(`<content type="html">` + esc(c) + `</content>`)
		}
		if a := it.Author(); a != nil {
			writeAtomPerson(w, "author", a)
		}
		for _, cat := range it.Categories() {
			attrs := `term="` + escAttr(cat.Term) + `"`
			if cat.Scheme != "" {
				attrs += ` scheme="` + escAttr(cat.Scheme) + `"`
			}
			if cat.Label != "" {
				attrs += ` label="` + escAttr(cat.Label) + `"`
			}
			w.line("<category " + attrs + " />")
		}
		for _, enc := range it.Enclosures() {
			attrs := `href="` + escAttr(enc.URL) + `" rel="enclosure"`
			if enc.Type != "" {
				attrs += ` type="` + escAttr(enc.Type) + `"`
			}
			if size, ok := enc.Size(); ok {
				attrs += fmt.Sprintf(` length="%d"`, size)
			}
			w.line("<link " + attrs + " />")
		}
		w.close("entry")
	}

	w.close("feed")
	return w.b.String(), nil
}

func (f *Feed) atomFeedID() (string, error) {
	// An atom:id must be a URI. A bare guid falls through to synthesis.
	if id := f.ID(); id != "" && urlnorm.IsValidURI(id) {
		return id, nil
	}
	link := f.Link()
	if link == "" {
		link = f.URL()
	}
	if link == "" {
		return "", &coreerrors.ContractError{
			Contract: "Render atom_1.0",
			Message:  "feed has no id and no link to derive one from",
		}
	}
	when := time.Now()
	if t := f.Updated(); t != nil {
		when = *t
	}
	return urlnorm.BuildTagURI(link, when)
}

func atomEntryID(it *Item) (string, error) {
	if id := it.ID(); id != "" && id != it.Link() && urlnorm.IsValidURI(id) {
		return id, nil
	}
	link := it.Link()
	if link == "" {
		return "", &coreerrors.ContractError{
			Contract: "Render atom_1.0",
			Message:  fmt.Sprintf("entry %q has no id and no link to derive one from", it.Title()),
		}
	}
	when := time.Now()
	if t := it.Time(); t != nil {
		when = *t
	}
	return urlnorm.BuildTagURI(link, when)
}

func writeAtomPerson(w *xmlWriter, tag string, p *domain.Person) {
	if p.Name == "" && p.Email == "" {
		return
	}
	w.open(tag)
	w.element("name", p.Name)
	w.element("email", p.Email)
	w.element("uri", p.Href)
	w.close(tag)
}

func rssPersonString(p *domain.Person) string {
	switch {
	case p.Email != "" && p.Name != "":
		return p.Email + " (" + p.Name + ")"
	case p.Email != "":
		return p.Email
	}
	return ""
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
