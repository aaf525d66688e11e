// ABOUTME: Text-construct normalization: disambiguates plain text, escaped HTML,
// ABOUTME: raw XHTML and base64 content by type/mode/encoding attributes

package textnorm

import (
	"encoding/base64"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"

	"feedcanon/pkg/xmlres"
)

// RepairFunc is the optional tidy collaborator: takes possibly-broken HTML
// and returns a repaired version. When unavailable the normalizer returns
// its input unchanged (trimmed).
type RepairFunc func(string) string

// Options configures normalization behavior. The zero value is usable.
type Options struct {
	// TidyEnabled routes the final value through Tidy when set.
	TidyEnabled bool

	// Tidy is the external repair collaborator; nil means disabled.
	Tidy RepairFunc

	// Nofollow forces rel=nofollow onto surviving links.
	Nofollow bool

	// ExpandTabs replaces tabs with spaces in the final value.
	ExpandTabs bool
}

// NormalizeTextConstruct interprets a text-bearing node's content. The
// declared* arguments override the node's own type/mode/encoding attributes
// when non-empty. An empty return value means absent, never empty string.
func NormalizeTextConstruct(n *xmlquery.Node, declaredType, declaredMode, declaredEncoding string, opts Options) string {
	if n == nil {
		return ""
	}

	typ := strings.ToLower(firstNonEmpty(declaredType, attrLocal(n, "type")))
	mode := strings.ToLower(firstNonEmpty(declaredMode, attrLocal(n, "mode")))
	enc := strings.ToLower(firstNonEmpty(declaredEncoding, attrLocal(n, "encoding")))

	value, needsEntityRepair := resolveContent(n, typ, mode, enc)
	if strings.TrimSpace(value) == "" {
		return ""
	}

	value = Sanitize(value, StripMode)
	if needsEntityRepair {
		value = html.UnescapeString(value)
	}
	if opts.Nofollow {
		value = ApplyNofollow(value)
	}
	if opts.TidyEnabled && opts.Tidy != nil {
		value = opts.Tidy(value)
	}
	if opts.ExpandTabs {
		value = strings.ReplaceAll(value, "\t", "        ")
	}

	value = strings.TrimSpace(value)
	return value
}

// resolveContent picks the content interpretation, first match wins.
func resolveContent(n *xmlquery.Node, typ, mode, enc string) (string, bool) {
	// 1. CDATA is taken verbatim.
	if cdata, ok := cdataContent(n); ok {
		return strings.TrimSpace(cdata), false
	}

	// 2. base64 payloads.
	if typ == "base64" || mode == "base64" || enc == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(n.InnerText()))
		if err != nil {
			// Malformed base64 degrades to the raw text.
			return strings.TrimSpace(n.InnerText()), false
		}
		return string(decoded), false
	}

	// 3. Inline XHTML.
	if typ == "xhtml" || typ == "xml" || typ == "application/xhtml+xml" ||
		mode == "xhtml" || mode == "xml" || hasXHTMLChild(n) {
		return innerXHTML(n), false
	}

	// 4. Escaped HTML.
	if typ == "escaped" || mode == "escaped" || typ == "html" || typ == "text/html" {
		return html.UnescapeString(innerMarkup(n)), false
	}

	// 5. Plain text: unescape then re-escape so stored values are HTML-safe.
	if typ == "text" || typ == "text/plain" || mode == "text" {
		return html.EscapeString(html.UnescapeString(n.InnerText())), false
	}

	// 6. Default: possibly malformed HTML, flagged for entity repair.
	return innerMarkup(n), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// attrLocal performs a case-insensitive local-name attribute lookup.
func attrLocal(n *xmlquery.Node, name string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Name.Local, name) {
			return attr.Value
		}
	}
	return ""
}

// cdataContent returns the concatenated CDATA sections directly under n.
func cdataContent(n *xmlquery.Node) (string, bool) {
	var b strings.Builder
	found := false
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.CharDataNode {
			b.WriteString(child.Data)
			found = true
		}
	}
	return b.String(), found
}

func hasXHTMLChild(n *xmlquery.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode &&
			strings.EqualFold(child.NamespaceURI, xmlres.XHTMLNamespace) {
			return true
		}
	}
	return false
}

// innerMarkup serializes the node's children back to markup text.
func innerMarkup(n *xmlquery.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(child.OutputXML(true))
	}
	return b.String()
}

// innerXHTML serializes the children with XHTML-namespace normalization:
// xhtml-namespaced elements lose their prefix, foreign-namespaced elements
// keep working by getting an explicit xmlns declaration injected.
func innerXHTML(n *xmlquery.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderXHTMLNode(&b, child)
	}
	return strings.TrimSpace(b.String())
}

func renderXHTMLNode(b *strings.Builder, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		b.WriteString(n.Data)
	case xmlquery.CommentNode:
		// dropped
	case xmlquery.ElementNode:
		inXHTML := n.NamespaceURI == "" || strings.EqualFold(n.NamespaceURI, xmlres.XHTMLNamespace)

		name := n.Data
		if !inXHTML && n.Prefix != "" {
			name = n.Prefix + ":" + n.Data
		}

		b.WriteString("<")
		b.WriteString(name)
		if !inXHTML {
			b.WriteString(` xmlns`)
			if n.Prefix != "" {
				b.WriteString(":")
				b.WriteString(n.Prefix)
			}
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(n.NamespaceURI))
			b.WriteString(`"`)
		}
		for _, attr := range n.Attr {
			if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
				continue
			}
			b.WriteString(" ")
			if attr.Name.Space != "" && attr.Name.Space != xmlres.XHTMLNamespace {
				b.WriteString(attr.Name.Space)
				b.WriteString(":")
			}
			b.WriteString(attr.Name.Local)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(attr.Value))
			b.WriteString(`"`)
		}

		if n.FirstChild == nil {
			b.WriteString(" />")
			return
		}
		b.WriteString(">")
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			renderXHTMLNode(b, child)
		}
		b.WriteString("</")
		b.WriteString(name)
		b.WriteString(">")
	}
}
