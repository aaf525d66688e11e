// ABOUTME: Allow-list HTML sanitizer with strip and escape modes
// ABOUTME: Security boundary between feed-supplied markup and rendered output

package textnorm

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// SanitizeMode selects what happens to disallowed elements.
type SanitizeMode int

const (
	// StripMode removes a disallowed element and its entire subtree.
	StripMode SanitizeMode = iota

	// EscapeMode replaces a disallowed element's tags with their
	// HTML-escaped source text, leaving the children unprocessed.
	EscapeMode
)

// The allow-lists are inherited from common feed-reader practice; they are
// deliberately fixed rather than configurable.
var allowedElements = buildSet([]string{
	"a", "abbr", "acronym", "address", "applet", "area", "article", "aside",
	"audio", "b", "big", "blockquote", "br", "button", "canvas", "caption",
	"center", "cite", "code", "col", "colgroup", "command", "datagrid",
	"datalist", "dd", "del", "details", "dfn", "dialog", "dir", "div", "dl",
	"dt", "em", "fieldset", "figcaption", "figure", "font", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "i", "img", "input",
	"ins", "kbd", "label", "legend", "li", "map", "menu", "meter", "nav",
	"ol", "optgroup", "option", "output", "p", "pre", "progress", "q", "s",
	"samp", "section", "select", "small", "source", "span", "strike",
	"strong", "sub", "sup", "table", "tbody", "td", "textarea", "tfoot",
	"th", "thead", "time", "tr", "tt", "u", "ul", "var", "video",
})

var allowedAttributes = buildSet([]string{
	"abbr", "accept", "accept-charset", "accesskey", "action", "align",
	"alt", "autocomplete", "autofocus", "axis", "background", "balance",
	"bgcolor", "border", "cellpadding", "cellspacing", "char", "charoff",
	"charset", "checked", "cite", "class", "clear", "color", "cols",
	"colspan", "compact", "coords", "datetime", "default", "dir",
	"disabled", "enctype", "for", "frame", "headers", "height", "href",
	"hreflang", "hspace", "id", "ismap", "label", "lang", "list",
	"longdesc", "loop", "low", "max", "maxlength", "media", "method",
	"min", "multiple", "name", "nohref", "noshade", "nowrap", "open",
	"pattern", "placeholder", "poster", "preload", "readonly", "rel",
	"required", "rev", "rows", "rowspan", "rules", "scope", "selected",
	"shape", "size", "span", "src", "start", "step", "summary",
	"tabindex", "target", "title", "type", "usemap", "valign", "value",
	"vspace", "width", "xml:lang",
})

var voidElements = buildSet([]string{
	"area", "br", "col", "command", "hr", "img", "input", "source",
})

func buildSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Sanitize walks the fragment token stream. Disallowed elements are
// stripped or escaped per mode; attributes not on the allow-list are
// dropped unconditionally even on retained elements.
func Sanitize(fragment string, mode SanitizeMode) string {
	if fragment == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))

	// stripDepth > 0 means we are inside a stripped subtree.
	// escapeStack tracks nested escape-mode regions by element name.
	stripDepth := 0
	var stripName string
	var escapeStack []string

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return b.String()
		}

		raw := string(z.Raw())

		if len(escapeStack) > 0 {
			handleEscapedRegion(&b, z, tt, raw, &escapeStack)
			continue
		}

		switch tt {
		case html.TextToken:
			if stripDepth == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.CommentToken, html.DoctypeToken:
			// dropped

		case html.StartTagToken, html.SelfClosingTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)

			if stripDepth > 0 {
				if name == stripName && tt == html.StartTagToken {
					stripDepth++
				}
				continue
			}

			if !allowedElements[name] {
				switch mode {
				case StripMode:
					if tt == html.StartTagToken && !voidElements[name] {
						stripDepth = 1
						stripName = name
					}
				case EscapeMode:
					b.WriteString(html.EscapeString(raw))
					if tt == html.StartTagToken && !voidElements[name] {
						escapeStack = append(escapeStack, name)
					}
				}
				continue
			}

			writeTag(&b, z, raw, tt == html.SelfClosingTagToken)

		case html.EndTagToken:
			nameBytes, _ := z.TagName()
			name := string(nameBytes)

			if stripDepth > 0 {
				if name == stripName {
					stripDepth--
				}
				continue
			}

			if !allowedElements[name] {
				if mode == EscapeMode {
					b.WriteString(html.EscapeString(raw))
				}
				continue
			}

			b.WriteString("</")
			b.WriteString(originalTagName(raw))
			b.WriteString(">")
		}
	}
}

// handleEscapedRegion emits tokens verbatim beneath an escaped element,
// escaping only the matching close tag itself.
func handleEscapedRegion(b *strings.Builder, z *html.Tokenizer, tt html.TokenType, raw string, stack *[]string) {
	top := (*stack)[len(*stack)-1]

	switch tt {
	case html.StartTagToken:
		nameBytes, _ := z.TagName()
		if string(nameBytes) == top {
			*stack = append(*stack, top)
		}
		b.WriteString(raw)
	case html.EndTagToken:
		nameBytes, _ := z.TagName()
		if string(nameBytes) == top {
			*stack = (*stack)[:len(*stack)-1]
			b.WriteString(html.EscapeString(raw))
			return
		}
		b.WriteString(raw)
	default:
		b.WriteString(raw)
	}
}

// writeTag re-emits a retained element with its original tag-name case,
// keeping only allow-listed attributes.
func writeTag(b *strings.Builder, z *html.Tokenizer, raw string, selfClosing bool) {
	b.WriteString("<")
	b.WriteString(originalTagName(raw))

	tok := z.Token()
	for _, attr := range tok.Attr {
		key := strings.ToLower(attr.Key)
		if !allowedAttributes[key] {
			continue
		}
		b.WriteString(" ")
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteString(`"`)
	}

	if selfClosing {
		b.WriteString(" /")
	}
	b.WriteString(">")
}

// originalTagName pulls the as-authored tag name out of the raw token so
// that sanitization preserves the document's case.
func originalTagName(raw string) string {
	s := strings.TrimPrefix(raw, "<")
	s = strings.TrimPrefix(s, "/")
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '/', '>':
			return s[:i]
		}
	}
	return s
}

// ApplyNofollow runs the sanitized fragment through a bluemonday policy
// that forces rel=nofollow onto links. Used when the sanitize_with_nofollow
// option is enabled.
func ApplyNofollow(fragment string) string {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy.Sanitize(fragment)
}
