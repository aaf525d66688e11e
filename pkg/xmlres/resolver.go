// ABOUTME: Liberal XPath-like resolver over xmlquery node trees
// ABOUTME: Ordered fallback queries, namespace-aware then namespace-blind, case-insensitive

package xmlres

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Match is one resolution result. Element matches carry the node; attribute
// and text() matches carry only the extracted string value.
type Match struct {
	Node    *xmlquery.Node
	Value   string
	IsValue bool
}

// Text returns the usable string form of the match: the extracted value for
// attribute/text matches, the trimmed inner text for element matches.
func (m *Match) Text() string {
	if m == nil {
		return ""
	}
	if m.IsValue {
		return strings.TrimSpace(m.Value)
	}
	if m.Node != nil {
		return strings.TrimSpace(m.Node.InnerText())
	}
	return ""
}

// Resolver resolves ordered lists of path expressions against element nodes.
// The namespace table is fixed at construction; it is never mutated.
type Resolver struct {
	ns map[string][]string
}

// New builds a resolver from the default namespace table plus any extra
// prefix bindings the caller wants recognized.
func New(extra map[string]string) *Resolver {
	ns := make(map[string][]string, len(defaultNamespaces)+len(extra))
	for prefix, uris := range defaultNamespaces {
		ns[prefix] = uris
	}
	for prefix, uri := range extra {
		key := strings.ToLower(prefix)
		ns[key] = append(append([]string{}, ns[key]...), uri)
	}
	return &Resolver{ns: ns}
}

// First tries the queries in order and returns the first non-blank match.
// Each query runs twice: once matching qualified names against the namespace
// table, once ignoring namespaces entirely. Later queries are never
// evaluated once a usable result exists.
func (r *Resolver) First(root *xmlquery.Node, queries []string) *Match {
	return r.FirstAccept(root, queries, nil)
}

// FirstValue is First with string extraction; blank strings are skipped.
func (r *Resolver) FirstValue(root *xmlquery.Node, queries []string) string {
	m := r.FirstAccept(root, queries, func(m *Match) bool {
		return m.Text() != ""
	})
	return m.Text()
}

// FirstAccept is First with a caller predicate: matches failing accept are
// treated as blank and the fallback order continues.
func (r *Resolver) FirstAccept(root *xmlquery.Node, queries []string, accept func(*Match) bool) *Match {
	if root == nil {
		return nil
	}
	for _, q := range queries {
		for _, aware := range []bool{true, false} {
			for _, m := range r.evaluate(root, q, aware) {
				if m.IsValue && m.Text() == "" {
					continue
				}
				if accept != nil && !accept(m) {
					continue
				}
				return m
			}
		}
	}
	return nil
}

// All returns every match of the first query that yields anything, in
// document order. If no query matches it falls back to bare child-name
// matching on the last path segment, which recovers documents whose
// expected namespace prefixes were never declared.
func (r *Resolver) All(root *xmlquery.Node, queries []string) []*Match {
	if root == nil {
		return nil
	}
	for _, q := range queries {
		for _, aware := range []bool{true, false} {
			if ms := r.evaluate(root, q, aware); len(ms) > 0 {
				return ms
			}
		}
	}

	// Bare tag-name recovery pass.
	for _, q := range queries {
		segs := parseQuery(q)
		if len(segs) == 0 {
			continue
		}
		last := segs[len(segs)-1]
		if last.kind != segElement {
			continue
		}
		var out []*Match
		for child := root.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.ElementNode && strings.EqualFold(child.Data, last.name) {
				out = append(out, &Match{Node: child})
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

type segKind int

const (
	segElement segKind = iota
	segAttr
	segText
)

type segment struct {
	kind    segKind
	prefix  string
	name    string
	predKey string
	predVal string
	hasPred bool
	predEq  bool
}

// parseQuery splits a path expression into segments. Supported syntax:
// name, prefix:name, [@attr] and [@attr='value'] predicates on element
// segments, a trailing @attr or text() selector.
func parseQuery(q string) []segment {
	parts := strings.Split(strings.Trim(q, "/"), "/")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "text()" {
			segs = append(segs, segment{kind: segText})
			continue
		}
		if strings.HasPrefix(part, "@") {
			prefix, name := splitQName(part[1:])
			segs = append(segs, segment{kind: segAttr, prefix: prefix, name: name})
			continue
		}

		seg := segment{kind: segElement}
		if open := strings.Index(part, "["); open >= 0 {
			pred := strings.TrimSuffix(part[open+1:], "]")
			part = part[:open]
			pred = strings.TrimPrefix(strings.TrimSpace(pred), "@")
			if eq := strings.Index(pred, "="); eq >= 0 {
				seg.predKey = strings.TrimSpace(pred[:eq])
				seg.predVal = strings.Trim(strings.TrimSpace(pred[eq+1:]), "'\"")
				seg.predEq = true
			} else {
				seg.predKey = strings.TrimSpace(pred)
			}
			seg.hasPred = true
		}
		seg.prefix, seg.name = splitQName(part)
		segs = append(segs, seg)
	}
	return segs
}

func splitQName(s string) (prefix, name string) {
	if i := strings.Index(s, ":"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// evaluate walks one query against the tree. aware selects qualified-name
// matching against the namespace table; when false only local names count.
func (r *Resolver) evaluate(root *xmlquery.Node, q string, aware bool) []*Match {
	segs := parseQuery(q)
	if len(segs) == 0 {
		return nil
	}

	nodes := []*xmlquery.Node{root}
	var out []*Match

	for i, seg := range segs {
		final := i == len(segs)-1
		switch seg.kind {
		case segText:
			if !final {
				return nil
			}
			for _, n := range nodes {
				if v := strings.TrimSpace(n.InnerText()); v != "" {
					out = append(out, &Match{Node: n, Value: v, IsValue: true})
				}
			}
			return out

		case segAttr:
			if !final {
				return nil
			}
			for _, n := range nodes {
				if v, ok := r.attrValue(n, seg.prefix, seg.name, aware); ok {
					out = append(out, &Match{Node: n, Value: v, IsValue: true})
				}
			}
			return out

		case segElement:
			var next []*xmlquery.Node
			for _, n := range nodes {
				for child := n.FirstChild; child != nil; child = child.NextSibling {
					if child.Type != xmlquery.ElementNode {
						continue
					}
					if !r.nameMatches(child, seg, aware) {
						continue
					}
					if seg.hasPred && !r.predicateHolds(child, seg, aware) {
						continue
					}
					next = append(next, child)
				}
			}
			nodes = next
			if len(nodes) == 0 {
				return nil
			}
		}
	}

	for _, n := range nodes {
		out = append(out, &Match{Node: n})
	}
	return out
}

// nameMatches applies the liberal element-name rules. All comparisons are
// case-insensitive. In aware mode a prefixed segment accepts either a
// namespace-URI match from the table or a literal prefix match, because
// real feeds use prefixes they never declare.
func (r *Resolver) nameMatches(n *xmlquery.Node, seg segment, aware bool) bool {
	if !strings.EqualFold(n.Data, seg.name) {
		return false
	}
	if !aware {
		return true
	}
	if seg.prefix == "" {
		// Unprefixed query matches unprefixed elements in any default
		// namespace.
		return n.Prefix == ""
	}
	if strings.EqualFold(n.Prefix, seg.prefix) {
		return true
	}
	for _, uri := range r.ns[strings.ToLower(seg.prefix)] {
		if strings.EqualFold(n.NamespaceURI, uri) {
			return true
		}
	}
	return false
}

func (r *Resolver) predicateHolds(n *xmlquery.Node, seg segment, aware bool) bool {
	prefix, name := splitQName(seg.predKey)
	v, ok := r.attrValue(n, prefix, name, aware)
	if !ok {
		return false
	}
	if !seg.predEq {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(v), seg.predVal)
}

// attrValue finds an attribute by liberal name matching. Prefixed lookups
// accept a literal prefix match or a table URI match; unprefixed lookups
// match the local name alone.
func (r *Resolver) attrValue(n *xmlquery.Node, prefix, name string, aware bool) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if !strings.EqualFold(attr.Name.Local, name) {
			continue
		}
		if prefix == "" || !aware {
			return attr.Value, true
		}
		if strings.EqualFold(attr.Name.Space, prefix) {
			return attr.Value, true
		}
		for _, uri := range r.ns[strings.ToLower(prefix)] {
			if strings.EqualFold(attr.NamespaceURI, uri) {
				return attr.Value, true
			}
		}
	}
	// Second pass: some writers qualify attributes they shouldn't
	// (xml:lang vs lang), so fall back to local-name-only matching.
	if prefix != "" {
		for _, attr := range n.Attr {
			if strings.EqualFold(attr.Name.Local, name) {
				return attr.Value, true
			}
		}
	}
	return "", false
}

// Attr exposes liberal attribute lookup for callers holding a node.
func (r *Resolver) Attr(n *xmlquery.Node, name string) string {
	prefix, local := splitQName(name)
	v, _ := r.attrValue(n, prefix, local, true)
	return v
}
