// ABOUTME: Canonical namespace table for the liberal resolver
// ABOUTME: Maps short prefixes to every namespace URI seen in the wild for them

package xmlres

// XHTMLNamespace is the XHTML namespace URI, needed by text-construct handling.
const XHTMLNamespace = "http://www.w3.org/1999/xhtml"

// defaultNamespaces maps resolver prefixes to accepted namespace URIs.
// Several prefixes accept more than one URI because feeds disagree about
// trailing slashes and module revisions.
var defaultNamespaces = map[string][]string{
	"atom10":     {"http://www.w3.org/2005/Atom"},
	"atom03":     {"http://purl.org/atom/ns#"},
	"atom":       {"http://www.w3.org/2005/Atom", "http://purl.org/atom/ns#"},
	"rdf":        {"http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	"rss09":      {"http://my.netscape.com/rdf/simple/0.9/"},
	"rss10":      {"http://purl.org/rss/1.0/"},
	"rss11":      {"http://purl.org/net/rss1.1#"},
	"dc":         {"http://purl.org/dc/elements/1.1/"},
	"dcterms":    {"http://purl.org/dc/terms/"},
	"syn":        {"http://purl.org/rss/1.0/modules/syndication/"},
	"taxo":       {"http://purl.org/rss/1.0/modules/taxonomy/"},
	"content":    {"http://purl.org/rss/1.0/modules/content/"},
	"itunes":     {"http://www.itunes.com/dtds/podcast-1.0.dtd"},
	"media":      {"http://search.yahoo.com/mrss/", "http://search.yahoo.com/mrss"},
	"xhtml":      {XHTMLNamespace},
	"admin":      {"http://webns.net/mvcb/"},
	"feedburner": {"http://rssnamespace.org/feedburner/ext/1.0"},
	"trackback":  {"http://madskills.com/public/xml/rss/module/trackback/"},
	"wfw":        {"http://wellformedweb.org/CommentAPI/"},
	"slash":      {"http://purl.org/rss/1.0/modules/slash/"},
	"xml":        {"http://www.w3.org/XML/1998/namespace"},
}
