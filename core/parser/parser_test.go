package parser

import (
	"strings"
	"testing"
	"time"

	coreerrors "feedcanon/core/errors"
)

func parse(t *testing.T, doc string) *Feed {
	t.Helper()
	return ParseFeed([]byte(doc), DefaultOptions())
}

const rss2Doc = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Example  News</title>
    <link>http://example.com/</link>
    <description>News from example.com</description>
    <language>en-us</language>
    <managingEditor>editor@example.com (Ed Itor)</managingEditor>
    <ttl>90</ttl>
    <item>
      <title>Second post</title>
      <link>http://example.com/2</link>
      <guid isPermaLink="false">post-2</guid>
      <pubDate>Tue, 10 Jun 2003 09:41:01 GMT</pubDate>
      <description>the newer one</description>
    </item>
    <item>
      <title>First post</title>
      <link>http://example.com/1</link>
      <pubDate>Mon, 09 Jun 2003 09:41:01 GMT</pubDate>
      <description>the older one</description>
    </item>
  </channel>
</rss>`

func TestFeed_TypeDetection(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		typ     string
		version float64
	}{
		{"rss 2.0", rss2Doc, TypeRSS, 2.0},
		{"rss 0.91", `<rss version="0.91"><channel><title>x</title></channel></rss>`, TypeRSS, 0.91},
		{"atom 1.0", `<feed xmlns="http://www.w3.org/2005/Atom"><title>x</title></feed>`, TypeAtom, 1.0},
		{"atom 0.3", `<feed xmlns="http://purl.org/atom/ns#" version="0.3"><title>x</title></feed>`, TypeAtom, 0.3},
		{"rdf", `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://purl.org/rss/1.0/"><channel rdf:about="http://example.com/feed"><title>x</title></channel></rdf:RDF>`, TypeRSS, 1.0},
		{"cdf", `<CHANNEL HREF="http://example.com/"><TITLE>x</TITLE></CHANNEL>`, TypeCDF, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parse(t, tt.doc)
			if got := f.Type(); got != tt.typ {
				t.Errorf("Type() = %q, want %q", got, tt.typ)
			}
			if got := f.Version(); got != tt.version {
				t.Errorf("Version() = %v, want %v", got, tt.version)
			}
		})
	}
}

func TestFeed_UndeclaredPrefixDoesNotAbortParse(t *testing.T) {
	doc := `<rss version="2.0"><channel><title>Prefix Test</title>
	  <item><title>ep</title><itunes:duration>60</itunes:duration></item>
	</channel></rss>`
	f := parse(t, doc)

	if got := f.Title(); got != "Prefix Test" {
		t.Errorf("Title() = %q; an undeclared prefix killed the document", got)
	}
	if got := len(f.Entries()); got != 1 {
		t.Errorf("Entries() = %d, want 1", got)
	}
}

func TestFeed_HTMLEntityDoesNotAbortParse(t *testing.T) {
	doc := `<rss version="2.0"><channel>
	  <title>Before&nbsp;after</title>
	</channel></rss>`
	f := parse(t, doc)

	got := f.Title()
	if got == "" {
		t.Fatal("Title() empty; an HTML entity killed the document")
	}
	if !strings.Contains(got, "Before") || !strings.Contains(got, "after") {
		t.Errorf("Title() = %q", got)
	}
}

func TestFeed_Latin1DocumentDecodesOnce(t *testing.T) {
	raw := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><rss version="2.0"><channel><title>Caf`), 0xE9)
	raw = append(raw, []byte(` news</title></channel></rss>`)...)
	f := ParseFeed(raw, DefaultOptions())

	if got := f.Title(); got != "Café news" {
		t.Errorf("Title() = %q, want Café news", got)
	}
	if got := f.Charset(); got != "iso-8859-1" {
		t.Errorf("Charset() = %q", got)
	}
}

func TestFeed_BasicFields(t *testing.T) {
	f := parse(t, rss2Doc)

	if got := f.Title(); got != "Example News" {
		t.Errorf("Title() = %q, want collapsed whitespace", got)
	}
	if got := f.Link(); got != "http://example.com/" {
		t.Errorf("Link() = %q", got)
	}
	if got := f.Subtitle(); got != "News from example.com" {
		t.Errorf("Subtitle() = %q", got)
	}
	if got := f.Language(); got != "en-us" {
		t.Errorf("Language() = %q", got)
	}

	author := f.Author()
	if author == nil {
		t.Fatal("Author() = nil")
	}
	if author.Name != "Ed Itor" || author.Email != "editor@example.com" {
		t.Errorf("Author() = %+v", author)
	}
}

func TestFeed_MalformedInputYieldsAbsentFields(t *testing.T) {
	f := parse(t, "this is not xml at all")

	if got := f.Title(); got != "" {
		t.Errorf("Title() = %q, want absent", got)
	}
	if got := f.Entries(); len(got) != 0 {
		t.Errorf("Entries() returned %d items from garbage", len(got))
	}

	f = parse(t, "")
	if got := f.Type(); got != "" {
		t.Errorf("Type() = %q on empty input", got)
	}
}

func TestFeed_SelfLinkNeverBecomesWebsiteLink(t *testing.T) {
	doc := `<feed xmlns="http://www.w3.org/2005/Atom">
	  <title>t</title>
	  <link rel="self" href="http://example.com/feed.xml"/>
	  <link rel="alternate" href="http://example.com/"/>
	</feed>`
	f := parse(t, doc)

	if got := f.Link(); got != "http://example.com/" {
		t.Errorf("Link() = %q, want the alternate, not the self link", got)
	}
}

func TestFeed_URLSelfHealsFromSelfLink(t *testing.T) {
	doc := `<feed xmlns="http://www.w3.org/2005/Atom">
	  <title>t</title>
	  <link rel="self" href="http://example.com/feed.xml"/>
	  <link rel="alternate" href="http://example.com/"/>
	</feed>`
	f := parse(t, doc)

	if got := f.URL(); got != "http://example.com/feed.xml" {
		t.Errorf("URL() = %q, want derived self url", got)
	}

	// A healthy cached URL is never overwritten.
	f2 := parse(t, doc)
	f2.SetURL("http://mirror.example.org/feed.xml")
	if got := f2.URL(); got != "http://mirror.example.org/feed.xml" {
		t.Errorf("URL() = %q, want the retrieval url kept", got)
	}
}

func TestFeed_TTL(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want time.Duration
	}{
		{"rss ttl minutes", rss2Doc, 90 * time.Minute},
		{"ttl span hours",
			`<rss version="2.0"><channel><title>x</title><ttl span="hours">2</ttl></channel></rss>`,
			2 * time.Hour},
		{"floor applies",
			`<rss version="2.0"><channel><title>x</title><ttl>5</ttl></channel></rss>`,
			30 * time.Minute},
		{"default one hour",
			`<rss version="2.0"><channel><title>x</title></channel></rss>`,
			time.Hour},
		{"syndication module",
			`<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
			   xmlns:syn="http://purl.org/rss/1.0/modules/syndication/"
			   xmlns="http://purl.org/rss/1.0/">
			 <channel rdf:about="http://example.com/">
			   <title>x</title>
			   <syn:updatePeriod>daily</syn:updatePeriod>
			   <syn:updateFrequency>4</syn:updateFrequency>
			 </channel>
			</rdf:RDF>`,
			6 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parse(t, tt.doc).TTL(); got != tt.want {
				t.Errorf("TTL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeed_TTLCappedByMaxTTL(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxTTL = time.Hour
	f := ParseFeed([]byte(rss2Doc), opts)

	if got := f.TTL(); got != time.Hour {
		t.Errorf("TTL() = %v, want capped at %v", got, time.Hour)
	}
}

func TestFeed_EntriesNewestFirst(t *testing.T) {
	f := parse(t, rss2Doc)
	entries := f.Entries()

	if len(entries) != 2 {
		t.Fatalf("Entries() = %d items, want 2", len(entries))
	}
	if entries[0].Title() != "Second post" || entries[1].Title() != "First post" {
		t.Errorf("entries out of order: %q, %q", entries[0].Title(), entries[1].Title())
	}
}

func TestItem_TimestampEstimation(t *testing.T) {
	// Newest-first document: dated, undated, dated ten seconds older.
	base := time.Date(2003, 6, 10, 9, 0, 0, 0, time.UTC)
	doc := `<rss version="2.0"><channel><title>x</title>
	  <item><title>newest</title><pubDate>` + base.Format(time.RFC1123Z) + `</pubDate></item>
	  <item><title>middle</title></item>
	  <item><title>oldest</title><pubDate>` + base.Add(-10*time.Second).Format(time.RFC1123Z) + `</pubDate></item>
	</channel></rss>`

	f := parse(t, doc)
	var middle *Item
	for _, it := range f.Entries() {
		if it.Title() == "middle" {
			middle = it
		}
	}
	if middle == nil {
		t.Fatal("middle entry not found")
	}

	got := middle.Time()
	if got == nil {
		t.Fatal("Time() = nil, want an estimate")
	}
	if got.Before(base.Add(-10*time.Second)) || got.After(base) {
		t.Errorf("estimated time %v outside [%v, %v]", got, base.Add(-10*time.Second), base)
	}
}

func TestItem_EstimationDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.TimestampEstimationEnabled = false
	doc := `<rss version="2.0"><channel><title>x</title>
	  <item><title>undated</title></item>
	</channel></rss>`
	f := ParseFeed([]byte(doc), opts)

	if got := f.Entries()[0].Time(); got != nil {
		t.Errorf("Time() = %v with estimation disabled, want nil", got)
	}
}

func TestItem_TitleAsDateHeuristic(t *testing.T) {
	doc := `<rss version="2.0"><channel><title>x</title>
	  <item><title>2003-06-10</title><link>http://example.com/daily</link></item>
	</channel></rss>`
	f := parse(t, doc)

	it := f.Entries()[0]
	got, ok := it.explicitTime()
	if !ok {
		t.Fatal("title-as-date heuristic did not fire")
	}
	if got.Year() != 2003 || got.Month() != time.June || got.Day() != 10 {
		t.Errorf("explicitTime() = %v, want 2003-06-10", got)
	}
}

func TestItem_EnclosureMergeByURL(t *testing.T) {
	doc := `<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
	<channel><title>x</title>
	  <item>
	    <title>episode</title>
	    <enclosure url="http://example.com/ep.mp3" length="1234" type="audio/mpeg"/>
	    <media:content url="http://example.com/ep.mp3" duration="600"/>
	  </item>
	</channel></rss>`
	f := parse(t, doc)

	encs := f.Entries()[0].Enclosures()
	if len(encs) != 1 {
		t.Fatalf("Enclosures() = %d, want the two sources merged into 1", len(encs))
	}
	if size, ok := encs[0].Size(); !ok || size != 1234 {
		t.Errorf("Size() = %d, %v", size, ok)
	}
	if secs, ok := encs[0].DurationSeconds(); !ok || secs != 600 {
		t.Errorf("DurationSeconds() = %d, %v", secs, ok)
	}
}

func TestItem_MediaGroupDefaultAndVersions(t *testing.T) {
	doc := `<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
	<channel><title>x</title>
	  <item>
	    <title>video</title>
	    <media:group>
	      <media:content url="http://example.com/v.flv" type="video/x-flv"/>
	      <media:content url="http://example.com/v.mp4" type="video/mp4" isDefault="true"/>
	    </media:group>
	  </item>
	</channel></rss>`
	f := parse(t, doc)

	encs := f.Entries()[0].Enclosures()
	if len(encs) != 1 {
		t.Fatalf("Enclosures() = %d, want the group collapsed to its default", len(encs))
	}
	def := encs[0]
	if def.URL != "http://example.com/v.mp4" || !def.IsDefault {
		t.Errorf("default enclosure = %+v", def)
	}
	if len(def.Versions) != 1 || def.Versions[0].URL != "http://example.com/v.flv" {
		t.Fatalf("Versions = %+v", def.Versions)
	}
	if def.Versions[0].DefaultVersion != def {
		t.Error("version does not point back at the default")
	}
}

func TestItem_MediaGroupExplicitInherited(t *testing.T) {
	doc := `<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
	<channel><title>x</title>
	  <item>
	    <title>video</title>
	    <media:group>
	      <media:adult>true</media:adult>
	      <media:content url="http://example.com/v.mp4" type="video/mp4"/>
	    </media:group>
	  </item>
	</channel></rss>`
	f := parse(t, doc)

	encs := f.Entries()[0].Enclosures()
	if len(encs) != 1 {
		t.Fatalf("Enclosures() = %d", len(encs))
	}
	if !encs[0].Explicit {
		t.Error("group-level adult flag not inherited by the content element")
	}
}

func TestItem_MediaContentExplicitOverridesGroup(t *testing.T) {
	doc := `<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/"
	       xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
	<channel><title>x</title>
	  <item>
	    <title>video</title>
	    <media:group>
	      <media:adult>true</media:adult>
	      <media:content url="http://example.com/v.mp4" type="video/mp4">
	        <itunes:explicit>clean</itunes:explicit>
	      </media:content>
	    </media:group>
	  </item>
	</channel></rss>`
	f := parse(t, doc)

	encs := f.Entries()[0].Enclosures()
	if len(encs) != 1 {
		t.Fatalf("Enclosures() = %d", len(encs))
	}
	if encs[0].Explicit {
		t.Error("content-level clean marking should beat the group flag")
	}
}

func TestItem_ExplicitOrsWithFeed(t *testing.T) {
	doc := `<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
	<channel><title>x</title>
	  <itunes:explicit>yes</itunes:explicit>
	  <item><title>marked clean</title><itunes:explicit>clean</itunes:explicit></item>
	  <item><title>unmarked</title></item>
	  <item><title>marked explicit</title><itunes:explicit>yes</itunes:explicit></item>
	</channel></rss>`
	f := parse(t, doc)

	for _, e := range f.Entries() {
		if !e.Explicit() {
			t.Errorf("%q: Explicit() = false inside an explicit feed", e.Title())
		}
	}
}

func TestItem_ExplicitFalseWhenNeitherMarked(t *testing.T) {
	doc := `<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
	<channel><title>x</title>
	  <item><title>t</title><itunes:explicit>clean</itunes:explicit></item>
	</channel></rss>`
	f := parse(t, doc)

	if f.Entries()[0].Explicit() {
		t.Error("clean item in a non-explicit feed reported explicit")
	}
}

func TestItem_LoneEnclosureInheritsItunesDuration(t *testing.T) {
	doc := `<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
	<channel><title>x</title>
	  <item>
	    <title>ep</title>
	    <enclosure url="http://example.com/ep.mp3" length="9" type="audio/mpeg"/>
	    <itunes:duration>1:02:03</itunes:duration>
	  </item>
	</channel></rss>`
	f := parse(t, doc)

	encs := f.Entries()[0].Enclosures()
	if len(encs) != 1 {
		t.Fatalf("Enclosures() = %d", len(encs))
	}
	if secs, ok := encs[0].DurationSeconds(); !ok || secs != 3723 {
		t.Errorf("DurationSeconds() = %d, want 3723", secs)
	}
}

func TestItem_Tags(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"categories",
			`<rss version="2.0"><channel><title>x</title>
			  <item><title>t</title><category>Go</category><category>go</category><category>Feeds</category></item>
			</channel></rss>`,
			[]string{"go", "feeds"}},
		{"itunes keywords comma",
			`<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"><channel><title>x</title>
			  <item><title>t</title><itunes:keywords>alpha, beta gamma, delta</itunes:keywords></item>
			</channel></rss>`,
			[]string{"alpha", "beta gamma", "delta"}},
		{"itunes keywords spaces",
			`<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"><channel><title>x</title>
			  <item><title>t</title><itunes:keywords>alpha beta gamma</itunes:keywords></item>
			</channel></rss>`,
			[]string{"alpha", "beta", "gamma"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, tt.doc).Entries()[0].Tags()
			if len(got) != len(tt.want) {
				t.Fatalf("Tags() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tags()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestItem_GuidAsLink(t *testing.T) {
	doc := `<rss version="2.0"><channel><title>x</title>
	  <item><title>t</title><guid>http://example.com/permalink</guid></item>
	</channel></rss>`
	f := parse(t, doc)

	if got := f.Entries()[0].Link(); got != "http://example.com/permalink" {
		t.Errorf("Link() = %q, want the permalink guid", got)
	}
}

func TestItem_StripCommentCount(t *testing.T) {
	opts := DefaultOptions()
	opts.StripCommentCount = true
	doc := `<rss version="2.0"><channel><title>x</title>
	  <item><title>Great post (42)</title><link>http://example.com/p</link></item>
	</channel></rss>`
	f := ParseFeed([]byte(doc), opts)

	if got := f.Entries()[0].Title(); got != "Great post" {
		t.Errorf("Title() = %q, want counter stripped", got)
	}
}

func TestFeed_ExpandTabsOption(t *testing.T) {
	opts := DefaultOptions()
	opts.ExpandTabs = true
	doc := "<rss version=\"2.0\"><channel><title>a\tb</title></channel></rss>"
	f := ParseFeed([]byte(doc), opts)

	if got := f.Title(); strings.ContainsRune(got, '\t') {
		t.Errorf("Title() = %q, tabs not expanded", got)
	}
}

func TestOptionsFromMap_ExpandTabs(t *testing.T) {
	opts, err := OptionsFromMap(map[string]interface{}{"expand_tabs": true})
	if err != nil {
		t.Fatalf("OptionsFromMap failed: %v", err)
	}
	if !opts.ExpandTabs {
		t.Error("expand_tabs not applied")
	}
}

func TestOptionsFromMap_RejectsUnknownKey(t *testing.T) {
	_, err := OptionsFromMap(map[string]interface{}{"no_such_option": true})
	if !coreerrors.IsContract(err) {
		t.Errorf("OptionsFromMap error = %v, want contract violation", err)
	}
}

func TestParsePersonString(t *testing.T) {
	tests := []struct {
		in    string
		name  string
		email string
	}{
		{"John Doe <john@example.com>", "John Doe", "john@example.com"},
		{"john@example.com (John Doe)", "John Doe", "john@example.com"},
		{"John Doe (john@example.com)", "John Doe", "john@example.com"},
		{"john@example.com", "", "john@example.com"},
		{"John Doe", "John Doe", ""},
	}
	for _, tt := range tests {
		got := parsePersonString(tt.in)
		if got == nil {
			t.Fatalf("parsePersonString(%q) = nil", tt.in)
		}
		if got.Name != tt.name || got.Email != tt.email {
			t.Errorf("parsePersonString(%q) = %+v, want name=%q email=%q",
				tt.in, got, tt.name, tt.email)
		}
	}
}

func TestRender_RSS10RequiresItemLinks(t *testing.T) {
	doc := `<rss version="2.0"><channel><title>x</title><link>http://example.com/</link>
	  <item><title>linkless</title><description>d</description></item>
	</channel></rss>`
	f := parse(t, doc)

	_, err := f.Render("rss_1.0")
	if !coreerrors.IsContract(err) {
		t.Errorf("Render(rss_1.0) error = %v, want contract violation", err)
	}
}

func TestRender_Atom03Unsupported(t *testing.T) {
	f := parse(t, rss2Doc)

	_, err := f.Render("atom_0.3")
	if !coreerrors.IsContract(err) {
		t.Errorf("Render(atom_0.3) error = %v, want contract violation", err)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	f := parse(t, rss2Doc)

	_, err := f.Render("opml")
	if !coreerrors.IsContract(err) {
		t.Errorf("Render(opml) error = %v, want contract violation", err)
	}
}

func TestRender_RSS20RoundTrip(t *testing.T) {
	f := parse(t, rss2Doc)

	out, err := f.Render("rss_2.0")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	reparsed := parse(t, out)
	if got := reparsed.Title(); got != "Example News" {
		t.Errorf("round-trip Title() = %q", got)
	}
	entries := reparsed.Entries()
	if len(entries) != 2 {
		t.Fatalf("round-trip Entries() = %d", len(entries))
	}
	if entries[0].Title() != "Second post" {
		t.Errorf("round-trip entry order: %q", entries[0].Title())
	}
}

func TestRender_AtomDerivesTagURIs(t *testing.T) {
	f := parse(t, rss2Doc)

	out, err := f.Render("atom_1.0")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, `xmlns="http://www.w3.org/2005/Atom"`) {
		t.Error("output missing atom namespace")
	}
	// The first item's guid is not a URI, so both entries derive tag uris.
	if strings.Contains(out, "<id>post-2</id>") {
		t.Error("non-URI guid emitted verbatim as the atom id")
	}
	if !strings.Contains(out, "tag:example.com,2003-06-10:/2") {
		t.Errorf("tag uri for the guid-bearing entry missing:\n%s", out)
	}
	if !strings.Contains(out, "tag:example.com,2003-06-09:/1") {
		t.Errorf("derived tag uri missing from output:\n%s", out)
	}
}

func TestRender_AtomKeepsURIGuid(t *testing.T) {
	doc := `<rss version="2.0"><channel>
	  <title>x</title><link>http://example.com/</link>
	  <item>
	    <title>t</title>
	    <link>http://example.com/p</link>
	    <guid isPermaLink="false">http://example.com/posts/42</guid>
	    <pubDate>Mon, 09 Jun 2003 09:41:01 GMT</pubDate>
	  </item>
	</channel></rss>`
	f := parse(t, doc)

	out, err := f.Render("atom_1.0")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "<id>http://example.com/posts/42</id>") {
		t.Errorf("URI guid not used as the atom id:\n%s", out)
	}
}

func TestRender_EnclosureWithoutSizeOmittedWithComment(t *testing.T) {
	doc := `<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
	<channel><title>x</title><link>http://example.com/</link>
	  <item><title>t</title><link>http://example.com/p</link>
	    <media:content url="http://example.com/clip.mp4" type="video/mp4"/>
	  </item>
	</channel></rss>`
	f := parse(t, doc)

	out, err := f.Render("rss_2.0")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, `<enclosure`) {
		t.Errorf("sizeless enclosure rendered:\n%s", out)
	}
	if !strings.Contains(out, "omitted: no byte length") {
		t.Error("diagnostic comment missing for omitted enclosure")
	}
}

func TestFeed_Expired(t *testing.T) {
	f := parse(t, rss2Doc)
	if !f.Expired() {
		t.Error("never-retrieved feed should be expired")
	}

	f.SetLastRetrieved(time.Now())
	if f.Expired() {
		t.Error("freshly retrieved feed should not be expired")
	}

	f.SetLastRetrieved(time.Now().Add(-24 * time.Hour))
	if !f.Expired() {
		t.Error("day-old retrieval should be expired with a 90 minute ttl")
	}
}

func TestFeed_SetRawDataInvalidates(t *testing.T) {
	f := parse(t, rss2Doc)
	if got := f.Title(); got != "Example News" {
		t.Fatalf("Title() = %q", got)
	}

	f.SetRawData([]byte(`<rss version="2.0"><channel><title>Replaced</title></channel></rss>`), "")
	if got := f.Title(); got != "Replaced" {
		t.Errorf("Title() after SetRawData = %q, want recomputed", got)
	}
}

func TestFeed_Favicon(t *testing.T) {
	f := parse(t, rss2Doc)
	if got := f.Favicon(); got != "http://example.com/favicon.ico" {
		t.Errorf("Favicon() = %q", got)
	}

	doc := `<feed xmlns="http://www.w3.org/2005/Atom"><title>t</title>
	  <link rel="alternate" href="https://secure.example.com/"/></feed>`
	if got := parse(t, doc).Favicon(); got != "" {
		t.Errorf("Favicon() = %q for https link, want none", got)
	}
}

func TestFeed_CDFEntries(t *testing.T) {
	doc := `<CHANNEL HREF="http://example.com/">
	  <TITLE>CDF Channel</TITLE>
	  <ITEM HREF="http://example.com/page1"><TITLE>Page One</TITLE></ITEM>
	  <ITEM HREF="http://example.com/page2"><TITLE>Page Two</TITLE></ITEM>
	</CHANNEL>`
	f := parse(t, doc)

	if got := f.Link(); got != "http://example.com/" {
		t.Errorf("Link() = %q", got)
	}
	entries := f.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() = %d", len(entries))
	}
	links := map[string]bool{}
	for _, it := range entries {
		links[it.Link()] = true
	}
	if !links["http://example.com/page1"] || !links["http://example.com/page2"] {
		t.Errorf("cdf item links = %v", links)
	}
}
