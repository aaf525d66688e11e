// ABOUTME: Item domain model represents an individual entry within a feed
// ABOUTME: Mirrors the feed-level fields plus entry-specific content and media

package domain

import "time"

// Item represents an individual item/entry in a feed
type Item struct {
	// ID is the unique identifier for the item (guid or atom id)
	ID string

	// Title is the item's headline
	Title string

	// Link is the URL to the full article
	Link string

	// Content is the item's full content (sanitized HTML)
	Content string

	// Summary is the item's summary or description (sanitized HTML)
	Summary string

	Copyright string
	Comments  string
	Explicit  bool

	Author    *Person
	Publisher *Person

	Categories []Category
	Images     []Image

	// Tags are lower-cased, deduplicated subject strings
	Tags []string

	// Enclosures are the item's media attachments after group merging
	Enclosures []Enclosure

	// Published is the initial publication timestamp, if any
	Published *time.Time

	// Updated is the last-modification timestamp, if any
	Updated *time.Time

	// Time is the best-guess timestamp used for ordering. It may be
	// estimated from sibling entries when no explicit value parsed.
	Time *time.Time
}

// IsValid checks if the feed item has the fields a reader can render
func (it *Item) IsValid() bool {
	if it.Title == "" && it.Summary == "" && it.Content == "" {
		return false
	}
	return true
}
