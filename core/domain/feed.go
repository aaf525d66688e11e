// ABOUTME: Feed domain model represents the canonical form of a parsed syndication feed
// ABOUTME: Plain records with no parsing state, safe to serialize and cache

package domain

import (
	"errors"
	"net/url"
	"time"
)

// Feed is the canonical, fully-resolved form of one syndication feed.
// Every field has already been through liberal extraction and repair;
// absent values are zero values (or nil pointers for timestamps).
type Feed struct {
	// ID is the feed's unique identifier (atom id, guid, or synthesized)
	ID string

	// Title is the human-readable title of the feed
	Title string

	// Subtitle is the feed subtitle, tagline, or description
	Subtitle string

	// URL is the feed's own source URL (the RSS/Atom document URL)
	URL string

	// Link is the website URL associated with the feed
	Link string

	// Type is the detected feed family: "atom", "rss", "cdf", or ""
	Type string

	// Version is the detected format version (e.g. 1.0, 2.0, 0.3)
	Version float64

	// Items contains the feed entries, newest first
	Items []Item

	Copyright string
	Language  string
	Generator string
	Docs      string
	Explicit  bool

	Author    *Person
	Publisher *Person

	Categories []Category
	Images     []Image
	TextInput  *TextInput
	Cloud      *Cloud

	// TTL is the time-to-live between refreshes, floored at 30 minutes
	TTL time.Duration

	// Updated is the feed-level timestamp, if any
	Updated *time.Time

	// LastRetrieved is when the raw document was last fetched
	LastRetrieved *time.Time
}

// Person represents author or publisher information
type Person struct {
	Name  string
	Email string
	Href  string
}

// Category represents a category or subject assignment
type Category struct {
	Term   string
	Scheme string
	Label  string
}

// Image represents a feed or item image
type Image struct {
	URL         string
	Title       string
	Link        string
	Description string
	Height      int
	Width       int
	Style       string
}

// TextInput represents the rarely-used RSS textInput box
type TextInput struct {
	Title       string
	Description string
	Name        string
	Link        string
}

// Cloud represents the RSS cloud update-notification endpoint
type Cloud struct {
	Domain            string
	Port              string
	Path              string
	RegisterProcedure string
	Protocol          string
}

// Validate checks if the feed has valid required fields
func (f *Feed) Validate() error {
	if f.Title == "" {
		return errors.New("feed title cannot be empty")
	}

	if f.URL == "" {
		return errors.New("feed URL cannot be empty")
	}

	if _, err := url.Parse(f.URL); err != nil {
		return errors.New("feed URL is not valid format")
	}

	return nil
}
