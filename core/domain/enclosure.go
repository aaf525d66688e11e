// ABOUTME: Enclosure domain model represents a media attachment on a feed item
// ABOUTME: Carries media-rss group metadata including alternate versions

package domain

import "time"

// Enclosure represents one media attachment. Numeric fields use zero to
// mean absent; the accessor methods normalize that to an explicit ok flag.
type Enclosure struct {
	URL  string
	Type string

	FileSize  int64
	Duration  time.Duration
	Height    int
	Width     int
	Bitrate   int
	Framerate int

	Thumbnail  *Image
	Categories []Category
	Hash       *EnclosureHash
	Player     *EnclosurePlayer
	Credits    []EnclosureCredit
	Text       string

	Explicit bool

	// Expression is "sample", "full", or "nonstop"
	Expression string

	// IsDefault marks the preferred version within a media group
	IsDefault bool

	// DefaultVersion points at the group's default enclosure (may be
	// the receiver itself). Nil outside media groups.
	DefaultVersion *Enclosure

	// Versions lists the alternate representations from the same media
	// group, excluding the receiver.
	Versions []*Enclosure
}

// EnclosureHash represents a content hash for an enclosure
type EnclosureHash struct {
	Algorithm string
	Value     string
}

// EnclosurePlayer represents an external player reference
type EnclosurePlayer struct {
	URL    string
	Height int
	Width  int
}

// EnclosureCredit represents an attribution on a media object
type EnclosureCredit struct {
	Role string
	Name string
}

// Size returns the file size in bytes, with ok false when absent
func (e *Enclosure) Size() (int64, bool) {
	if e.FileSize <= 0 {
		return 0, false
	}
	return e.FileSize, true
}

// Dimensions returns height and width, with ok false when either is absent
func (e *Enclosure) Dimensions() (height, width int, ok bool) {
	if e.Height <= 0 || e.Width <= 0 {
		return 0, 0, false
	}
	return e.Height, e.Width, true
}

// DurationSeconds returns the play length in seconds, with ok false when absent
func (e *Enclosure) DurationSeconds() (int, bool) {
	if e.Duration <= 0 {
		return 0, false
	}
	return int(e.Duration / time.Second), true
}

// IsAudio reports whether the MIME type is an audio type
func (e *Enclosure) IsAudio() bool {
	return hasMediaPrefix(e.Type, "audio/")
}

// IsVideo reports whether the MIME type is a video type
func (e *Enclosure) IsVideo() bool {
	return hasMediaPrefix(e.Type, "video/")
}

// IsImage reports whether the MIME type is an image type
func (e *Enclosure) IsImage() bool {
	return hasMediaPrefix(e.Type, "image/")
}

func hasMediaPrefix(mimeType, prefix string) bool {
	return len(mimeType) >= len(prefix) && mimeType[:len(prefix)] == prefix
}
