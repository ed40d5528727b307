// SPDX-License-Identifier: EPL-2.0

package track

import (
	"strings"
	"time"
)

// Tag holds the metadata known about a track or a remote stream.
type Tag struct {
	Title    string
	Artist   string
	Album    string
	Name     string // stream name, e.g. the icy-name of an internet radio
	Track    int
	Duration time.Duration
}

// IsEmpty reports whether the tag carries no usable metadata.
func (t *Tag) IsEmpty() bool {
	if t == nil {
		return true
	}
	return t.Title == "" && t.Artist == "" && t.Album == "" && t.Name == "" &&
		t.Track == 0 && t.Duration == 0
}

// Track is a queued track reference: a locator plus whatever metadata is known.
type Track struct {
	URI string
	Tag *Tag
}

// New creates a track for uri without metadata.
func New(uri string) *Track {
	return &Track{URI: uri}
}

// IsFile reports whether the track refers to a local file rather than a
// remote stream. URIs without a scheme and file:// URIs are local.
func (t *Track) IsFile() bool {
	return !HasScheme(t.URI) || strings.HasPrefix(t.URI, fileScheme)
}

func (t *Track) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Tag != nil && t.Tag.Title != "" {
		return t.Tag.Title + " (" + t.URI + ")"
	}
	return t.URI
}
