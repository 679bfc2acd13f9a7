package domain

import (
	"errors"
	"time"
)

// TrackID is the opaque identifier of a playable track on the source
// platform (the platform's video id). It keys the metadata cache and is
// passed verbatim to the extraction and catalog collaborators.
type TrackID string

type Image struct {
	URL string `json:"url"`
}

type Album struct {
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

type ArtistRef struct {
	Name string `json:"name"`
}

// Track is the catalog representation served to the client.
type Track struct {
	ID         TrackID     `json:"id"`
	Name       string      `json:"name"`
	Artists    []ArtistRef `json:"artists"`
	Album      Album       `json:"album"`
	DurationMs int64       `json:"duration_ms"`
}

// Artist is the formatted artist profile served to the client.
type Artist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Followers   string  `json:"followers"`
	Description string  `json:"description"`
	Songs       []Track `json:"songs"`
}

// AudioFormat describes one encoded rendition of a track. URL is the
// opaque handle the extractor needs to open a byte stream for this
// rendition later; it is only valid for a limited time upstream.
type AudioFormat struct {
	Itag          int    `json:"itag"`
	MimeType      string `json:"mimeType"`
	Bitrate       int    `json:"bitrate"`
	ContentLength int64  `json:"contentLength"`
	URL           string `json:"-"`
}

// MediaInfo is the raw extraction result for a track: every rendition
// the upstream offers plus the playback duration.
type MediaInfo struct {
	Formats       []AudioFormat
	LengthSeconds int64
}

// TrackInfo is the resolved, cacheable playback descriptor for a track.
// It is created whole on resolution and replaced whole when stale,
// never mutated in place.
type TrackInfo struct {
	Format        AudioFormat
	ContentLength int64
	LengthSeconds int64
	ResolvedAt    time.Time
}

// Validate checks domain invariants for TrackInfo.
func (i TrackInfo) Validate() error {
	if i.Format.URL == "" {
		return errors.New("format url is required")
	}
	if i.ContentLength < 0 {
		return errors.New("contentLength must not be negative")
	}
	if i.Format.ContentLength > 0 && i.ContentLength != i.Format.ContentLength {
		return errors.New("contentLength must match the selected format")
	}
	if i.LengthSeconds < 0 {
		return errors.New("lengthSeconds must not be negative")
	}
	return nil
}

// ByteRange is an inclusive byte window within a resource of known size.
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes covered by the range.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// Validate checks that the range is well formed against the given total size.
func (r ByteRange) Validate(size int64) error {
	if r.Start < 0 {
		return errors.New("range start must not be negative")
	}
	if r.End < r.Start {
		return errors.New("range end must not precede start")
	}
	if size > 0 && r.End >= size {
		return errors.New("range end exceeds resource size")
	}
	return nil
}

// LyricsResult is the lyrics lookup outcome. Source identifies the
// provider that answered ("lyrics.ovh"), or "not_found" when no
// provider had the text.
type LyricsResult struct {
	Lyrics string `json:"lyrics"`
	Source string `json:"source"`
	Err    string `json:"error,omitempty"`
}
