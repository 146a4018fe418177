// Package content defines the canonical entities produced by the backend layer.
//
// Everything downstream of the normalizer deals exclusively in these types;
// raw provider payload shapes never escape the backend package.
package content

import "github.com/samber/mo"

// Art holds the optional artwork URLs of a catalog entity.
type Art struct {
	Poster string `json:"poster,omitempty"`
	Fanart string `json:"fanart,omitempty"`
	Thumb  string `json:"thumb,omitempty"`
}

// VideoItem is a single catalog entry.
//
// ID and Title are unconditionally present: raw records missing either are
// dropped during normalization and never reach this type.
type VideoItem struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Plot            string         `json:"plot"`
	Year            mo.Option[int] `json:"year"`
	DurationSeconds mo.Option[int] `json:"duration_seconds"`
	Art             Art            `json:"art"`
	IsMovie         bool           `json:"is_movie"`
	IsShow          bool           `json:"is_show"`
	IsPlayable      bool           `json:"is_playable"`
}

func (v VideoItem) String() string {
	return v.Title
}

// Rail is an ordered row of catalog entries, as shown on the home screen.
type Rail struct {
	Identifier  string            `json:"identifier"`
	Title       string            `json:"title"`
	ContentType string            `json:"content_type"`
	Items       []VideoItem       `json:"items"`
	NextCursor  mo.Option[string] `json:"next_cursor"`
}

func (r Rail) String() string {
	return r.Title
}

// Page is one page of a paginated rail or search fetch. The cursor is opaque
// and must be echoed back verbatim to request the next page.
type Page struct {
	Items      []VideoItem       `json:"items"`
	NextCursor mo.Option[string] `json:"next_cursor"`
}

// Playable carries everything needed to start playback of one item.
// StreamURL is mandatory; normalization fails rather than emit an empty one.
type Playable struct {
	StreamURL    string            `json:"stream_url"`
	ManifestType string            `json:"manifest_type"`
	LicenseKey   mo.Option[string] `json:"license_key"`
	Headers      map[string]string `json:"headers"`
	Metadata     map[string]any    `json:"metadata"`
}
