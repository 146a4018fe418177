package backend

import (
	"strconv"
	"strings"

	"github.com/primeflix-cli/primeflix/content"
	"github.com/primeflix-cli/primeflix/log"
	"github.com/samber/mo"
)

// Field synonym tables. Provider payload shapes vary between extension
// versions; for each canonical field the first present non-null raw key wins.
var (
	idKeys       = []string{"asin", "id", "content_id", "contentId", "identifier"}
	titleKeys    = []string{"title", "name", "label"}
	plotKeys     = []string{"plot", "synopsis", "description", "overview"}
	yearKeys     = []string{"year", "release_year", "releaseYear"}
	durationKeys = []string{"duration_seconds", "runtime_seconds", "runtime", "duration"}

	posterKeys = []string{"poster", "cover", "image"}
	fanartKeys = []string{"fanart", "banner", "background"}
	thumbKeys  = []string{"thumb", "thumbnail", "icon"}

	railIDKeys      = []string{"id", "rail_id", "identifier"}
	contentTypeKeys = []string{"content_type", "contentType", "kind"}
	cursorKeys      = []string{"next_cursor", "nextPageCursor", "cursor", "next"}

	streamURLKeys  = []string{"stream_url", "manifest_url", "manifestUrl", "mainManifestUrl", "url"}
	manifestKeys   = []string{"manifest_type", "manifestType", "stream_type"}
	licenseKeys    = []string{"license_key", "license_url", "licenseUrl"}
	railsListKeys  = []string{"rails", "widgets", "data"}
	itemsListKeys  = []string{"items", "entries", "results"}
	playableIsKeys = []string{"is_playable", "playable"}
)

// NormalizeRails maps a raw home payload into canonical rails. Rails lacking
// an identifier or title are dropped.
func NormalizeRails(raw any) []content.Rail {
	rails := make([]content.Rail, 0)
	for _, entry := range listFromPayload(raw, railsListKeys) {
		m, ok := asMap(entry)
		if !ok {
			continue
		}
		// Widget envelopes interleave rails with promotional tiles.
		if kind, ok := m["type"].(string); ok && strings.Contains(kind, "Widget") && kind != "RailWidget" {
			continue
		}

		id := coalesceString(m, railIDKeys)
		title := coalesceString(m, titleKeys)
		if id == "" || title == "" {
			log.Debugf("normalize: dropping rail without id/title: %v", m)
			continue
		}

		contentType := coalesceString(m, contentTypeKeys)
		if contentType == "" {
			contentType = "mixed"
		}

		rails = append(rails, content.Rail{
			Identifier:  id,
			Title:       title,
			ContentType: contentType,
			Items:       NormalizeItems(m[firstPresent(m, itemsListKeys)]),
			NextCursor:  coalesceCursor(m),
		})
	}
	return rails
}

// NormalizePage maps a raw rail or search payload into one canonical page.
func NormalizePage(raw any) content.Page {
	page := content.Page{Items: NormalizeItems(raw)}
	if m, ok := asMap(raw); ok {
		page.Items = NormalizeItems(m[firstPresent(m, itemsListKeys)])
		page.NextCursor = coalesceCursor(m)
	}
	return page
}

// NormalizeItems maps a raw list into canonical items, silently dropping
// records that fail the id+title contract.
func NormalizeItems(raw any) []content.VideoItem {
	items := make([]content.VideoItem, 0)
	for _, entry := range listFromPayload(raw, itemsListKeys) {
		m, ok := asMap(entry)
		if !ok {
			continue
		}
		if item, ok := NormalizeItem(m).Get(); ok {
			items = append(items, item)
		}
	}
	return items
}

// NormalizeItem maps one raw record into a canonical item. Records missing an
// id or a title yield None: partial entities never escape the normalizer.
func NormalizeItem(raw map[string]any) mo.Option[content.VideoItem] {
	id := coalesceString(raw, idKeys)
	title := coalesceString(raw, titleKeys)
	if id == "" || title == "" {
		log.Debugf("normalize: dropping item without id/title: %v", raw)
		return mo.None[content.VideoItem]()
	}

	contentType := strings.ToLower(coalesceString(raw, contentTypeKeys))
	isMovie := boolField(raw, "is_movie") || contentType == "movie" || contentType == "film"
	isShow := boolField(raw, "is_show") || contentType == "show" || contentType == "series" || contentType == "tv"

	isPlayable := isMovie || contentType == "episode"
	for _, k := range playableIsKeys {
		if v, ok := raw[k].(bool); ok {
			isPlayable = v
			break
		}
	}

	return mo.Some(content.VideoItem{
		ID:              id,
		Title:           title,
		Plot:            coalesceString(raw, plotKeys),
		Year:            coalesceInt(raw, yearKeys),
		DurationSeconds: coalesceInt(raw, durationKeys),
		Art:             normalizeArt(raw),
		IsMovie:         isMovie,
		IsShow:          isShow,
		IsPlayable:      isPlayable,
	})
}

// NormalizePlayable maps a raw playback payload. A payload without any
// recognized stream URL synonym is a hard error, never an empty result.
func NormalizePlayable(raw any) (content.Playable, error) {
	m, ok := asMap(raw)
	if !ok {
		return content.Playable{}, opErrorf("playable", "payload is not a map: %T", raw)
	}

	url := coalesceString(m, streamURLKeys)
	if url == "" {
		return content.Playable{}, opErrorf("playable", "payload carries no stream URL")
	}

	manifestType := coalesceString(m, manifestKeys)
	if manifestType == "" {
		manifestType = "mpd"
	}

	license := mo.None[string]()
	if l := coalesceString(m, licenseKeys); l != "" {
		license = mo.Some(l)
	}

	headers := make(map[string]string)
	if rawHeaders, ok := asMap(m["headers"]); ok {
		for k, v := range rawHeaders {
			if s, ok := v.(string); ok {
				headers[k] = s
			}
		}
	}

	metadata, _ := asMap(m["metadata"])
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return content.Playable{
		StreamURL:    url,
		ManifestType: manifestType,
		LicenseKey:   license,
		Headers:      headers,
		Metadata:     metadata,
	}, nil
}

func normalizeArt(raw map[string]any) content.Art {
	// Artwork may come nested under "art" or flattened at the top level.
	source := raw
	if nested, ok := asMap(raw["art"]); ok {
		merged := make(map[string]any, len(raw)+len(nested))
		for k, v := range raw {
			merged[k] = v
		}
		for k, v := range nested {
			merged[k] = v
		}
		source = merged
	}

	return content.Art{
		Poster: coalesceString(source, posterKeys),
		Fanart: coalesceString(source, fanartKeys),
		Thumb:  coalesceString(source, thumbKeys),
	}
}

// Coalescing helpers

// coalesceString returns the first present non-empty value among keys.
// Nested localized values of the form {"default": "..."} are unwrapped.
func coalesceString(m map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if s, ok := v["default"].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// coalesceInt defensively coerces the first present value among keys; values
// that cannot be interpreted as a number yield None, never an error.
func coalesceInt(m map[string]any, keys []string) mo.Option[int] {
	for _, k := range keys {
		v, present := m[k]
		if !present || v == nil {
			continue
		}

		switch value := v.(type) {
		case float64:
			return mo.Some(int(value))
		case int:
			return mo.Some(value)
		case string:
			if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				return mo.Some(parsed)
			}
		}
		return mo.None[int]()
	}
	return mo.None[int]()
}

func coalesceCursor(m map[string]any) mo.Option[string] {
	for _, k := range cursorKeys {
		if s, ok := m[k].(string); ok && s != "" {
			return mo.Some(s)
		}
	}
	return mo.None[string]()
}

func boolField(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func firstPresent(m map[string]any, keys []string) string {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return k
		}
	}
	return keys[0]
}

// listFromPayload extracts a raw list either directly or from the first
// present envelope key.
func listFromPayload(raw any, envelopeKeys []string) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		if list, ok := v[firstPresent(v, envelopeKeys)].([]any); ok {
			return list
		}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
