// Package jwplayer decodes and validates JW Player delivery API media feeds
// (https://cdn.jwplayer.com/v2/media/<id>).
package jwplayer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"pickleballtv/internal/httputil"
)

// DeliveryBase is the JW Player delivery API media endpoint prefix.
const DeliveryBase = "https://cdn.jwplayer.com/v2/media"

// ManifestSuffix is the required path suffix of every source file.
const ManifestSuffix = ".m3u8"

// MediaURL returns the delivery API URL for a media id.
func MediaURL(mediaID string) string {
	return httputil.BuildURL(DeliveryBase, mediaID)
}

// Feed is a validated media feed. Items is never empty.
type Feed struct {
	Title          string
	FeedInstanceID string
	Items          []Item
}

// Item is one playlist entry. Sources is never empty.
type Item struct {
	MediaID     string
	Title       string
	Description string
	Image       string
	Sources     []Source
}

// Source is one rendition of an item. File is either empty or an absolute
// http(s) URL whose path ends in ".m3u8".
type Source struct {
	File   string
	Type   string
	Label  string
	Width  int
	Height int
}

// object is one decoded JSON mapping. Keys are looked up exactly;
// encoding/json's case-insensitive struct matching is not used for the
// required keys.
type object map[string]json.RawMessage

// field pairs an optional key with its destination.
type field struct {
	key string
	dst any
}

// Decode parses body and validates it. It returns *ParseError for malformed
// JSON and *SchemaError for JSON of the wrong shape.
func Decode(body []byte) (*Feed, error) {
	var root json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, &ParseError{Err: err}
	}
	obj, err := decodeObject("", root)
	if err != nil {
		return nil, err
	}
	return newFeed(obj)
}

// ManifestURL returns playlist[0].sources[0].file. Empty means no stream.
func (f *Feed) ManifestURL() string {
	return f.Items[0].Sources[0].File
}

func newFeed(obj object) (*Feed, error) {
	items, err := requireSequence(obj, "playlist", "playlist")
	if err != nil {
		return nil, err
	}

	feed := &Feed{Items: make([]Item, 0, len(items))}
	if err := optional(obj, "title", "", &feed.Title); err != nil {
		return nil, err
	}
	if err := optional(obj, "feed_instance_id", "", &feed.FeedInstanceID); err != nil {
		return nil, err
	}

	for i, raw := range items {
		path := fmt.Sprintf("playlist[%d]", i)
		itemObj, err := decodeObject(path, raw)
		if err != nil {
			return nil, err
		}
		item, err := newItem(path, itemObj)
		if err != nil {
			return nil, err
		}
		feed.Items = append(feed.Items, item)
	}
	return feed, nil
}

func newItem(path string, obj object) (Item, error) {
	sources, err := requireSequence(obj, "sources", path+".sources")
	if err != nil {
		return Item{}, err
	}

	item := Item{Sources: make([]Source, 0, len(sources))}
	for _, f := range []field{
		{"mediaid", &item.MediaID},
		{"title", &item.Title},
		{"description", &item.Description},
		{"image", &item.Image},
	} {
		if err := optional(obj, f.key, path, f.dst); err != nil {
			return Item{}, err
		}
	}

	for i, raw := range sources {
		srcPath := fmt.Sprintf("%s.sources[%d]", path, i)
		srcObj, err := decodeObject(srcPath, raw)
		if err != nil {
			return Item{}, err
		}
		src, err := newSource(srcPath, srcObj)
		if err != nil {
			return Item{}, err
		}
		item.Sources = append(item.Sources, src)
	}
	return item, nil
}

func newSource(path string, obj object) (Source, error) {
	filePath := path + ".file"
	raw, ok := obj["file"]
	if !ok {
		return Source{}, schemaErrorf(filePath, "key missing")
	}

	var src Source
	if err := json.Unmarshal(raw, &src.File); err != nil || isNull(raw) {
		return Source{}, schemaErrorf(filePath, "expected string, got %s", kind(raw))
	}
	if src.File != "" {
		if err := validateManifestURL(src.File); err != nil {
			return Source{}, &SchemaError{Path: filePath, Reason: err.Error()}
		}
	}

	for _, f := range []field{
		{"type", &src.Type},
		{"label", &src.Label},
		{"width", &src.Width},
		{"height", &src.Height},
	} {
		if err := optional(obj, f.key, path, f.dst); err != nil {
			return Source{}, err
		}
	}
	return src, nil
}

// decodeObject requires raw to be a JSON mapping.
func decodeObject(path string, raw json.RawMessage) (object, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, schemaErrorf(path, "expected mapping, got %s", kind(raw))
	}
	return obj, nil
}

// requireSequence looks key up exactly and requires a non-empty JSON array.
func requireSequence(obj object, key, path string) ([]json.RawMessage, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, schemaErrorf(path, "key missing")
	}
	var seq []json.RawMessage
	if err := json.Unmarshal(raw, &seq); err != nil || seq == nil {
		return nil, schemaErrorf(path, "expected sequence, got %s", kind(raw))
	}
	if len(seq) == 0 {
		return nil, schemaErrorf(path, "sequence is empty")
	}
	return seq, nil
}

// optional decodes obj[key] into dst when present and not null.
func optional(obj object, key, path string, dst any) error {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if path != "" {
			path += "."
		}
		return &SchemaError{Path: path + key, Reason: fmt.Sprintf("unexpected %s", kind(raw)), Err: err}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// kind names the JSON type of raw for error messages.
func kind(raw json.RawMessage) string {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return "nothing"
	}
	switch b[0] {
	case '{':
		return "mapping"
	case '[':
		return "sequence"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// validateManifestURL requires an absolute http(s) URL with a path ending in
// ManifestSuffix.
func validateManifestURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	if !strings.HasSuffix(u.Path, ManifestSuffix) {
		return fmt.Errorf("%q does not end with %s", raw, ManifestSuffix)
	}
	return nil
}
