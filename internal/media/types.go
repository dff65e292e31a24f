// Package media defines shared types for the pickleballtv application.
package media

// Stream is one playable rendition of the live broadcast.
type Stream struct {
	Name       string `json:"name"`                 // Quality name, e.g. "720p", "2500k", "live"
	URL        string `json:"url"`                  // Media playlist (m3u8) URL
	Bandwidth  uint32 `json:"bandwidth,omitempty"`  // Peak bits per second from EXT-X-STREAM-INF
	Resolution string `json:"resolution,omitempty"` // "WIDTHxHEIGHT"
	Codecs     string `json:"codecs,omitempty"`
}

// StreamSet maps a quality name to its stream. An empty set means nothing is
// live right now.
type StreamSet map[string]*Stream

// Len returns the number of distinct streams, ignoring synonyms that point at
// an already counted stream.
func (s StreamSet) Len() int {
	seen := make(map[*Stream]bool, len(s))
	for _, st := range s {
		seen[st] = true
	}
	return len(seen)
}
