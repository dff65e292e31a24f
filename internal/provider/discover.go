package provider

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pickleballtv/internal/httputil"
)

// jwAssetPattern captures the media id from JW Player asset URLs such as
// cdn.jwplayer.com/players/<media>-<player>.js or cdn.jwplayer.com/v2/media/<media>.
var jwAssetPattern = regexp.MustCompile(`cdn\.jwplayer\.com/(?:v2/media|players|previews|manifests)/([A-Za-z0-9]{8})`)

// DiscoverMediaID fetches pageURL and returns the JW Player media id embedded in it.
func DiscoverMediaID(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	resp, err := httputil.Get(ctx, client, pageURL, "")
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(httputil.LimitBody(resp.Body))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	id := parseMediaID(doc)
	if id == "" {
		return "", fmt.Errorf("no JW Player media id on %s", pageURL)
	}
	if err := httputil.ValidateID(id); err != nil {
		return "", fmt.Errorf("invalid media id: %w", err)
	}
	return id, nil
}

// parseMediaID looks for explicit data attributes first, then JW asset URLs.
// Uses DOM parsing so attribute values are never evaluated.
func parseMediaID(doc *goquery.Document) string {
	for _, attr := range []string{"data-mediaid", "data-media-id"} {
		if v, ok := doc.Find("[" + attr + "]").First().Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}

	var id string
	doc.Find(`script[src*="cdn.jwplayer.com"], iframe[src*="cdn.jwplayer.com"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := jwAssetPattern.FindStringSubmatch(s.AttrOr("src", "")); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	if id != "" {
		return id
	}

	// Inline player setup, e.g. jwplayer("x").setup({playlist: "https://cdn.jwplayer.com/v2/media/..."})
	doc.Find("script:not([src])").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := jwAssetPattern.FindStringSubmatch(s.Text()); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	return id
}
