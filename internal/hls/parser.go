// Package hls turns an HLS manifest URL into a set of named streams.
package hls

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/grafov/m3u8"

	"pickleballtv/internal/httputil"
	"pickleballtv/internal/media"
	"pickleballtv/internal/metrics"
)

const acceptM3U8 = "application/vnd.apple.mpegurl, application/x-mpegURL;q=0.9, */*;q=0.5"

// VariantParser produces the stream set behind a manifest URL.
type VariantParser interface {
	ParseVariantPlaylist(ctx context.Context, manifestURL string) (media.StreamSet, error)
}

// Parser fetches manifests over HTTP and decodes them with grafov/m3u8.
type Parser struct {
	client *http.Client
}

// NewParser creates a Parser using client for manifest requests.
func NewParser(client *http.Client) *Parser {
	return &Parser{client: client}
}

// ParseVariantPlaylist fetches manifestURL. A master playlist yields one
// stream per variant plus "best"/"worst"; a media playlist yields "live".
func (p *Parser) ParseVariantPlaylist(ctx context.Context, manifestURL string) (media.StreamSet, error) {
	start := time.Now()
	set, err := p.parse(ctx, manifestURL)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.HLSFetchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	return set, err
}

func (p *Parser) parse(ctx context.Context, manifestURL string) (media.StreamSet, error) {
	base, err := url.Parse(manifestURL)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest URL: %w", err)
	}

	resp, err := httputil.GetMedia(ctx, p.client, manifestURL, acceptM3U8)
	if err != nil {
		return nil, fmt.Errorf("fetching manifest: %w", err)
	}
	defer resp.Body.Close()

	pl, listType, err := m3u8.DecodeFrom(bufio.NewReader(httputil.LimitBody(resp.Body)), true)
	if err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", manifestURL, err)
	}

	set := make(media.StreamSet)
	switch listType {
	case m3u8.MASTER:
		master := pl.(*m3u8.MasterPlaylist)
		for _, v := range master.Variants {
			if v == nil || v.Iframe || v.URI == "" {
				continue
			}
			ref, err := url.Parse(v.URI)
			if err != nil {
				continue
			}
			st := &media.Stream{
				URL:        base.ResolveReference(ref).String(),
				Bandwidth:  v.Bandwidth,
				Resolution: v.Resolution,
				Codecs:     v.Codecs,
			}
			st.Name = uniqueName(set, variantName(v))
			set[st.Name] = st
		}
		if len(set) == 0 {
			return nil, fmt.Errorf("master playlist %s has no playable variants", manifestURL)
		}
	case m3u8.MEDIA:
		set["live"] = &media.Stream{Name: "live", URL: manifestURL}
	default:
		return nil, fmt.Errorf("unknown playlist type in %s", manifestURL)
	}

	AddSynonyms(set)
	return set, nil
}
