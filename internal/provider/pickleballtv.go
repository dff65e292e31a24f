package provider

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"time"

	"pickleballtv/internal/hls"
	"pickleballtv/internal/httputil"
	"pickleballtv/internal/jwplayer"
	"pickleballtv/internal/media"
	"pickleballtv/internal/metrics"
)

const (
	// DefaultMediaID is the JW Player media id of the PickleballTV live channel.
	DefaultMediaID = "kqrvUq1X"

	// PageURL is the public site the channel is embedded on.
	PageURL = "https://pickleballtv.com"
)

var pickleballTVPattern = regexp.MustCompile(`^https?://(www\.)?pickleballtv\.com(/|$)`)

// PickleballTV resolves the pickleballtv.com live channel through the JW Player
// delivery API.
type PickleballTV struct {
	client   *http.Client
	parser   hls.VariantParser
	endpoint string
	page     string
	discover bool
	mediaID  string
	logger   *log.Logger
	debug    bool
}

// Option configures a PickleballTV provider.
type Option func(*PickleballTV)

// WithMediaID overrides the JW Player media id.
func WithMediaID(id string) Option {
	return func(p *PickleballTV) {
		p.mediaID = id
		p.endpoint = jwplayer.MediaURL(id)
	}
}

// WithEndpoint sets the full playlist endpoint URL.
func WithEndpoint(url string) Option {
	return func(p *PickleballTV) { p.endpoint = url }
}

// WithParser replaces the HLS variant parser.
func WithParser(parser hls.VariantParser) Option {
	return func(p *PickleballTV) { p.parser = parser }
}

// WithDiscovery makes each resolution look up the current media id on the
// site page before falling back to the configured one.
func WithDiscovery(enabled bool) Option {
	return func(p *PickleballTV) { p.discover = enabled }
}

// WithPageURL sets the page scraped when discovery is enabled.
func WithPageURL(url string) Option {
	return func(p *PickleballTV) { p.page = url }
}

// WithLogger sets the diagnostic logger. Debug lines are only written when
// debug is true.
func WithLogger(l *log.Logger, debug bool) Option {
	return func(p *PickleballTV) {
		p.logger = l
		p.debug = debug
	}
}

// NewPickleballTV creates the provider. client is used for every request.
func NewPickleballTV(client *http.Client, opts ...Option) *PickleballTV {
	p := &PickleballTV{
		client:   client,
		mediaID:  DefaultMediaID,
		endpoint: jwplayer.MediaURL(DefaultMediaID),
		page:     PageURL,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.parser == nil {
		p.parser = hls.NewParser(client)
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	return p
}

func (p *PickleballTV) Name() string { return "pickleballtv" }

func (p *PickleballTV) CanHandle(rawURL string) bool {
	return pickleballTVPattern.MatchString(rawURL)
}

// ResolveManifest fetches the playlist and returns playlist[0].sources[0].file.
// Errors are *httputil.NetworkError, *jwplayer.ParseError,
// *jwplayer.SchemaError or jwplayer.ErrNotFound.
func (p *PickleballTV) ResolveManifest(ctx context.Context) (string, error) {
	endpoint := p.playlistEndpoint(ctx)

	body, err := httputil.GetJSON(ctx, p.client, endpoint)
	if err != nil {
		return "", err
	}

	feed, err := jwplayer.Decode(body)
	if err != nil {
		return "", err
	}
	p.debugf("playlist: %+v", feed.Items)

	manifestURL := feed.ManifestURL()
	if manifestURL == "" {
		return "", jwplayer.ErrNotFound
	}

	p.logger.Printf("using manifest URL: %s", manifestURL)
	return manifestURL, nil
}

// Streams resolves the manifest and delegates to the HLS parser. A playlist
// without a manifest URL yields an empty set and no error.
func (p *PickleballTV) Streams(ctx context.Context) (media.StreamSet, error) {
	start := time.Now()

	manifestURL, err := p.ResolveManifest(ctx)
	if errors.Is(err, jwplayer.ErrNotFound) {
		p.logger.Printf("warning: could not find a manifest URL, stream is probably offline")
		metrics.ObserveResolution(metrics.OutcomeNotFound, start)
		return media.StreamSet{}, nil
	}
	if err != nil {
		metrics.ObserveResolution(outcomeOf(err), start)
		return nil, err
	}

	streams, err := p.parser.ParseVariantPlaylist(ctx, manifestURL)
	if err != nil {
		metrics.ObserveResolution(metrics.OutcomeHLSError, start)
		return nil, err
	}

	metrics.ObserveResolution(metrics.OutcomeOK, start)
	return streams, nil
}

func (p *PickleballTV) playlistEndpoint(ctx context.Context) string {
	if !p.discover {
		return p.endpoint
	}
	id, err := DiscoverMediaID(ctx, p.client, p.page)
	if err != nil {
		p.debugf("media id discovery failed, using %s: %v", p.mediaID, err)
		return p.endpoint
	}
	p.debugf("discovered media id: %s", id)
	return jwplayer.MediaURL(id)
}

func (p *PickleballTV) debugf(format string, args ...any) {
	if p.debug {
		p.logger.Printf(format, args...)
	}
}

func outcomeOf(err error) string {
	var (
		netErr    *httputil.NetworkError
		parseErr  *jwplayer.ParseError
		schemaErr *jwplayer.SchemaError
	)
	switch {
	case errors.As(err, &netErr):
		return metrics.OutcomeNetworkError
	case errors.As(err, &parseErr):
		return metrics.OutcomeParseError
	case errors.As(err, &schemaErr):
		return metrics.OutcomeSchemaError
	default:
		return metrics.OutcomeError
	}
}
