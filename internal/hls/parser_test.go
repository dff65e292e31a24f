package hls

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickleballtv/internal/media"
)

const masterPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360,CODECS="avc1.4d401e,mp4a.40.2"
360p/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2500000,RESOLUTION=1280x720,CODECS="avc1.4d401f,mp4a.40.2"
720p/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=5000000,RESOLUTION=1920x1080,CODECS="avc1.640028,mp4a.40.2"
https://origin.example/1080p/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=64000,CODECS="mp4a.40.2"
audio/index.m3u8
`

const duplicateMaster = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=2500000,RESOLUTION=1280x720
a/720.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=3000000,RESOLUTION=1280x720
b/720.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:6
#EXT-X-MEDIA-SEQUENCE:100
#EXTINF:6.000,
seg100.ts
#EXTINF:6.000,
seg101.ts
`

func newManifestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseMasterPlaylist(t *testing.T) {
	srv := newManifestServer(t, map[string]string{"/live/master.m3u8": masterPlaylist})
	p := NewParser(srv.Client())

	set, err := p.ParseVariantPlaylist(context.Background(), srv.URL+"/live/master.m3u8")
	require.NoError(t, err)

	assert.Equal(t, []string{"64k", "360p", "720p", "1080p"}, SortedNames(set))
	assert.Equal(t, srv.URL+"/live/360p/index.m3u8", set["360p"].URL)
	assert.Equal(t, srv.URL+"/live/720p/index.m3u8", set["720p"].URL)
	assert.Equal(t, "https://origin.example/1080p/index.m3u8", set["1080p"].URL)
	assert.Equal(t, uint32(2500000), set["720p"].Bandwidth)
	assert.Equal(t, "1280x720", set["720p"].Resolution)

	assert.Same(t, set["1080p"], set[Best])
	assert.Same(t, set["64k"], set[Worst])
	assert.Equal(t, 4, set.Len())
}

func TestParseDuplicateResolutions(t *testing.T) {
	srv := newManifestServer(t, map[string]string{"/master.m3u8": duplicateMaster})

	set, err := NewParser(srv.Client()).ParseVariantPlaylist(context.Background(), srv.URL+"/master.m3u8")
	require.NoError(t, err)

	require.Contains(t, set, "720p")
	require.Contains(t, set, "720p_alt")
	assert.Equal(t, srv.URL+"/a/720.m3u8", set["720p"].URL)
	assert.Equal(t, srv.URL+"/b/720.m3u8", set["720p_alt"].URL)
	assert.Same(t, set["720p_alt"], set[Best])
}

func TestParseMediaPlaylist(t *testing.T) {
	srv := newManifestServer(t, map[string]string{"/live.m3u8": mediaPlaylist})

	set, err := NewParser(srv.Client()).ParseVariantPlaylist(context.Background(), srv.URL+"/live.m3u8")
	require.NoError(t, err)

	require.Contains(t, set, "live")
	assert.Equal(t, srv.URL+"/live.m3u8", set["live"].URL)
	assert.Same(t, set["live"], set[Best])
	assert.Equal(t, 1, set.Len())
}

func TestParsePlainHTTPManifest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(masterPlaylist))
	}))
	defer srv.Close()

	set, err := NewParser(srv.Client()).ParseVariantPlaylist(context.Background(), srv.URL+"/master.m3u8")
	require.NoError(t, err)

	require.Contains(t, set, "720p")
	assert.Equal(t, srv.URL+"/720p/index.m3u8", set["720p"].URL)
}

func TestParseErrors(t *testing.T) {
	srv := newManifestServer(t, map[string]string{"/garbage.m3u8": "<html>not a playlist</html>"})
	p := NewParser(srv.Client())

	_, err := p.ParseVariantPlaylist(context.Background(), srv.URL+"/missing.m3u8")
	assert.Error(t, err)

	_, err = p.ParseVariantPlaylist(context.Background(), srv.URL+"/garbage.m3u8")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	low := &media.Stream{Name: "360p", Resolution: "640x360"}
	high := &media.Stream{Name: "720p", Resolution: "1280x720"}
	set := media.StreamSet{"360p": low, "720p": high}
	AddSynonyms(set)

	st, err := Select(set, "best")
	require.NoError(t, err)
	assert.Same(t, high, st)

	st, err = Select(set, "360p")
	require.NoError(t, err)
	assert.Same(t, low, st)

	_, err = Select(set, "1080p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "360p, 720p")
}

func TestVariantNameFallbacks(t *testing.T) {
	assert.Equal(t, 0, height("garbage"))
	assert.Equal(t, 1080, height("1920x1080"))

	set := media.StreamSet{}
	assert.Equal(t, "best_stream", uniqueName(set, "best"))
	set["live"] = &media.Stream{}
	set["live_alt"] = &media.Stream{}
	assert.Equal(t, "live_alt2", uniqueName(set, "live"))
}

func TestAddSynonymsEmpty(t *testing.T) {
	set := media.StreamSet{}
	AddSynonyms(set)
	assert.Empty(t, set)
}
