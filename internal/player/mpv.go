package player

import (
	"context"

	"pickleballtv/internal/media"
)

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return lookPath("mpv") }

// Play launches mpv on the live stream.
func (m *MPV) Play(ctx context.Context, stream *media.Stream, title string) error {
	return run(ctx, "mpv", mpvArgs(stream, title))
}

// mpvArgs is shared with players that accept mpv-style flags.
func mpvArgs(stream *media.Stream, title string) []string {
	return []string{
		stream.URL,
		"--force-media-title=" + title,
		"--really-quiet",
		"--cache=yes",
	}
}
