package player

import (
	"context"

	"pickleballtv/internal/media"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return lookPath("vlc") }

// Play launches VLC.
func (v *VLC) Play(ctx context.Context, stream *media.Stream, title string) error {
	return run(ctx, "vlc", vlcArgs(stream, title))
}

func vlcArgs(stream *media.Stream, title string) []string {
	return []string{
		stream.URL,
		"--meta-title", title,
		"--play-and-exit",
	}
}
