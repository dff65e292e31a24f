package player

import (
	"context"

	"pickleballtv/internal/media"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return lookPath(g.name) }

// Play launches the generic player.
func (g *Generic) Play(ctx context.Context, stream *media.Stream, title string) error {
	args := []string{stream.URL, "--force-media-title=" + title}
	return run(ctx, g.name, args)
}
