// Package player provides a secure interface for launching media players.
// All player invocations use exec.Command with explicit argument slices.
package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"pickleballtv/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of a stream and blocks until the player exits.
	Play(ctx context.Context, stream *media.Stream, title string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name. Names are matched case-insensitively.
func New(name string) Player {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{}
	}
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// run starts the player attached to the terminal. Non-zero exits are treated
// as the user closing the window.
func run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}
