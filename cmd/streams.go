package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pickleballtv/internal/download"
	"pickleballtv/internal/hls"
	"pickleballtv/internal/media"
	"pickleballtv/internal/player"
	"pickleballtv/internal/provider"
	"pickleballtv/internal/ui"
)

const streamTitle = "PickleballTV"

// streamsRun is the default command: pickleballtv [url]
func streamsRun(cmd *cobra.Command, args []string) error {
	target := provider.PageURL
	if len(args) == 1 {
		target = args[0]
	}

	p, err := newProviders().Find(target)
	if err != nil {
		return err
	}
	debugf("using provider %s for %s", p.Name(), target)

	streams, err := p.Streams(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolving streams: %w", err)
	}

	return handleStreams(cmd.Context(), cmd.OutOrStdout(), streams)
}

// handleStreams lists, plays or records a resolved stream set depending on flags.
func handleStreams(ctx context.Context, out io.Writer, streams media.StreamSet) error {
	if len(streams) == 0 {
		if flagJSON {
			return writeJSON(out, streams)
		}
		fmt.Fprintln(os.Stderr, "No streams found: PickleballTV is not live right now.")
		return nil
	}

	if !flagPlay && !flagSelect && !recording() {
		if flagJSON {
			return writeJSON(out, streams)
		}
		fmt.Fprintf(out, "Available streams: %s\n", formatStreamList(streams))
		return nil
	}

	stream, err := chooseStream(streams)
	if err != nil {
		return err
	}
	debugf("stream %s: %s", stream.Name, stream.URL)

	if flagJSON {
		return writeJSON(out, map[string]*media.Stream{"selected": stream})
	}

	if recording() {
		dir, err := recordDir()
		if err != nil {
			return err
		}
		outputPath, err := download.Record(ctx, stream, streamTitle, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Recorded: %s\n", outputPath)
		return nil
	}

	pl := player.New(cfg.Player)
	if !pl.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}
	if err := pl.Play(ctx, stream, fmt.Sprintf("%s (%s)", streamTitle, stream.Name)); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

func recording() bool {
	return flagRecord || flagDownload != ""
}

// recordDir is --download DIR when given, else download_dir from config.
func recordDir() (string, error) {
	if flagDownload != "" {
		return flagDownload, nil
	}
	dir, err := cfg.ExpandDownloadDir()
	if err != nil {
		return "", fmt.Errorf("download directory: %w", err)
	}
	return dir, nil
}

// chooseStream applies --select, then the configured quality.
func chooseStream(streams media.StreamSet) (*media.Stream, error) {
	if !flagSelect {
		return hls.Select(streams, cfg.Quality)
	}

	if !ui.Interactive() {
		return nil, fmt.Errorf("--select needs an interactive terminal")
	}

	names := hls.SortedNames(streams)
	// Highest quality first in the picker.
	items := make([]string, len(names))
	for i := range names {
		items[i] = names[len(names)-1-i]
	}
	idx, err := ui.Select("Quality", items)
	if err != nil {
		return nil, err
	}
	return streams[items[idx]], nil
}

// formatStreamList renders "worst" to "best" with synonym markers, e.g.
// "360p (worst), 720p, 1080p (best)".
func formatStreamList(streams media.StreamSet) string {
	names := hls.SortedNames(streams)
	parts := make([]string, len(names))
	for i, name := range names {
		var tags []string
		if streams[hls.Worst] == streams[name] {
			tags = append(tags, hls.Worst)
		}
		if streams[hls.Best] == streams[name] {
			tags = append(tags, hls.Best)
		}
		if len(tags) > 0 {
			parts[i] = fmt.Sprintf("%s (%s)", name, strings.Join(tags, ", "))
		} else {
			parts[i] = name
		}
	}
	return strings.Join(parts, ", ")
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
