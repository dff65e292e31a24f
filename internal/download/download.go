// Package download records a live stream to disk with ffmpeg.
// Uses exec.Command with explicit argument slices and validates
// output paths against directory traversal attacks.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"pickleballtv/internal/httputil"
	"pickleballtv/internal/media"
)

// Filename returns the recording file name for title started at t.
func Filename(title string, t time.Time) string {
	return httputil.SanitizeFilename(fmt.Sprintf("%s %s.ts", title, t.Format("2006-01-02 1504")))
}

// Args builds the ffmpeg argument list for recording stream to outputPath.
func Args(stream *media.Stream, title, outputPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "warning",
		"-i", stream.URL,
		"-c", "copy", // no re-encoding
		"-metadata", fmt.Sprintf("title=%s", title),
		"-f", "mpegts",
		outputPath,
	}
}

// Record writes the stream into outputDir until ffmpeg exits or ctx is
// cancelled, and returns the file path. A cancelled recording keeps what was
// written so far.
func Record(ctx context.Context, stream *media.Stream, title string, outputDir string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(absDir, Filename(title, time.Now()))
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, Args(stream, title, outputPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Let ffmpeg finalize the container on Ctrl-C instead of being killed.
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = 10 * time.Second

	fmt.Fprintf(os.Stderr, "Recording to: %s\n", outputPath)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return outputPath, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if info, statErr := os.Stat(outputPath); statErr == nil && info.Size() == 0 {
				os.Remove(outputPath)
			}
		}
		return "", fmt.Errorf("ffmpeg recording failed: %w", err)
	}

	return outputPath, nil
}
