// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pickleballtv/internal/config"
	"pickleballtv/internal/httputil"
	"pickleballtv/internal/provider"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagQuality  string
	flagPlayer   string
	flagDownload string
	flagMediaID  string
	flagPlay     bool
	flagSelect   bool
	flagRecord   bool
	flagDiscover bool
	flagJSON     bool
	flagDebug    bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pickleballtv [url]",
	Short: "Watch the PickleballTV live stream",
	Long: `pickleballtv resolves the PickleballTV live channel into HLS streams.
List the available qualities, play one with mpv/vlc, or record it with ffmpeg.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              streamsRun,
	SilenceUsage:      true,
}

// Execute runs the root command. SIGINT/SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagQuality, "quality", "q", "", "Stream quality: best | worst | 720p | ...")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().StringVarP(&flagDownload, "download", "d", "", "Record to directory instead of playing")
	rootCmd.PersistentFlags().BoolVarP(&flagRecord, "record", "r", false, "Record to download_dir from the config file")
	rootCmd.PersistentFlags().StringVar(&flagMediaID, "media-id", "", "Override the JW Player media id")
	rootCmd.PersistentFlags().BoolVarP(&flagPlay, "play", "P", false, "Play the selected stream")
	rootCmd.PersistentFlags().BoolVarP(&flagSelect, "select", "s", false, "Pick the stream quality with fzf")
	rootCmd.PersistentFlags().BoolVar(&flagDiscover, "discover", false, "Look up the media id on pickleballtv.com first")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output stream metadata as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagQuality != "" {
		cfg.Quality = flagQuality
	}
	if flagMediaID != "" {
		cfg.MediaID = flagMediaID
	}
	if flagDiscover {
		cfg.Discover = true
	}
	if flagInterval > 0 {
		cfg.WatchInterval = int(flagInterval.Seconds())
	}
	if flagListen != "" {
		cfg.Listen = flagListen
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[pickleballtv] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

// newProviders is the composition root for stream providers.
func newProviders() provider.Set {
	client := httputil.NewClient(cfg.HTTPTimeout())
	return provider.Set{
		provider.NewPickleballTV(client,
			provider.WithMediaID(cfg.MediaID),
			provider.WithDiscovery(cfg.Discover),
			provider.WithLogger(log.Default(), cfg.Debug),
		),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "pickleballtv", Version)
	},
}
