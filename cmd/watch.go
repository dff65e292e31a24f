package cmd

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"pickleballtv/internal/media"
	"pickleballtv/internal/metrics"
	"pickleballtv/internal/provider"
	"pickleballtv/internal/status"
)

var (
	flagInterval time.Duration
	flagListen   string
	flagKeep     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll until the stream goes live",
	Long: `watch resolves the stream every interval. Once streams are found it lists,
plays or records them like the root command. With --keep it never stops and
only reports state through the --listen status server.`,
	Args: cobra.NoArgs,
	RunE: watchRun,
}

func init() {
	watchCmd.Flags().DurationVar(&flagInterval, "interval", 0, "Time between polls (default from config: 60s)")
	watchCmd.Flags().StringVar(&flagListen, "listen", "", "Serve /streams, /healthz and /metrics on this address")
	watchCmd.Flags().BoolVar(&flagKeep, "keep", false, "Keep polling after the stream goes live")
}

func watchRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, err := newProviders().Find(provider.PageURL)
	if err != nil {
		return err
	}

	srv := status.New()
	if cfg.Listen != "" {
		go func() {
			log.Printf("status server listening on %s", cfg.Listen)
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				log.Printf("status server: %v", err)
			}
		}()
	}

	interval := cfg.PollInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		streams := poll(ctx, p, srv)
		if len(streams) > 0 && !flagKeep {
			return handleStreams(ctx, cmd.OutOrStdout(), streams)
		}
		if len(streams) == 0 {
			debugf("not live, next check in %s", interval)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// poll resolves once and records the result. Resolution errors are logged
// and treated as "not live" so the loop keeps going.
func poll(ctx context.Context, p provider.Provider, srv *status.Server) media.StreamSet {
	streams, err := p.Streams(ctx)
	if err != nil && ctx.Err() == nil {
		log.Printf("resolving streams: %v", err)
	}

	srv.Update(streams, err, time.Now())
	metrics.StreamsAvailable.Set(float64(streams.Len()))
	metrics.LastPollTimestamp.SetToCurrentTime()

	return streams
}
