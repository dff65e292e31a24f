// Package status serves the live state found by the watch loop over HTTP.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pickleballtv/internal/hls"
	"pickleballtv/internal/media"
)

// Snapshot is the result of the most recent poll.
type Snapshot struct {
	Live      bool              `json:"live"`
	Streams   map[string]string `json:"streams"` // name -> URL
	Order     []string          `json:"order"`   // lowest to highest quality
	Error     string            `json:"error,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
}

// Server holds the latest Snapshot and exposes it with the Prometheus metrics.
type Server struct {
	mu   sync.RWMutex
	last Snapshot
}

// New creates an empty Server.
func New() *Server {
	return &Server{}
}

// Update records a poll result.
func (s *Server) Update(set media.StreamSet, err error, at time.Time) {
	snap := Snapshot{
		Streams:   make(map[string]string, len(set)),
		CheckedAt: at.UTC(),
	}
	if err != nil {
		snap.Error = err.Error()
	}
	for name, st := range set {
		snap.Streams[name] = st.URL
	}
	snap.Order = hls.SortedNames(set)
	snap.Live = len(snap.Order) > 0

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()
}

// Last returns the most recent snapshot.
func (s *Server) Last() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Handler returns the router: /healthz, /streams and /metrics.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/streams", s.handleStreams)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleStreams(w http.ResponseWriter, r *http.Request) {
	snap := s.Last()
	w.Header().Set("Content-Type", "application/json")
	if snap.CheckedAt.IsZero() {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(snap)
}

// ListenAndServe serves Handler on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
