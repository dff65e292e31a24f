package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeNotFound     = "not_found"
	OutcomeNetworkError = "network_error"
	OutcomeParseError   = "parse_error"
	OutcomeSchemaError  = "schema_error"
	OutcomeHLSError     = "hls_error"
	OutcomeError        = "error"
)

// Resolver metrics
var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickleballtv_resolutions_total",
			Help: "Total number of stream resolutions by outcome",
		},
		[]string{"outcome"},
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pickleballtv_resolve_duration_seconds",
			Help:    "Time spent resolving the playlist and manifest",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// HLS metrics
var (
	HLSFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickleballtv_hls_fetch_duration_seconds",
			Help:    "HLS manifest fetch and decode duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
)

// Watch metrics
var (
	StreamsAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pickleballtv_streams_available",
			Help: "Number of distinct streams found by the last poll",
		},
	)

	LastPollTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pickleballtv_last_poll_timestamp_seconds",
			Help: "Unix timestamp of the last completed poll",
		},
	)
)

// ObserveResolution records one resolution attempt.
func ObserveResolution(outcome string, start time.Time) {
	ResolutionsTotal.WithLabelValues(outcome).Inc()
	ResolveDuration.Observe(time.Since(start).Seconds())
}
