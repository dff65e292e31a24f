// Package metrics defines the Prometheus collectors for stream resolution.
//
// Collectors register with the default registry at init time; the watch
// command exposes them through promhttp.
package metrics
