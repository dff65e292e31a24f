// Package provider defines the interface for live stream providers
// and their implementations.
package provider

import (
	"context"
	"fmt"

	"pickleballtv/internal/media"
)

// Provider resolves the streams of one website.
type Provider interface {
	// Name returns a short identifier, e.g. "pickleballtv".
	Name() string

	// CanHandle reports whether rawURL belongs to this provider's site.
	CanHandle(rawURL string) bool

	// Streams returns the currently playable streams. An empty set with a nil
	// error means nothing is live.
	Streams(ctx context.Context) (media.StreamSet, error)
}

// Set is an ordered list of providers assembled by the caller.
type Set []Provider

// Find returns the first provider that handles rawURL.
func (s Set) Find(rawURL string) (Provider, error) {
	for _, p := range s {
		if p.CanHandle(rawURL) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no provider can handle %q", rawURL)
}
