// Package cache stores rendered artifacts keyed by a hash of their input.
//
// Rendering DOT to SVG runs Graphviz, which dominates the cost of the render
// command. The output is a pure function of the DOT source, so it can be
// cached indefinitely under [RenderKey].
//
// Two implementations are provided: [FileCache] for the CLI and [NullCache]
// for --no-cache and tests.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
