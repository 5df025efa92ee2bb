// Package cache provides content-addressed caching of computed layouts.
//
// Layout computation is cheap for small graphs but the hosted dashboard
// recomputes on every refresh for every connected client, so results are
// cached keyed by the snapshot content, the plan content, and the layout
// config. Three backends cover the deployment shapes:
//
//   - [FileCache]: per-user cache directory for the CLI
//   - [RedisCache]: shared cache for the hosted dashboard
//   - [NullCache]: caching disabled (tests, --no-cache)
//
// Keys are built with [LayoutKey] so every entry point hashes the same
// inputs the same way.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached layouts stay valid. Snapshots are
// content-addressed so staleness only matters for disk usage.
const DefaultTTL = 24 * time.Hour

// Cache is the minimal byte cache the layout pipeline needs.
type Cache interface {
	// Get returns the cached data and true, or (nil, false) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
