// Package cache stores registry responses between pkgsync runs.
//
// The version cache used during a single run lives in [deps.Cache]; this
// package is the layer below it that keeps raw registry answers so repeated
// runs over a monorepo do not hit the network for every package.
//
// Three backends are provided:
//   - [FileCache]: one JSON file per key under the user cache directory (CLI default)
//   - [RedisCache]: shared cache for CI runners
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and whether it was found and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
