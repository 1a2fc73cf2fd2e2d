// Package cache stores analysis results keyed by graph content.
//
// Results of validate, order, match and transform calls depend only on the
// input document and the call options, so they are cached under a key built
// from the document hash (see [Keyer]). Three backends are provided:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI.
//   - [RedisCache]: a shared Redis instance, for the HTTP server.
//   - [NullCache]: stores nothing, used when caching is disabled.
//
// Backends store opaque bytes. A miss is reported as (nil, false, nil);
// errors are reserved for backend failures, and callers treat them as a
// miss.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLResult is the default lifetime of a cached analysis result.
const TTLResult = 24 * time.Hour

// NullCache misses on every Get and drops every Set. It backs --no-cache
// and backend = "none".
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
