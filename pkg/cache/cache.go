// Package cache stores serialized analysis results keyed by input content.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP server, backed by go-redis
//   - [NullCache]: never stores anything (--no-cache)
//
// [Open] selects a backend by name, as configured in config.toml.
//
// # Keys
//
// A [Keyer] derives keys from a SHA-256 hash of the UniMoG input plus the
// analysis options, so a changed option never returns a stale result.
// [ScopedKeyer] prefixes keys to separate namespaces on a shared backend.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string // file, redis, or none
	Dir      string // FileCache directory
	RedisURL string // redis://[:password@]host:port/db
}

// Open returns the cache selected by opts.Backend. An empty backend means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.RedisURL)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
