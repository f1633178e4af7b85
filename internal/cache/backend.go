// Package cache provides the key/value backends (memory or Redis) and the typed
// stores built on top of them.
package cache

import (
	"context"
	"time"
)

// Backend is a byte-oriented key/value store with per-key expiry. Misses are
// reported through the found result, never as errors.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetMany returns only the keys that were found
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	SetMany(ctx context.Context, items map[string][]byte, ttl time.Duration) error

	// Ping reports whether the backend can serve requests
	Ping(ctx context.Context) error
	Close() error
}
