package memory

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a key has no value.
var ErrNotFound = errors.New("key not found")

// KVStore is the fast short-TTL store for session context. TTL is
// enforced by the store on write.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DurableStore holds long-lived user preference and history records.
// Appends create new versions; existing records are never mutated.
type DurableStore interface {
	Query(ctx context.Context, key string, limit int) ([]Record, error)
	Append(ctx context.Context, rec Record) error
}
