package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: key not found")

// CacheEntry is a stored value and its bookkeeping.
type CacheEntry struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value"`
	ExpiresAt time.Time   `json:"expires_at"`
	CreatedAt time.Time   `json:"created_at"`
	Hits      int64       `json:"hits"`
}

// Service is a key/value cache with per-entry TTL. A ttl <= 0 keeps the
// entry until it is deleted or the cache is cleared.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get returns ErrNotFound for absent and expired keys.
	Get(ctx context.Context, key string) (interface{}, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
}

type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	// Keys counts live entries only.
	Keys      int64     `json:"keys"`
	StartedAt time.Time `json:"started_at"`
}
