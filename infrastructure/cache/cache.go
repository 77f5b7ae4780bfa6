package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented TTL cache used for movie metadata responses.
// Misses and backend failures are indistinguishable to callers: both report
// "not found", so a broken cache degrades to pass-through.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
