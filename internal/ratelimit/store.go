package ratelimit

import (
	"context"
	"time"
)

// Store records requests per key in a sliding window.
type Store interface {
	// Record adds a request for key, prunes entries older than window and
	// returns how many requests remain inside it, this one included.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// StoreFunc adapts a function to Store.
type StoreFunc func(ctx context.Context, key string, window time.Duration) (int64, error)

func (f StoreFunc) Record(ctx context.Context, key string, window time.Duration) (int64, error) {
	return f(ctx, key, window)
}
