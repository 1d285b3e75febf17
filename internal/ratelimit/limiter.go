package ratelimit

import (
	"context"
	"time"
)

// Limiter defines the interface for rate limiting.
type Limiter interface {
	// Allow checks if a request from the given key should be allowed.
	Allow(ctx context.Context, key string) (allowed bool, err error)
}

// Unlimited allows every request.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) {
	return true, nil
}

// SlidingWindowLimiter allows at most limit requests per key within any window-long span.
type SlidingWindowLimiter struct {
	store  Store
	scope  string
	limit  int64
	window time.Duration
}

// NewSlidingWindowLimiter creates a sliding window limiter. Keys are recorded under
// the "links" scope so several limiters can share one store.
func NewSlidingWindowLimiter(store Store, limit int64, window time.Duration) *SlidingWindowLimiter {
	return NewScopedLimiter(store, "links", limit, window)
}

// NewScopedLimiter creates a sliding window limiter recording keys under scope.
func NewScopedLimiter(store Store, scope string, limit int64, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		store:  store,
		scope:  scope,
		limit:  limit,
		window: window,
	}
}

// New returns Unlimited when limit is not positive, a sliding window limiter otherwise.
func New(store Store, limit int64, window time.Duration) Limiter {
	if limit <= 0 {
		return Unlimited{}
	}

	return NewSlidingWindowLimiter(store, limit, window)
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Record(ctx, l.scope+":"+key, l.window)
	if err != nil {
		return false, err
	}

	return count <= l.limit, nil
}
