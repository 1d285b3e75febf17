package store

import (
	"time"

	"github.com/serroba/shortlink/internal/shortener"
)

// Option configures a short link store.
type Option func(*base)

// WithClock overrides the time source used for expiry checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// WithEntityName overrides the entity name reported to the shortener service.
func WithEntityName(name string) Option {
	return func(b *base) {
		b.entity = name
	}
}

// base carries the expiry and naming behavior every store shares.
type base struct {
	now    func() time.Time
	entity string
}

func newBase(opts []Option) base {
	b := base{
		now:    time.Now,
		entity: shortener.DefaultEntityName,
	}

	for _, opt := range opts {
		opt(&b)
	}

	return b
}

// IsExpired reports whether link is past its expiry at the store's current time.
func (b base) IsExpired(link *shortener.ShortLink) bool {
	return link.IsExpiredAt(b.now())
}

// EntityName returns the logical entity name of stored links.
func (b base) EntityName() string {
	return b.entity
}
