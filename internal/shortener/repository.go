//go:generate mockgen -source=repository.go -destination=mocks/repository.go -package=mocks

package shortener

import "context"

// Repository persists short links. Implementations must enforce uniqueness of
// live hashes at the storage layer and be safe for concurrent use.
type Repository interface {
	// FindByHash returns the link for hash, expired or not.
	// Returns ErrNotFound if no link exists.
	FindByHash(ctx context.Context, hash Hash) (*ShortLink, error)

	// IsExpired reports whether link is past its expiry.
	IsExpired(link *ShortLink) bool

	// Create persists fields. Returns ErrDuplicate if a live link already owns
	// the hash. An expired link with the same hash may be replaced.
	Create(ctx context.Context, fields Fields) (*ShortLink, error)

	// EntityName scopes creating notifications, e.g. "ShortLink".
	EntityName() string
}
