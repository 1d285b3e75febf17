package store

import (
	"context"
	"sync"

	"github.com/serroba/shortlink/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	base

	mu     sync.RWMutex
	links  map[shortener.Hash]shortener.ShortLink
	nextID int64
}

// NewMemoryStore creates a new in-memory short link store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		base:  newBase(opts),
		links: make(map[shortener.Hash]shortener.ShortLink),
	}
}

func (m *MemoryStore) FindByHash(_ context.Context, hash shortener.Hash) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[hash]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &link, nil
}

// Create stores fields unless a live link owns the hash. Expired links are replaced.
func (m *MemoryStore) Create(_ context.Context, fields shortener.Fields) (*shortener.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.links[fields.Hash]; ok && !m.IsExpired(&existing) {
		return nil, shortener.ErrDuplicate
	}

	m.nextID++
	link := fields.Link(m.nextID, m.now())
	m.links[fields.Hash] = *link

	return link, nil
}

// Len returns the number of stored links, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.links)
}

var _ shortener.Repository = (*MemoryStore)(nil)
