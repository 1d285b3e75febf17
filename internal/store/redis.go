package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository. Each link is a
// JSON string key; links with an expiry carry a matching EXAT so Redis evicts
// them and frees the hash.
type RedisStore struct {
	base

	client redis.UniversalClient
	prefix string // "short_link:" for hash -> record
	seqKey string // "short_link_seq" counter for ids
}

// NewRedisStore creates a new Redis-backed short link store.
func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	return &RedisStore{
		base:   newBase(opts),
		client: client,
		prefix: "short_link:",
		seqKey: "short_link_seq",
	}
}

type redisRecord struct {
	ID           int64      `json:"id"`
	Hash         string     `json:"hash"`
	URL          string     `json:"url"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Expires      bool       `json:"expires"`
	RelationType string     `json:"relation_type,omitempty"`
	RelationID   *int64     `json:"relation_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Create writes the record with SET NX, so a live key with the same hash
// yields ErrDuplicate.
func (r *RedisStore) Create(ctx context.Context, fields shortener.Fields) (*shortener.ShortLink, error) {
	id, err := r.client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return nil, err
	}

	link := fields.Link(id, r.now().UTC())

	payload, err := json.Marshal(toRedisRecord(link))
	if err != nil {
		return nil, err
	}

	args := redis.SetArgs{Mode: "NX"}
	if link.ExpiresAt != nil {
		args.ExpireAt = *link.ExpiresAt
	}

	err = r.client.SetArgs(ctx, r.prefix+string(link.Hash), payload, args).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrDuplicate
		}

		return nil, err
	}

	return link, nil
}

func (r *RedisStore) FindByHash(ctx context.Context, hash shortener.Hash) (*shortener.ShortLink, error) {
	payload, err := r.client.Get(ctx, r.prefix+string(hash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	var record redisRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}

	return record.link(), nil
}

func toRedisRecord(link *shortener.ShortLink) redisRecord {
	return redisRecord{
		ID:           link.ID,
		Hash:         string(link.Hash),
		URL:          link.URL,
		ExpiresAt:    link.ExpiresAt,
		Expires:      link.Expires,
		RelationType: link.RelationType,
		RelationID:   link.RelationID,
		CreatedAt:    link.CreatedAt,
	}
}

func (r redisRecord) link() *shortener.ShortLink {
	return &shortener.ShortLink{
		ID:           r.ID,
		Hash:         shortener.Hash(r.Hash),
		URL:          r.URL,
		ExpiresAt:    r.ExpiresAt,
		Expires:      r.Expires,
		RelationType: r.RelationType,
		RelationID:   r.RelationID,
		CreatedAt:    r.CreatedAt,
	}
}

var _ shortener.Repository = (*RedisStore)(nil)
