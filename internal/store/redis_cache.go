package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
	"golang.org/x/sync/singleflight"
)

// RedisCacheRepository wraps a Repository with Redis caching for hash lookups.
// Misses are not cached: a hash must stay visible as free until it is written.
type RedisCacheRepository struct {
	shortener.Repository

	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client redis.UniversalClient, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		Repository: store,
		client:     client,
		prefix:     "short_link_cache:",
		ttl:        ttl,
	}
}

// Create stores a link in the underlying store and updates the cache.
func (r *RedisCacheRepository) Create(ctx context.Context, fields shortener.Fields) (*shortener.ShortLink, error) {
	link, err := r.Repository.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	// Write-through: an expired entry for the same hash may still be cached.
	r.cacheLink(ctx, link)

	return link, nil
}

// FindByHash checks the cache first; concurrent misses for one hash share a single store read.
func (r *RedisCacheRepository) FindByHash(ctx context.Context, hash shortener.Hash) (*shortener.ShortLink, error) {
	if link, err := r.getFromCache(ctx, hash); err == nil {
		return link, nil
	}

	v, err, _ := r.group.Do(string(hash), func() (any, error) {
		link, err := r.Repository.FindByHash(ctx, hash)
		if err != nil {
			return nil, err
		}

		r.cacheLink(ctx, link)

		return link, nil
	})
	if err != nil {
		return nil, err
	}

	link := *v.(*shortener.ShortLink)

	return &link, nil
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, hash shortener.Hash) (*shortener.ShortLink, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(hash)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	link := &shortener.ShortLink{
		Hash:         shortener.Hash(result["hash"]),
		URL:          result["url"],
		Expires:      result["expires"] == "1",
		RelationType: result["relation_type"],
	}

	link.ID, _ = strconv.ParseInt(result["id"], 10, 64)
	link.CreatedAt = parseNanos(result["created_at"])

	if ts := result["expires_at"]; ts != "" {
		t := parseNanos(ts)
		link.ExpiresAt = &t
	}

	if rid := result["relation_id"]; rid != "" {
		if id, err := strconv.ParseInt(rid, 10, 64); err == nil {
			link.RelationID = &id
		}
	}

	return link, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.ShortLink) {
	ttl := r.ttl

	if link.ExpiresAt != nil {
		remaining := time.Until(*link.ExpiresAt)
		if remaining <= 0 {
			return
		}

		if ttl <= 0 || remaining < ttl {
			ttl = remaining
		}
	}

	values := map[string]any{
		"id":            link.ID,
		"hash":          string(link.Hash),
		"url":           link.URL,
		"expires":       boolFlag(link.Expires),
		"relation_type": link.RelationType,
		"relation_id":   "",
		"expires_at":    "",
		"created_at":    link.CreatedAt.UnixNano(),
	}

	if link.RelationID != nil {
		values["relation_id"] = *link.RelationID
	}

	if link.ExpiresAt != nil {
		values["expires_at"] = link.ExpiresAt.UnixNano()
	}

	key := r.prefix + string(link.Hash)
	pipe := r.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, values)

	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

func parseNanos(s string) time.Time {
	nanos, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(0, nanos).UTC()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}

	return "0"
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
