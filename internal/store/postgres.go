package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shortlink/internal/shortener"
)

// PostgresSchema creates the short_links table. The unique constraint on hash
// is what makes concurrent creation safe.
const PostgresSchema = `
	CREATE TABLE IF NOT EXISTS short_links (
		id            BIGSERIAL PRIMARY KEY,
		hash          TEXT        NOT NULL UNIQUE,
		url           TEXT        NOT NULL,
		expires_at    TIMESTAMPTZ NULL,
		expires       BOOLEAN     NOT NULL DEFAULT FALSE,
		relation_type TEXT        NULL,
		relation_id   BIGINT      NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS short_links_relation_idx ON short_links (relation_type, relation_id);
`

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	base

	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed short link store.
func NewPostgresStore(pool *pgxpool.Pool, opts ...Option) *PostgresStore {
	return &PostgresStore{
		base: newBase(opts),
		pool: pool,
	}
}

// Migrate creates the schema if it does not exist.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, PostgresSchema)

	return err
}

// Create inserts fields. An expired row with the same hash is overwritten in
// place; a live one makes the upsert a no-op, reported as ErrDuplicate.
func (p *PostgresStore) Create(ctx context.Context, fields shortener.Fields) (*shortener.ShortLink, error) {
	query := `
		INSERT INTO short_links (hash, url, expires_at, expires, relation_type, relation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hash) DO UPDATE SET
			url           = EXCLUDED.url,
			expires_at    = EXCLUDED.expires_at,
			expires       = EXCLUDED.expires,
			relation_type = EXCLUDED.relation_type,
			relation_id   = EXCLUDED.relation_id,
			created_at    = EXCLUDED.created_at
		WHERE short_links.expires_at IS NOT NULL AND short_links.expires_at <= $8
		RETURNING id, created_at
	`

	now := p.now().UTC()

	var (
		id        int64
		createdAt time.Time
	)

	err := p.pool.QueryRow(ctx, query,
		string(fields.Hash),
		fields.URL,
		fields.ExpiresAt,
		fields.Expires,
		nullableString(fields.RelationType),
		fields.RelationID,
		now,
		now,
	).Scan(&id, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			return nil, shortener.ErrDuplicate
		}

		return nil, err
	}

	return fields.Link(id, createdAt), nil
}

func (p *PostgresStore) FindByHash(ctx context.Context, hash shortener.Hash) (*shortener.ShortLink, error) {
	query := `
		SELECT id, hash, url, expires_at, expires, relation_type, relation_id, created_at
		FROM short_links
		WHERE hash = $1
	`

	var (
		link         shortener.ShortLink
		relationType *string
	)

	err := p.pool.QueryRow(ctx, query, string(hash)).Scan(
		&link.ID,
		&link.Hash,
		&link.URL,
		&link.ExpiresAt,
		&link.Expires,
		&relationType,
		&link.RelationID,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	if relationType != nil {
		link.RelationType = *relationType
	}

	return &link, nil
}

// Ping checks database connectivity.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

var _ shortener.Repository = (*PostgresStore)(nil)
