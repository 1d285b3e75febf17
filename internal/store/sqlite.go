package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/serroba/shortlink/internal/shortener"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteSchema creates the short_links table. Timestamps are unix nanoseconds.
const SQLiteSchema = `
	CREATE TABLE IF NOT EXISTS short_links (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		hash          TEXT    NOT NULL UNIQUE,
		url           TEXT    NOT NULL,
		expires_at    INTEGER NULL,
		expires       INTEGER NOT NULL DEFAULT 0,
		relation_type TEXT    NULL,
		relation_id   INTEGER NULL,
		created_at    INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS short_links_relation_idx ON short_links (relation_type, relation_id);
`

// OpenSQLite opens a SQLite database at dsn and creates the schema.
// A single connection is used so ":memory:" databases stay shared.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, SQLiteSchema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return db, nil
}

// SQLiteStore is a SQLite implementation of shortener.Repository.
type SQLiteStore struct {
	base

	db *sql.DB
}

// NewSQLiteStore creates a store on an open database. The schema must exist.
func NewSQLiteStore(db *sql.DB, opts ...Option) *SQLiteStore {
	return &SQLiteStore{
		base: newBase(opts),
		db:   db,
	}
}

// Create inserts fields, replacing an expired row with the same hash.
func (s *SQLiteStore) Create(ctx context.Context, fields shortener.Fields) (*shortener.ShortLink, error) {
	query := `
		INSERT INTO short_links (hash, url, expires_at, expires, relation_type, relation_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (hash) DO UPDATE SET
			url           = excluded.url,
			expires_at    = excluded.expires_at,
			expires       = excluded.expires,
			relation_type = excluded.relation_type,
			relation_id   = excluded.relation_id,
			created_at    = excluded.created_at
		WHERE short_links.expires_at IS NOT NULL AND short_links.expires_at <= ?
		RETURNING id
	`

	now := s.now().UTC()

	var id int64

	err := s.db.QueryRowContext(ctx, query,
		string(fields.Hash),
		fields.URL,
		unixNanos(fields.ExpiresAt),
		fields.Expires,
		nullableString(fields.RelationType),
		fields.RelationID,
		now.UnixNano(),
		now.UnixNano(),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isSQLiteUniqueViolation(err) {
			return nil, shortener.ErrDuplicate
		}

		return nil, err
	}

	return fields.Link(id, now), nil
}

func (s *SQLiteStore) FindByHash(ctx context.Context, hash shortener.Hash) (*shortener.ShortLink, error) {
	query := `
		SELECT id, hash, url, expires_at, expires, relation_type, relation_id, created_at
		FROM short_links
		WHERE hash = ?
	`

	var (
		link         shortener.ShortLink
		hashText     string
		expiresAt    sql.NullInt64
		relationType sql.NullString
		relationID   sql.NullInt64
		createdAt    int64
	)

	err := s.db.QueryRowContext(ctx, query, string(hash)).Scan(
		&link.ID,
		&hashText,
		&link.URL,
		&expiresAt,
		&link.Expires,
		&relationType,
		&relationID,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	link.Hash = shortener.Hash(hashText)
	link.CreatedAt = time.Unix(0, createdAt).UTC()
	link.RelationType = relationType.String

	if expiresAt.Valid {
		t := time.Unix(0, expiresAt.Int64).UTC()
		link.ExpiresAt = &t
	}

	if relationID.Valid {
		id := relationID.Int64
		link.RelationID = &id
	}

	return &link, nil
}

// Ping checks database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Shutdown closes the database.
func (s *SQLiteStore) Shutdown() error {
	return s.db.Close()
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	code := sqliteErr.Code()

	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func unixNanos(t *time.Time) *int64 {
	if t == nil {
		return nil
	}

	n := t.UnixNano()

	return &n
}

var _ shortener.Repository = (*SQLiteStore)(nil)
