package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// RedisClient is the shared Redis connection.
type RedisClient struct {
	*redis.Client
}

// Shutdown closes the connection.
func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// PostgresPool is the shared PostgreSQL connection pool.
type PostgresPool struct {
	*pgxpool.Pool
}

// Shutdown closes the pool.
func (p *PostgresPool) Shutdown() error {
	p.Close()

	return nil
}

// RedisPackage provides the Redis client. The connection is lazy; nothing dials
// until a component uses it.
func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		return &RedisClient{redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

// PostgresPackage provides the PostgreSQL pool and link store, creating the schema on first use.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*PostgresPool, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return &PostgresPool{pool}, nil
	})

	do.Provide(i, func(i *do.Injector) (*store.PostgresStore, error) {
		pool, err := do.Invoke[*PostgresPool](i)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		pgStore := store.NewPostgresStore(pool.Pool)
		if err := pgStore.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		do.MustInvoke[*zap.Logger](i).Info("postgres store ready")

		return pgStore, nil
	})
}

// SQLitePackage provides the SQLite link store.
func SQLitePackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*store.SQLiteStore, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		db, err := store.OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}

		do.MustInvoke[*zap.Logger](i).Info("sqlite store ready", zap.String("path", opts.SQLitePath))

		return store.NewSQLiteStore(db), nil
	})
}
