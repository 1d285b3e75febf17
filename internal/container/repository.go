package container

import (
	"fmt"

	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// RepositoryPackage provides the shortener.Repository selected by Options.Store.
// SQL stores are fronted by the Redis cache when CacheTTL is positive.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var (
			repo shortener.Repository
			err  error
		)

		switch opts.Store {
		case StoreMemory:
			repo = store.NewMemoryStore()
		case StoreSQLite:
			repo, err = do.Invoke[*store.SQLiteStore](i)
		case StorePostgres:
			repo, err = do.Invoke[*store.PostgresStore](i)
		case StoreRedis:
			repo = store.NewRedisStore(do.MustInvoke[*RedisClient](i).Client)
		default:
			return nil, fmt.Errorf("unknown store %q", opts.Store)
		}

		if err != nil {
			return nil, err
		}

		if opts.CacheTTL > 0 && (opts.Store == StoreSQLite || opts.Store == StorePostgres) {
			logger.Info("caching lookups in redis", zap.Duration("ttl", opts.CacheTTL))

			repo = store.NewRedisCacheRepository(repo, do.MustInvoke[*RedisClient](i).Client, opts.CacheTTL)
		}

		logger.Info("link store selected", zap.String("store", opts.Store))

		return repo, nil
	})
}
