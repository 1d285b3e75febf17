package container

import (
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/store"
)

// RateLimitPackage provides the create limiter. Counters live in Redis when any
// other component already depends on it, in memory otherwise.
func RateLimitPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (ratelimit.Limiter, error) {
		opts := do.MustInvoke[*Options](i)

		var counters ratelimit.Store = store.NewRateLimitMemoryStore()
		if usesRedis(opts) {
			counters = store.NewRateLimitRedisStore(do.MustInvoke[*RedisClient](i).Client)
		}

		return ratelimit.New(counters, opts.RateLimit, opts.RateLimitWindow), nil
	})
}

func usesRedis(opts *Options) bool {
	return opts.Store == StoreRedis || opts.Broker == BrokerRedis || opts.CacheTTL > 0
}
