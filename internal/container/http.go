package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/ratelimit"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(i, func(i *do.Injector) (*health.Handler, error) {
		return health.NewHandler(healthCheckers(i), do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(i, func(i *do.Injector) (*handlers.LinkHandler, error) {
		opts := do.MustInvoke[*Options](i)
		publisher := do.MustInvoke[*messaging.PublisherGroup](i).Publisher()

		return handlers.NewLinkHandler(
			do.MustInvoke[*shortener.Service](i),
			opts.PublicBaseURL(),
			messaging.NewPublishFunc[analytics.LinkCreatedEvent](publisher, analytics.TopicLinkCreated),
			messaging.NewPublishFunc[analytics.LinkResolvedEvent](publisher, analytics.TopicLinkResolved),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		api := humachi.New(router, huma.DefaultConfig("Short Links", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.RateLimiter(api, do.MustInvoke[ratelimit.Limiter](i), logger))

		health.RegisterRoutes(api, do.MustInvoke[*health.Handler](i))
		handlers.RegisterRoutes(api, do.MustInvoke[*handlers.LinkHandler](i))

		return api, nil
	})
}

func healthCheckers(i *do.Injector) map[string]health.Checker {
	opts := do.MustInvoke[*Options](i)
	checkers := make(map[string]health.Checker)

	if usesRedis(opts) {
		checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*RedisClient](i).Client)
	}

	switch opts.Store {
	case StorePostgres:
		checkers["postgres"] = health.CheckerFunc(do.MustInvoke[*store.PostgresStore](i).Ping)
	case StoreSQLite:
		checkers["sqlite"] = health.CheckerFunc(do.MustInvoke[*store.SQLiteStore](i).Ping)
	}

	return checkers
}
