package container

import (
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// ShortenerPackage provides the shortener service. Creating notifications are
// bridged onto the event bus.
func ShortenerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*shortener.Observers, error) {
		publishers := do.MustInvoke[*messaging.PublisherGroup](i)
		repo := do.MustInvoke[shortener.Repository](i)
		logger := do.MustInvoke[*zap.Logger](i)

		observers := shortener.NewObservers()
		analytics.BridgeCreating(
			observers,
			repo.EntityName(),
			messaging.NewPublishFunc[analytics.LinkCreatingEvent](publishers.Publisher(), analytics.TopicLinkCreating),
			logger,
		)

		return observers, nil
	})

	do.Provide(i, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		config := shortener.DefaultConfig()
		config.HashLength = opts.HashLength
		config.MaxAttempts = opts.MaxAttempts
		config.MaxHashLength = opts.MaxHashLength

		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			shortener.NewNanoidGenerator(),
			config,
			shortener.WithObservers(do.MustInvoke[*shortener.Observers](i)),
			shortener.WithLogger(logger.Named("shortener")),
		), nil
	})
}
