package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/analytics"
	analyticsstore "github.com/serroba/shortlink/internal/analytics/store"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

const consumerGroupName = "analytics"

// PublisherGroupPackage provides the event publisher selected by Options.Broker.
func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*gochannel.GoChannel, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		return messaging.NewMemoryPubSub(messaging.NewZapLogger(logger)), nil
	})

	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var publisher message.Publisher

		switch opts.Broker {
		case BrokerMemory:
			publisher = do.MustInvoke[*gochannel.GoChannel](i)
		case BrokerRedis:
			redisPublisher, err := messaging.NewRedisPublisher(do.MustInvoke[*RedisClient](i).Client, messaging.NewZapLogger(logger))
			if err != nil {
				return nil, fmt.Errorf("create redis publisher: %w", err)
			}

			publisher = redisPublisher
		default:
			return nil, fmt.Errorf("unknown broker %q", opts.Broker)
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the analytics consumers. With the memory broker
// they read the in-process channel, so only the server that publishes can consume.
func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (analytics.Store, error) {
		return analyticsstore.NewNoop(do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var subscriber message.Subscriber

		switch opts.Broker {
		case BrokerMemory:
			subscriber = do.MustInvoke[*gochannel.GoChannel](i)
		case BrokerRedis:
			redisSubscriber, err := messaging.NewRedisSubscriber(
				do.MustInvoke[*RedisClient](i).Client, consumerGroupName, messaging.NewZapLogger(logger),
			)
			if err != nil {
				return nil, fmt.Errorf("create redis subscriber: %w", err)
			}

			subscriber = redisSubscriber
		default:
			return nil, fmt.Errorf("unknown broker %q", opts.Broker)
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		for _, consumer := range analytics.Consumers(subscriber, do.MustInvoke[analytics.Store](i), logger) {
			group.Add(consumer)
		}

		return group, nil
	})
}
