package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/messaging"
	"go.uber.org/zap"
)

// Consumers builds one consumer per analytics topic, each persisting into store.
func Consumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[LinkCreatingEvent](subscriber, TopicLinkCreating, store.SaveLinkCreating, logger),
		messaging.NewConsumer[LinkCreatedEvent](subscriber, TopicLinkCreated, store.SaveLinkCreated, logger),
		messaging.NewConsumer[LinkResolvedEvent](subscriber, TopicLinkResolved, store.SaveLinkResolved, logger),
	}
}
