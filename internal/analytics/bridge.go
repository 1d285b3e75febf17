package analytics

import (
	"context"
	"time"

	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// BridgeCreating forwards creating notifications for entity to the message bus.
// Publish failures are logged; creation never waits on or fails because of the bus.
func BridgeCreating(
	observers *shortener.Observers,
	entity string,
	publish messaging.Publish[LinkCreatingEvent],
	logger *zap.Logger,
) {
	observers.Subscribe(shortener.CreatingEvent(entity), func(ctx context.Context, fields shortener.Fields) {
		event := &LinkCreatingEvent{
			Entity:       entity,
			Hash:         string(fields.Hash),
			URL:          fields.URL,
			ExpiresAt:    fields.ExpiresAt,
			Expires:      fields.Expires,
			RelationType: fields.RelationType,
			RelationID:   fields.RelationID,
			ObservedAt:   time.Now(),
		}

		if err := publish(ctx, event); err != nil {
			logger.Error("failed to publish creating event",
				zap.String("hash", event.Hash),
				zap.Error(err),
			)
		}
	})
}
