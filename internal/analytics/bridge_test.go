package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBridgeCreating(t *testing.T) {
	t.Run("forwards creating fields as an event", func(t *testing.T) {
		observers := shortener.NewObservers()

		var got *analytics.LinkCreatingEvent

		publish := func(_ context.Context, event *analytics.LinkCreatingEvent) error {
			got = event

			return nil
		}

		analytics.BridgeCreating(observers, "ShortLink", publish, zap.NewNop())

		expiresAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		relationID := int64(7)

		observers.Publish(context.Background(), shortener.CreatingEvent("ShortLink"), shortener.Fields{
			URL:          "https://example.com",
			Hash:         "abc12",
			ExpiresAt:    &expiresAt,
			Expires:      true,
			RelationType: "campaign",
			RelationID:   &relationID,
		})

		require.NotNil(t, got)
		assert.Equal(t, "ShortLink", got.Entity)
		assert.Equal(t, "abc12", got.Hash)
		assert.Equal(t, "https://example.com", got.URL)
		assert.True(t, got.Expires)
		assert.Equal(t, &expiresAt, got.ExpiresAt)
		assert.Equal(t, "campaign", got.RelationType)
		assert.Equal(t, int64(7), *got.RelationID)
		assert.False(t, got.ObservedAt.IsZero())
	})

	t.Run("ignores other entities", func(t *testing.T) {
		observers := shortener.NewObservers()
		calls := 0

		publish := func(context.Context, *analytics.LinkCreatingEvent) error {
			calls++

			return nil
		}

		analytics.BridgeCreating(observers, "ShortLink", publish, zap.NewNop())

		observers.Publish(context.Background(), shortener.CreatingEvent("Other"), shortener.Fields{Hash: "x"})

		assert.Zero(t, calls)
	})

	t.Run("logs publish failures without panicking", func(t *testing.T) {
		observers := shortener.NewObservers()
		core, logs := observer.New(zap.ErrorLevel)

		publish := func(context.Context, *analytics.LinkCreatingEvent) error {
			return assert.AnError
		}

		analytics.BridgeCreating(observers, "ShortLink", publish, zap.New(core))

		observers.Publish(context.Background(), shortener.CreatingEvent("ShortLink"), shortener.Fields{Hash: "abc12"})

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "failed to publish creating event", logs.All()[0].Message)
		assert.Equal(t, "abc12", logs.All()[0].ContextMap()["hash"])
	})
}
