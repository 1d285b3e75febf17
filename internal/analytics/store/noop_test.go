package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewNoop(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	assert.NotNil(t, noop)
}

func TestNoop_SaveLinkCreating(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	noop := store.NewNoop(zap.New(core))

	err := noop.SaveLinkCreating(context.Background(), &analytics.LinkCreatingEvent{
		Entity: "ShortLink",
		Hash:   "abc12",
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc12", logs.All()[0].ContextMap()["hash"])
}

func TestNoop_SaveLinkCreated(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	event := &analytics.LinkCreatedEvent{
		Hash:      "abc12",
		URL:       "https://example.com",
		CreatedAt: time.Now(),
	}

	err := noop.SaveLinkCreated(context.Background(), event)

	require.NoError(t, err)
}

func TestNoop_SaveLinkResolved(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	event := &analytics.LinkResolvedEvent{
		Hash:       "abc12",
		ResolvedAt: time.Now(),
		ClientIP:   "127.0.0.1",
		UserAgent:  "TestAgent/1.0",
		Referrer:   "https://referrer.com",
	}

	err := noop.SaveLinkResolved(context.Background(), event)

	require.NoError(t, err)
}
