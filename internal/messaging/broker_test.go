package messaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemoryPubSub_RoundTrip(t *testing.T) {
	pubSub := messaging.NewMemoryPubSub(watermill.NopLogger{})
	defer pubSub.Close()

	received := make(chan *testEvent, 1)
	consumer := messaging.NewConsumer(
		pubSub,
		"memory.topic",
		func(_ context.Context, event *testEvent) error {
			received <- event

			return nil
		},
		zap.NewNop(),
	)

	require.NoError(t, consumer.Start(context.Background()))

	publish := messaging.NewPublishFunc[testEvent](pubSub, "memory.topic")
	require.NoError(t, publish(context.Background(), &testEvent{ID: "42", Name: "memory"}))

	select {
	case event := <-received:
		assert.Equal(t, "42", event.ID)
		assert.Equal(t, "memory", event.Name)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	_ = consumer.Shutdown()
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := messaging.NewZapLogger(zap.New(core))

	logger.With(watermill.LogFields{"topic": "t"}).Info("info message", watermill.LogFields{"n": 1})
	logger.Debug("debug message", nil)
	logger.Trace("trace message", nil)
	logger.Error("error message", assert.AnError, watermill.LogFields{"k": "v"})

	require.Equal(t, 4, logs.Len())

	entries := logs.All()
	assert.Equal(t, "info message", entries[0].Message)
	assert.Equal(t, "t", entries[0].ContextMap()["topic"])
	assert.Equal(t, zap.DebugLevel, entries[2].Level)
	assert.Equal(t, zap.ErrorLevel, entries[3].Level)
	assert.Equal(t, "v", entries[3].ContextMap()["k"])
}
