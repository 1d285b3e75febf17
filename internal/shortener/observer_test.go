package shortener_test

import (
	"context"
	"testing"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
)

func TestCreatingEvent(t *testing.T) {
	assert.Equal(t, "ShortLink.creating", shortener.CreatingEvent("ShortLink"))
}

func TestObservers(t *testing.T) {
	t.Run("calls observers of the event in order", func(t *testing.T) {
		observers := shortener.NewObservers()

		var calls []string

		observers.Subscribe("a", func(_ context.Context, f shortener.Fields) { calls = append(calls, "first:"+f.URL) })
		observers.Subscribe("a", func(_ context.Context, f shortener.Fields) { calls = append(calls, "second:"+f.URL) })
		observers.Subscribe("b", func(_ context.Context, _ shortener.Fields) { calls = append(calls, "other") })

		observers.Publish(context.Background(), "a", shortener.Fields{URL: "u"})

		assert.Equal(t, []string{"first:u", "second:u"}, calls)
	})

	t.Run("publishing without observers is a no-op", func(t *testing.T) {
		observers := shortener.NewObservers()

		assert.NotPanics(t, func() {
			observers.Publish(context.Background(), "none", shortener.Fields{})
		})
	})

	t.Run("nil registry drops notifications", func(t *testing.T) {
		var observers *shortener.Observers

		assert.NotPanics(t, func() {
			observers.Publish(context.Background(), "a", shortener.Fields{})
		})
	})
}
