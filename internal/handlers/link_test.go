package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"github.com/serroba/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testURL = "https://example.com"

var errStorage = errors.New("storage unavailable")

// failingRepository fails every lookup.
type failingRepository struct {
	*store.MemoryStore
}

func (failingRepository) FindByHash(context.Context, shortener.Hash) (*shortener.ShortLink, error) {
	return nil, errStorage
}

// errorPublish returns a publish function that always fails.
func errorPublish[T any](err error) messaging.Publish[T] {
	return func(context.Context, *T) error { return err }
}

func newTestHandler(repo shortener.Repository) *handlers.LinkHandler {
	service := shortener.NewService(repo, shortener.NewNanoidGenerator(), shortener.DefaultConfig())

	return handlers.NewLinkHandler(
		service,
		"http://localhost:8888",
		messaging.Discard[analytics.LinkCreatedEvent](),
		messaging.Discard[analytics.LinkResolvedEvent](),
		zap.NewNop(),
	)
}

func newTestHandlerWithPublishError(repo shortener.Repository) *handlers.LinkHandler {
	service := shortener.NewService(repo, shortener.NewNanoidGenerator(), shortener.DefaultConfig())

	return handlers.NewLinkHandler(
		service,
		"http://localhost:8888",
		errorPublish[analytics.LinkCreatedEvent](errors.New("publish error")),
		errorPublish[analytics.LinkResolvedEvent](errors.New("publish error")),
		zap.NewNop(),
	)
}

func seed(t *testing.T, memStore *store.MemoryStore, fields shortener.Fields) {
	t.Helper()

	_, err := memStore.Create(context.Background(), fields)
	require.NoError(t, err)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)

	return statusErr.GetStatus()
}

func TestCreateLink(t *testing.T) {
	t.Run("creates short link successfully", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = "https://example.com/very/long/path"

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.Len(t, resp.Body.Hash, shortener.DefaultHashLength)
		assert.Equal(t, "https://example.com/very/long/path", resp.Body.URL)
		assert.Equal(t, "http://localhost:8888/"+resp.Body.Hash, resp.Body.ShortURL)
		assert.Equal(t, resp.Body.ShortURL, resp.Headers.Location)
		assert.Nil(t, resp.Body.ExpiresAt)
	})

	t.Run("same URL gets a new hash each time", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = testURL

		resp1, err1 := handler.CreateLink(context.Background(), req)
		resp2, err2 := handler.CreateLink(context.Background(), req)

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, resp1.Body.Hash, resp2.Body.Hash)
	})

	t.Run("keeps expiry and numeric relation", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())
		expiresAt := time.Now().Add(time.Hour)

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = testURL
		req.Body.ExpiresAt = &expiresAt
		req.Body.RelationType = "campaign"
		req.Body.RelationID = "42"

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, resp.Body.ExpiresAt)
		assert.True(t, expiresAt.Equal(*resp.Body.ExpiresAt))
		assert.Equal(t, "campaign", resp.Body.RelationType)
		require.NotNil(t, resp.Body.RelationID)
		assert.Equal(t, int64(42), *resp.Body.RelationID)
	})

	t.Run("drops a non-numeric relation and still creates", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = testURL
		req.Body.RelationType = "campaign"
		req.Body.RelationID = "abc"

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.Empty(t, resp.Body.RelationType)
		assert.Nil(t, resp.Body.RelationID)
	})

	t.Run("returns 422 for an invalid URL", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = "not a url"

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	})

	t.Run("returns 500 on store error", func(t *testing.T) {
		handler := newTestHandler(failingRepository{store.NewMemoryStore()})

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = testURL

		resp, err := handler.CreateLink(context.Background(), req)

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		handler := newTestHandlerWithPublishError(store.NewMemoryStore())

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = testURL

		resp, err := handler.CreateLink(context.Background(), req)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Body.Hash)
	})

	t.Run("publishes request metadata with the created event", func(t *testing.T) {
		var got *analytics.LinkCreatedEvent

		service := shortener.NewService(store.NewMemoryStore(), shortener.NewNanoidGenerator(), shortener.DefaultConfig())
		handler := handlers.NewLinkHandler(
			service,
			"http://localhost:8888",
			func(_ context.Context, event *analytics.LinkCreatedEvent) error {
				got = event

				return nil
			},
			messaging.Discard[analytics.LinkResolvedEvent](),
			zap.NewNop(),
		)

		ctx := handlers.ContextWithRequestMeta(context.Background(), handlers.RequestMeta{
			ClientIP:  "192.168.1.1",
			UserAgent: "TestAgent/1.0",
		})

		req := &handlers.CreateLinkRequest{}
		req.Body.URL = testURL

		resp, err := handler.CreateLink(ctx, req)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, resp.Body.Hash, got.Hash)
		assert.Equal(t, "192.168.1.1", got.ClientIP)
		assert.Equal(t, "TestAgent/1.0", got.UserAgent)
	})
}

func TestRedirectToURL(t *testing.T) {
	t.Run("redirects to original url", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seed(t, memStore, shortener.Fields{URL: testURL, Hash: "abc12"})
		handler := newTestHandler(memStore)

		resp, err := handler.RedirectToURL(context.Background(), &handlers.HashRequest{Hash: "abc12"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.Status)
		assert.Equal(t, testURL, resp.Headers.Location)
	})

	t.Run("returns 404 when hash not found", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		resp, err := handler.RedirectToURL(context.Background(), &handlers.HashRequest{Hash: "nope1"})

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("returns 404 when link expired", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		past := time.Now().Add(-time.Minute)
		seed(t, memStore, shortener.Fields{URL: testURL, Hash: "old12", ExpiresAt: &past, Expires: true})
		handler := newTestHandler(memStore)

		resp, err := handler.RedirectToURL(context.Background(), &handlers.HashRequest{Hash: "old12"})

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})

	t.Run("returns 500 on store error", func(t *testing.T) {
		handler := newTestHandler(failingRepository{store.NewMemoryStore()})

		resp, err := handler.RedirectToURL(context.Background(), &handlers.HashRequest{Hash: "abc12"})

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	})

	t.Run("succeeds even when publish fails", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seed(t, memStore, shortener.Fields{URL: testURL, Hash: "abc12"})
		handler := newTestHandlerWithPublishError(memStore)

		resp, err := handler.RedirectToURL(context.Background(), &handlers.HashRequest{Hash: "abc12"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusMovedPermanently, resp.Status)
	})
}

func TestGetLink(t *testing.T) {
	t.Run("returns link metadata", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		seed(t, memStore, shortener.Fields{URL: testURL, Hash: "abc12"})
		handler := newTestHandler(memStore)

		resp, err := handler.GetLink(context.Background(), &handlers.HashRequest{Hash: "abc12"})

		require.NoError(t, err)
		assert.Equal(t, "abc12", resp.Body.Hash)
		assert.Equal(t, testURL, resp.Body.URL)
		assert.False(t, resp.Body.CreatedAt.IsZero())
	})

	t.Run("returns 404 when hash not found", func(t *testing.T) {
		handler := newTestHandler(store.NewMemoryStore())

		resp, err := handler.GetLink(context.Background(), &handlers.HashRequest{Hash: "nope1"})

		assert.Nil(t, resp)
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})
}

func TestContextWithRequestMeta(t *testing.T) {
	meta := handlers.RequestMeta{
		ClientIP:  "192.168.1.1",
		UserAgent: "TestAgent/1.0",
		Referrer:  "https://referrer.com",
	}
	ctx := handlers.ContextWithRequestMeta(context.Background(), meta)

	assert.Equal(t, meta, handlers.RequestMetaFromContext(ctx))
	assert.Equal(t, handlers.RequestMeta{}, handlers.RequestMetaFromContext(context.Background()))
}

func TestRegisterRoutes(t *testing.T) {
	_, api := humatest.New(t)
	handlers.RegisterRoutes(api, newTestHandler(store.NewMemoryStore()))

	created := api.Post("/links", map[string]any{"url": testURL})
	require.Equal(t, http.StatusCreated, created.Code)

	location := created.Header().Get("Location")
	require.NotEmpty(t, location)

	hash := location[len("http://localhost:8888/"):]

	redirect := api.Get("/" + hash)
	assert.Equal(t, http.StatusMovedPermanently, redirect.Code)
	assert.Equal(t, testURL, redirect.Header().Get("Location"))

	meta := api.Get("/links/" + hash)
	assert.Equal(t, http.StatusOK, meta.Code)
	assert.Contains(t, meta.Body.String(), `"hash":"`+hash+`"`)

	missing := api.Get("/links/zzzzz")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}
