package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/analytics"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// LinkHandler handles short link operations.
type LinkHandler struct {
	service         *shortener.Service
	baseURL         string
	publishCreated  messaging.Publish[analytics.LinkCreatedEvent]
	publishResolved messaging.Publish[analytics.LinkResolvedEvent]
	logger          *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	service *shortener.Service,
	baseURL string,
	publishCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishResolved messaging.Publish[analytics.LinkResolvedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		service:         service,
		baseURL:         baseURL,
		publishCreated:  publishCreated,
		publishResolved: publishResolved,
		logger:          logger,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	link, err := h.service.Create(ctx, shortener.CreateRequest{
		URL:          req.Body.URL,
		ExpiresAt:    req.Body.ExpiresAt,
		RelationType: req.Body.RelationType,
		RelationID:   req.Body.RelationID,
	})
	if err != nil {
		return nil, h.toHTTPError("create link", err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		Hash:         string(link.Hash),
		URL:          link.URL,
		ExpiresAt:    link.ExpiresAt,
		RelationType: link.RelationType,
		RelationID:   link.RelationID,
		CreatedAt:    link.CreatedAt,
		ClientIP:     meta.ClientIP,
		UserAgent:    meta.UserAgent,
	}

	if err := h.publishCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish analytics event",
			zap.String("hash", event.Hash),
			zap.Error(err),
		)
	}

	resp := &CreateLinkResponse{Body: h.body(link)}
	resp.Headers.Location = resp.Body.ShortURL

	return resp, nil
}

func (h *LinkHandler) RedirectToURL(ctx context.Context, req *HashRequest) (*RedirectResponse, error) {
	url, err := h.service.Resolve(ctx, shortener.Hash(req.Hash))
	if err != nil {
		return nil, h.toHTTPError("resolve link", err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkResolvedEvent{
		Hash:       req.Hash,
		ResolvedAt: time.Now(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
	}

	if err = h.publishResolved(ctx, event); err != nil {
		h.logger.Error("failed to publish access event",
			zap.String("hash", event.Hash),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = url

	return resp, nil
}

func (h *LinkHandler) GetLink(ctx context.Context, req *HashRequest) (*GetLinkResponse, error) {
	link, err := h.service.Lookup(ctx, shortener.Hash(req.Hash))
	if err != nil {
		return nil, h.toHTTPError("lookup link", err)
	}

	return &GetLinkResponse{Body: h.body(link)}, nil
}

func (h *LinkHandler) body(link *shortener.ShortLink) LinkBody {
	return LinkBody{
		Hash:         string(link.Hash),
		ShortURL:     fmt.Sprintf("%s/%s", h.baseURL, link.Hash),
		URL:          link.URL,
		ExpiresAt:    link.ExpiresAt,
		RelationType: link.RelationType,
		RelationID:   link.RelationID,
		CreatedAt:    link.CreatedAt,
	}
}

func (h *LinkHandler) toHTTPError(op string, err error) error {
	switch {
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound("short link not found")
	case errors.Is(err, shortener.ErrInvalidURL):
		return huma.Error422UnprocessableEntity(err.Error())
	}

	h.logger.Error("link operation failed", zap.String("op", op), zap.Error(err))

	return huma.Error500InternalServerError("failed to " + op)
}
