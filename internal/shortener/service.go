package shortener

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreateRequest describes a link to create. RelationID is kept as text because
// callers hand it over unparsed; a non-numeric value drops the relation.
type CreateRequest struct {
	URL          string `validate:"required,url"`
	ExpiresAt    *time.Time
	RelationType string
	RelationID   string
}

// Service creates unique short links and resolves them back to URLs.
type Service struct {
	mu        sync.RWMutex
	repo      Repository
	generator Generator
	config    Config
	observers *Observers
	validate  *validator.Validate
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithObservers attaches the registry notified before each write.
func WithObservers(observers *Observers) Option {
	return func(s *Service) {
		s.observers = observers
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a shortener service. Non-positive HashLength or
// MaxAttempts fall back to the defaults.
func NewService(repo Repository, generator Generator, config Config, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		generator: generator,
		config:    config.normalized(),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Config returns the current configuration.
func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config
}

// SetHashLength changes the length of the first candidate for later calls.
func (s *Service) SetHashLength(length int) {
	s.update(func(c *Config) { c.HashLength = length })
}

// SetMaxAttempts changes how many candidates are tried per length.
func (s *Service) SetMaxAttempts(attempts int) {
	s.update(func(c *Config) { c.MaxAttempts = attempts })
}

// SetMaxHashLength sets the length guard. Zero disables it.
func (s *Service) SetMaxHashLength(length int) {
	s.update(func(c *Config) { c.MaxHashLength = length })
}

// SetMaxTotalAttempts sets the total candidate guard. Zero disables it.
func (s *Service) SetMaxTotalAttempts(attempts int) {
	s.update(func(c *Config) { c.MaxTotalAttempts = attempts })
}

// SetRepository swaps the repository used by later calls.
func (s *Service) SetRepository(repo Repository) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.repo = repo
}

// SetGenerator swaps the generator used by later calls.
func (s *Service) SetGenerator(generator Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generator = generator
}

func (s *Service) update(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.config
	fn(&cfg)
	s.config = cfg.normalized()
}

func (s *Service) snapshot() (Repository, Generator, Config) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.repo, s.generator, s.config
}

// Create generates a hash no live link owns, notifies observers and persists
// the link. Collisions, including duplicates reported by the repository on
// write, are retried; after MaxAttempts collisions at one length the length
// grows by one. Repository failures are returned unchanged.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ShortLink, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, req.URL)
	}

	repo, generator, cfg := s.snapshot()

	fields := Fields{
		URL:       req.URL,
		ExpiresAt: req.ExpiresAt,
		Expires:   req.ExpiresAt != nil,
	}
	fields.RelationType, fields.RelationID = s.relation(req)

	event := CreatingEvent(repo.EntityName())
	length, tries, total := cfg.HashLength, 0, 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if cfg.MaxTotalAttempts > 0 && total >= cfg.MaxTotalAttempts {
			return nil, fmt.Errorf("%w: %d candidates tried", ErrExhausted, total)
		}

		if cfg.MaxHashLength > 0 && length > cfg.MaxHashLength {
			return nil, fmt.Errorf("%w: length %d exceeds %d", ErrExhausted, length, cfg.MaxHashLength)
		}

		candidate, err := generator.Generate(length)
		if err != nil {
			return nil, fmt.Errorf("generate hash: %w", err)
		}

		total++
		fields.Hash = Hash(candidate)

		link, err := s.tryCreate(ctx, repo, event, fields)
		if err == nil {
			return link, nil
		}

		if !errors.Is(err, errCollision) {
			return nil, err
		}

		tries++
		if tries >= cfg.MaxAttempts {
			length++
			tries = 0
		}
	}
}

func (s *Service) tryCreate(ctx context.Context, repo Repository, event string, fields Fields) (*ShortLink, error) {
	free, err := available(ctx, repo, fields.Hash)
	if err != nil {
		return nil, err
	}

	if !free {
		return nil, errCollision
	}

	s.observers.Publish(ctx, event, fields)

	link, err := repo.Create(ctx, fields)
	if errors.Is(err, ErrDuplicate) {
		s.logger.Debug("hash taken on write, retrying", zap.String("hash", string(fields.Hash)))

		return nil, errCollision
	}

	return link, err
}

func available(ctx context.Context, repo Repository, hash Hash) (bool, error) {
	link, err := repo.FindByHash(ctx, hash)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}

	if err != nil {
		return false, err
	}

	return repo.IsExpired(link), nil
}

// relation keeps the relation only when both parts are present and the id is numeric.
func (s *Service) relation(req CreateRequest) (string, *int64) {
	relationType := strings.TrimSpace(req.RelationType)
	rawID := strings.TrimSpace(req.RelationID)

	if relationType == "" && rawID == "" {
		return "", nil
	}

	if rawID == "" {
		s.logger.Debug("relation type without id, dropping relation",
			zap.String("url", req.URL),
			zap.String("relationType", relationType),
		)

		return "", nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		s.logger.Warn("relation id was not numeric, dropping relation",
			zap.String("url", req.URL),
			zap.String("relationType", relationType),
			zap.String("relationId", req.RelationID),
		)

		return "", nil
	}

	if relationType == "" {
		s.logger.Debug("relation id without type, dropping relation",
			zap.String("url", req.URL),
			zap.Int64("relationId", id),
		)

		return "", nil
	}

	return relationType, &id
}

// Lookup returns the live link for hash. Absent and expired links yield ErrNotFound.
func (s *Service) Lookup(ctx context.Context, hash Hash) (*ShortLink, error) {
	repo, _, _ := s.snapshot()

	link, err := repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if repo.IsExpired(link) {
		return nil, ErrNotFound
	}

	return link, nil
}

// Resolve returns the URL stored for hash. Absent and expired links yield ErrNotFound.
func (s *Service) Resolve(ctx context.Context, hash Hash) (string, error) {
	link, err := s.Lookup(ctx, hash)
	if err != nil {
		return "", err
	}

	return link.URL, nil
}
