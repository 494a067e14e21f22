package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/assembly"
	"github.com/anuranjan87/7wink/internal/model"
	"github.com/anuranjan87/7wink/internal/store"
)

// ContentService owns the layered content history: publish, read, restore
// and the assembled render path.
type ContentService struct {
	contentStore store.ContentStore
	renderCache  store.RenderCache
	renderTTL    time.Duration
	logger       *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(
	contentStore store.ContentStore,
	renderCache store.RenderCache,
	renderTTL time.Duration,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		contentStore: contentStore,
		renderCache:  renderCache,
		renderTTL:    renderTTL,
		logger:       logger,
	}
}

// Publish appends a new version. Last writer wins: whatever was appended
// most recently is the live document, there is no merging.
func (s *ContentService) Publish(ctx context.Context, slug, shell, behavior, payload string) (*model.ContentVersion, error) {
	version, err := s.contentStore.Append(ctx, slug, shell, behavior, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to publish: %w", err)
	}

	s.logger.Info("published version",
		zap.String("slug", slug),
		zap.Int64("sequence", version.Sequence))

	s.invalidateRender(ctx, slug)

	return version, nil
}

// GetLatest returns the current version for a tenant
func (s *ContentService) GetLatest(ctx context.Context, slug string) (*model.ContentVersion, error) {
	return s.contentStore.GetLatest(ctx, slug)
}

// GetHistory returns every version, newest first
func (s *ContentService) GetHistory(ctx context.Context, slug string) ([]*model.ContentVersion, error) {
	return s.contentStore.GetHistory(ctx, slug)
}

// Restore re-publishes the layers of an old version as a new version.
// History is never rewound: the restored content simply becomes the
// newest entry with a fresh sequence.
func (s *ContentService) Restore(ctx context.Context, slug string, sequence int64) (*model.ContentVersion, error) {
	old, err := s.contentStore.GetBySequence(ctx, slug, sequence)
	if err != nil {
		return nil, err
	}

	version, err := s.contentStore.Append(ctx, slug, old.Shell, old.Behavior, old.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to restore: %w", err)
	}

	s.logger.Info("restored version",
		zap.String("slug", slug),
		zap.Int64("from_sequence", sequence),
		zap.Int64("new_sequence", version.Sequence))

	s.invalidateRender(ctx, slug)

	return version, nil
}

// Render returns the assembled document for the tenant's current version,
// serving from the render cache when warm.
func (s *ContentService) Render(ctx context.Context, slug string) (string, error) {
	if document, err := s.renderCache.Get(ctx, slug); err == nil {
		return document, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("render cache read failed",
			zap.String("slug", slug),
			zap.Error(err))
	}

	version, err := s.contentStore.GetLatest(ctx, slug)
	if err != nil {
		return "", err
	}

	document := assembly.Assemble(version)

	if err := s.renderCache.Set(ctx, slug, document, s.renderTTL); err != nil {
		s.logger.Warn("render cache write failed",
			zap.String("slug", slug),
			zap.Error(err))
	}

	return document, nil
}

// invalidateRender drops the cached document after any write. A stale
// cache entry would serve the previous version until TTL expiry.
func (s *ContentService) invalidateRender(ctx context.Context, slug string) {
	if err := s.renderCache.Invalidate(ctx, slug); err != nil {
		s.logger.Warn("failed to invalidate render cache",
			zap.String("slug", slug),
			zap.Error(err))
	}
}
