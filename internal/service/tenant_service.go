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

// TenantService manages tenant registration and storage provisioning
type TenantService struct {
	registry     store.RegistryStore
	contentStore store.ContentStore
	cache        store.TenantCache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(
	registry store.RegistryStore,
	contentStore store.ContentStore,
	cache store.TenantCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		registry:     registry,
		contentStore: contentStore,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Register normalizes the raw name, records the slug in the registry and
// provisions the tenant's storage. The two phases are separable on
// purpose: a crash between registry insert and seeding leaves a tenant
// that Provision repairs on the next call.
func (s *TenantService) Register(ctx context.Context, rawName string) (*model.Tenant, error) {
	slug := model.NormalizeSlug(rawName)
	if slug == "" {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidName, rawName)
	}

	tenant := &model.Tenant{
		Slug:      slug,
		CreatedAt: time.Now(),
	}

	if err := s.registry.CreateTenant(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to register tenant: %w", err)
	}

	if err := s.provisionStorage(ctx, slug); err != nil {
		return nil, err
	}

	s.logger.Info("registered tenant", zap.String("slug", slug))

	if err := s.cache.Set(ctx, slug, tenant, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache tenant",
			zap.String("slug", slug),
			zap.Error(err))
	}

	return tenant, nil
}

// Provision makes sure the tenant's storage regions exist and hold a seed
// version. Idempotent: an already-provisioned tenant is left untouched.
// The name goes through the same normalization as Register so both entry
// points agree on the slug.
func (s *TenantService) Provision(ctx context.Context, rawName string) (*model.Tenant, error) {
	slug := model.NormalizeSlug(rawName)
	if slug == "" {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidName, rawName)
	}

	tenant := &model.Tenant{
		Slug:      slug,
		CreatedAt: time.Now(),
	}

	err := s.registry.CreateTenant(ctx, tenant)
	if err != nil && !errors.Is(err, store.ErrTenantExists) {
		return nil, fmt.Errorf("failed to provision tenant: %w", err)
	}
	if errors.Is(err, store.ErrTenantExists) {
		existing, getErr := s.registry.GetTenant(ctx, slug)
		if getErr != nil {
			return nil, fmt.Errorf("failed to load existing tenant: %w", getErr)
		}
		tenant = existing
	}

	if err := s.provisionStorage(ctx, slug); err != nil {
		return nil, err
	}

	return tenant, nil
}

// provisionStorage writes the seed version unless the tenant already has
// content. Event ledgers need no per-tenant setup: they are shared tables
// keyed by slug.
func (s *TenantService) provisionStorage(ctx context.Context, slug string) error {
	_, err := s.contentStore.GetLatest(ctx, slug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrVersionNotFound) {
		return fmt.Errorf("failed to check existing content: %w", err)
	}

	if _, err := s.contentStore.Append(ctx, slug, seedShell(slug), seedBehavior, seedPayload(slug)); err != nil {
		return fmt.Errorf("failed to write seed version: %w", err)
	}

	s.logger.Info("provisioned tenant storage", zap.String("slug", slug))
	return nil
}

// Get retrieves a tenant, using cache if available
func (s *TenantService) Get(ctx context.Context, slug string) (*model.Tenant, error) {
	if tenant, err := s.cache.Get(ctx, slug); err == nil {
		return tenant, nil
	}

	tenant, err := s.registry.GetTenant(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, slug, tenant, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache tenant",
			zap.String("slug", slug),
			zap.Error(err))
	}

	return tenant, nil
}

// List retrieves all tenants, newest first
func (s *TenantService) List(ctx context.Context) ([]*model.Tenant, error) {
	return s.registry.ListTenants(ctx)
}

// seedShell is the placeholder site every tenant starts with.
func seedShell(slug string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; }
.container { background: rgba(255,255,255,0.1); padding: 30px; border-radius: 10px; }
h1 { text-align: center; }
</style>
</head>
<body>
<div class="container">
<h1>Welcome to %s</h1>
<p>This site was just created. Open the editor to make it yours.</p>
<div id="sections"></div>
</div>
%s
%s
</body>
</html>`, slug, slug, assembly.DataMarker, assembly.BehaviorMarker)
}

const seedBehavior = ""

func seedPayload(slug string) string {
	return fmt.Sprintf(`{"owner":%q,"sections":[]}`, slug)
}
