package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
	"github.com/anuranjan87/7wink/internal/store"
)

// TemplateService exposes the shared template catalog and clones bundles
// into tenants.
type TemplateService struct {
	templateStore store.TemplateStore
	tenantService *TenantService
	contentSvc    *ContentService
	logger        *zap.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(
	templateStore store.TemplateStore,
	tenantService *TenantService,
	contentSvc *ContentService,
	logger *zap.Logger,
) *TemplateService {
	return &TemplateService{
		templateStore: templateStore,
		tenantService: tenantService,
		contentSvc:    contentSvc,
		logger:        logger,
	}
}

// List returns catalog metadata for all templates
func (s *TemplateService) List(ctx context.Context) ([]*model.Template, error) {
	return s.templateStore.ListTemplates(ctx)
}

// CloneInto copies a template's layers into the tenant as a new version.
// At the storage level this is an ordinary publish; only the caller's
// intent distinguishes it. The template row is never touched.
//
// provisionMissing decides what happens when the target tenant does not
// exist: false fails with ErrTenantNotFound, true registers and seeds the
// tenant first.
func (s *TemplateService) CloneInto(ctx context.Context, templateID int64, rawName string, provisionMissing bool) (*model.ContentVersion, error) {
	// Normalize up front so the lookup, the provisioning and the publish
	// all address the same tenant.
	slug := model.NormalizeSlug(rawName)
	if slug == "" {
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidName, rawName)
	}

	tpl, err := s.templateStore.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if _, err := s.tenantService.Get(ctx, slug); err != nil {
		if !errors.Is(err, store.ErrTenantNotFound) {
			return nil, fmt.Errorf("failed to look up tenant: %w", err)
		}
		if !provisionMissing {
			return nil, err
		}
		if _, err := s.tenantService.Provision(ctx, slug); err != nil {
			return nil, err
		}
	}

	version, err := s.contentSvc.Publish(ctx, slug, tpl.Shell, tpl.Behavior, tpl.Payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("cloned template",
		zap.Int64("template_id", templateID),
		zap.String("slug", slug),
		zap.Int64("sequence", version.Sequence))

	return version, nil
}
