package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
	"github.com/anuranjan87/7wink/internal/store"
)

// EnquiryService owns the append-only enquiry ledger.
type EnquiryService struct {
	enquiryStore  store.EnquiryStore
	tenantService *TenantService
	logger        *zap.Logger
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(enquiryStore store.EnquiryStore, tenantService *TenantService, logger *zap.Logger) *EnquiryService {
	return &EnquiryService{
		enquiryStore:  enquiryStore,
		tenantService: tenantService,
		logger:        logger,
	}
}

// Record appends one form submission for the tenant
func (s *EnquiryService) Record(ctx context.Context, slug, contact, body string) error {
	if _, err := s.tenantService.Get(ctx, slug); err != nil {
		return err
	}

	if err := s.enquiryStore.RecordEnquiry(ctx, slug, contact, body); err != nil {
		return fmt.Errorf("failed to record enquiry: %w", err)
	}

	s.logger.Info("recorded enquiry", zap.String("slug", slug))
	return nil
}

// List returns the tenant's enquiries, newest first
func (s *EnquiryService) List(ctx context.Context, slug string) ([]*model.Enquiry, error) {
	if _, err := s.tenantService.Get(ctx, slug); err != nil {
		return nil, err
	}

	return s.enquiryStore.ListEnquiries(ctx, slug)
}
