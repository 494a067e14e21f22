// Package handler provides HTTP request handlers for the 7wink API.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apierrors "github.com/anuranjan87/7wink/internal/errors"
	"github.com/anuranjan87/7wink/internal/metrics"
	"github.com/anuranjan87/7wink/internal/service"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	tenantService    *service.TenantService
	contentService   *service.ContentService
	templateService  *service.TemplateService
	analyticsService *service.AnalyticsService
	enquiryService   *service.EnquiryService
	errorHandler     *apierrors.Handler
	metrics          *metrics.Metrics
	logger           *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	tenantService *service.TenantService,
	contentService *service.ContentService,
	templateService *service.TemplateService,
	analyticsService *service.AnalyticsService,
	enquiryService *service.EnquiryService,
	errorHandler *apierrors.Handler,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		tenantService:    tenantService,
		contentService:   contentService,
		templateService:  templateService,
		analyticsService: analyticsService,
		enquiryService:   enquiryService,
		errorHandler:     errorHandler,
		metrics:          m,
		logger:           logger,
	}
}

// writeJSONResponse writes a JSON response with the given status code.
func (h *Handlers) writeJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// decodeJSONBody decodes a JSON request body into dst.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
