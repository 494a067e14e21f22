package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// CloneTemplateRequest is the body for POST /v1/tenants/{slug}/template.
type CloneTemplateRequest struct {
	TemplateID       int64 `json:"template_id"`
	ProvisionMissing bool  `json:"provision_missing"`
}

// ListTemplates handles GET /v1/templates requests.
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.List(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, templates)
}

// CloneTemplate handles POST /v1/tenants/{slug}/template requests.
func (h *Handlers) CloneTemplate(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	slug := mux.Vars(r)["slug"]

	var req CloneTemplateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.errorHandler.WriteValidationError(w, "invalid JSON body", requestID)
		return
	}
	if req.TemplateID <= 0 {
		h.errorHandler.WriteValidationError(w, "template_id must be positive", requestID)
		return
	}

	version, err := h.templateService.CloneInto(r.Context(), req.TemplateID, slug, req.ProvisionMissing)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.metrics.RecordClone(req.TemplateID)
	h.writeJSONResponse(w, http.StatusCreated, version)
}
