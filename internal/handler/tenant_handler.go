package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterTenantRequest is the body for POST /v1/tenants.
type RegisterTenantRequest struct {
	Name string `json:"name"`
}

// RegisterTenant handles POST /v1/tenants requests.
func (h *Handlers) RegisterTenant(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")

	var req RegisterTenantRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.errorHandler.WriteValidationError(w, "invalid JSON body", requestID)
		return
	}
	if req.Name == "" {
		h.errorHandler.WriteValidationError(w, "name is required", requestID)
		return
	}

	tenant, err := h.tenantService.Register(r.Context(), req.Name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusCreated, tenant)
}

// GetTenant handles GET /v1/tenants/{slug} requests.
func (h *Handlers) GetTenant(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	tenant, err := h.tenantService.Get(r.Context(), slug)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, tenant)
}

// ListTenants handles GET /v1/tenants requests.
func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantService.List(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, tenants)
}
