package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PublishRequest is the body for POST /v1/tenants/{slug}/content.
type PublishRequest struct {
	Shell    string `json:"shell"`
	Behavior string `json:"behavior"`
	Payload  string `json:"payload"`
}

// RestoreRequest is the body for POST /v1/tenants/{slug}/content/restore.
type RestoreRequest struct {
	Sequence int64 `json:"sequence"`
}

// Publish handles POST /v1/tenants/{slug}/content requests.
func (h *Handlers) Publish(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	slug := mux.Vars(r)["slug"]

	var req PublishRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.errorHandler.WriteValidationError(w, "invalid JSON body", requestID)
		return
	}

	version, err := h.contentService.Publish(r.Context(), slug, req.Shell, req.Behavior, req.Payload)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.metrics.RecordPublish("publish")
	h.writeJSONResponse(w, http.StatusCreated, version)
}

// GetLatest handles GET /v1/tenants/{slug}/content requests.
func (h *Handlers) GetLatest(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	version, err := h.contentService.GetLatest(r.Context(), slug)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, version)
}

// GetHistory handles GET /v1/tenants/{slug}/content/history requests.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	versions, err := h.contentService.GetHistory(r.Context(), slug)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, versions)
}

// Restore handles POST /v1/tenants/{slug}/content/restore requests.
func (h *Handlers) Restore(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	slug := mux.Vars(r)["slug"]

	var req RestoreRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.errorHandler.WriteValidationError(w, "invalid JSON body", requestID)
		return
	}
	if req.Sequence <= 0 {
		h.errorHandler.WriteValidationError(w, "sequence must be positive", requestID)
		return
	}

	version, err := h.contentService.Restore(r.Context(), slug, req.Sequence)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.metrics.RecordPublish("restore")
	h.writeJSONResponse(w, http.StatusCreated, version)
}
