package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RecordEnquiryRequest is the body for POST /v1/tenants/{slug}/enquiries.
type RecordEnquiryRequest struct {
	Contact string `json:"contact"`
	Body    string `json:"body"`
}

// RecordEnquiry handles POST /v1/tenants/{slug}/enquiries requests.
func (h *Handlers) RecordEnquiry(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	slug := mux.Vars(r)["slug"]

	var req RecordEnquiryRequest
	if err := decodeJSONBody(r, &req); err != nil {
		h.errorHandler.WriteValidationError(w, "invalid JSON body", requestID)
		return
	}

	if err := h.enquiryService.Record(r.Context(), slug, req.Contact, req.Body); err != nil {
		h.metrics.RecordEnquiry("error")
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.metrics.RecordEnquiry("recorded")
	h.writeJSONResponse(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// ListEnquiries handles GET /v1/tenants/{slug}/enquiries requests.
func (h *Handlers) ListEnquiries(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	enquiries, err := h.enquiryService.List(r.Context(), slug)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, enquiries)
}
