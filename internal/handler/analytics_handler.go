package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// VisitCountResponse is the body for GET /v1/tenants/{slug}/visits.
type VisitCountResponse struct {
	Slug  string `json:"slug"`
	Total int64  `json:"total"`
}

// CountVisits handles GET /v1/tenants/{slug}/visits requests.
func (h *Handlers) CountVisits(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	total, err := h.analyticsService.CountVisits(r.Context(), slug)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, VisitCountResponse{Slug: slug, Total: total})
}

// DailySeries handles GET /v1/tenants/{slug}/visits/daily requests.
func (h *Handlers) DailySeries(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	series, err := h.analyticsService.DailySeries(r.Context(), slug)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, series)
}
