package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
)

// RenderSite handles GET /v1/tenants/{slug}/site requests: the public
// render path. The document is served first; visit recording is
// fire-and-forget so a broken ledger can never block page delivery.
func (h *Handlers) RenderSite(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	document, err := h.contentService.Render(r.Context(), slug)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(document)); err != nil {
		h.logger.Error("failed to write document",
			zap.String("slug", slug),
			zap.Error(err))
	}

	h.analyticsService.RecordVisit(r.Context(), slug, callerOrigin(r))
	h.metrics.RecordVisit("recorded")
}

// callerOrigin extracts a best-effort network identifier for the visitor.
func callerOrigin(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return model.OriginUnknown
	}
	return host
}
