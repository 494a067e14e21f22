package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/store"
)

// HealthChecker provides health check endpoints
type HealthChecker struct {
	registry    store.RegistryStore
	renderCache store.RenderCache
	logger      *zap.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp int64             `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(registry store.RegistryStore, renderCache store.RenderCache, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		registry:    registry,
		renderCache: renderCache,
		logger:      logger,
	}
}

// LivenessHandler handles liveness probe requests
func (h *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}

// ReadinessHandler handles readiness probe requests
func (h *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	allHealthy := true

	if err := h.registry.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		allHealthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if err := h.renderCache.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		allHealthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().Unix(),
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		status.Status = "not ready"
		h.logger.Warn("readiness check failed", zap.Any("checks", checks))
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	json.NewEncoder(w).Encode(status)
}
