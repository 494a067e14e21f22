package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/config"
	apierrors "github.com/anuranjan87/7wink/internal/errors"
	"github.com/anuranjan87/7wink/internal/handler"
	"github.com/anuranjan87/7wink/internal/health"
	"github.com/anuranjan87/7wink/internal/metrics"
	"github.com/anuranjan87/7wink/internal/model"
)

type stubRegistry struct{}

func (stubRegistry) CreateTenant(ctx context.Context, tenant *model.Tenant) error { return nil }
func (stubRegistry) GetTenant(ctx context.Context, slug string) (*model.Tenant, error) {
	return nil, nil
}
func (stubRegistry) ListTenants(ctx context.Context) ([]*model.Tenant, error) { return nil, nil }
func (stubRegistry) Ping(ctx context.Context) error                           { return nil }
func (stubRegistry) Close()                                                   {}

type stubRenderCache struct{}

func (stubRenderCache) Get(ctx context.Context, slug string) (string, error) { return "", nil }
func (stubRenderCache) Set(ctx context.Context, slug, document string, ttl time.Duration) error {
	return nil
}
func (stubRenderCache) Invalidate(ctx context.Context, slug string) error { return nil }
func (stubRenderCache) Ping(ctx context.Context) error                    { return nil }
func (stubRenderCache) Close() error                                      { return nil }

// newRoutedServer builds a server whose routing and middleware are fully
// wired. Only endpoints that never reach a service are exercised.
func newRoutedServer(t *testing.T) *Server {
	t.Helper()
	logger := zap.NewNop()
	cfg := config.DefaultConfig()
	errorHandler := apierrors.NewHandler(logger)
	m := metrics.NewMetrics()
	handlers := handler.NewHandlers(nil, nil, nil, nil, nil, errorHandler, m, logger)
	healthCheck := health.NewHealthChecker(stubRegistry{}, stubRenderCache{}, logger)

	srv := NewServer(cfg, handlers, healthCheck, errorHandler, m, logger)
	srv.SetupRoutes()
	return srv
}

func TestRoutes_Health(t *testing.T) {
	srv := newRoutedServer(t)

	w := httptest.NewRecorder()
	srv.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")
}

func TestRoutes_Ready(t *testing.T) {
	srv := newRoutedServer(t)

	w := httptest.NewRecorder()
	srv.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ready")
}

func TestRoutes_UnknownEndpoint(t *testing.T) {
	srv := newRoutedServer(t)

	w := httptest.NewRecorder()
	srv.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v2/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "endpoint not found")
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	srv := newRoutedServer(t)

	t.Run("v1 route", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/tenants", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), "method not allowed")
	})

	t.Run("public route", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/tenants/shop/site", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), "method not allowed")
	})
}

func TestRoutes_RequestIDPropagates(t *testing.T) {
	srv := newRoutedServer(t)

	w := httptest.NewRecorder()
	srv.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
