// Package server provides the HTTP server for the 7wink service.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/config"
	apierrors "github.com/anuranjan87/7wink/internal/errors"
	"github.com/anuranjan87/7wink/internal/handler"
	"github.com/anuranjan87/7wink/internal/health"
	"github.com/anuranjan87/7wink/internal/metrics"
	"github.com/anuranjan87/7wink/internal/middleware"
)

// Server represents the HTTP server.
type Server struct {
	router       *mux.Router
	httpServer   *http.Server
	handlers     *handler.Handlers
	healthCheck  *health.HealthChecker
	errorHandler *apierrors.Handler
	metrics      *metrics.Metrics
	logger       *zap.Logger
	cfg          *config.Config
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.Config,
	handlers *handler.Handlers,
	healthCheck *health.HealthChecker,
	errorHandler *apierrors.Handler,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	router := mux.NewRouter()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		router:       router,
		httpServer:   httpServer,
		handlers:     handlers,
		healthCheck:  healthCheck,
		errorHandler: errorHandler,
		metrics:      m,
		logger:       logger,
		cfg:          cfg,
	}
}

// SetupRoutes configures all HTTP routes.
func (s *Server) SetupRoutes() {
	middlewareChain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logging(s.logger),
		metrics.MetricsMiddleware(s.metrics),
		middleware.CORS([]string{"*"}),
	}

	chain := middleware.Chain(middlewareChain...)
	s.router.Use(func(next http.Handler) http.Handler {
		return chain(next)
	})

	// Health check endpoints
	s.router.HandleFunc("/health", s.healthCheck.LivenessHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/ready", s.healthCheck.ReadinessHandler).Methods(http.MethodGet)

	// API v1 routes
	v1 := s.router.PathPrefix("/v1").Subrouter()

	// Tenant registration and lookup
	v1.HandleFunc("/tenants", s.handlers.RegisterTenant).Methods(http.MethodPost)
	v1.HandleFunc("/tenants", s.handlers.ListTenants).Methods(http.MethodGet)
	v1.HandleFunc("/tenants/{slug}", s.handlers.GetTenant).Methods(http.MethodGet)

	// Layered content
	v1.HandleFunc("/tenants/{slug}/content", s.handlers.Publish).Methods(http.MethodPost)
	v1.HandleFunc("/tenants/{slug}/content", s.handlers.GetLatest).Methods(http.MethodGet)
	v1.HandleFunc("/tenants/{slug}/content/history", s.handlers.GetHistory).Methods(http.MethodGet)
	v1.HandleFunc("/tenants/{slug}/content/restore", s.handlers.Restore).Methods(http.MethodPost)

	// Template catalog
	v1.HandleFunc("/templates", s.handlers.ListTemplates).Methods(http.MethodGet)
	v1.HandleFunc("/tenants/{slug}/template", s.handlers.CloneTemplate).Methods(http.MethodPost)

	// Analytics
	v1.HandleFunc("/tenants/{slug}/visits", s.handlers.CountVisits).Methods(http.MethodGet)
	v1.HandleFunc("/tenants/{slug}/visits/daily", s.handlers.DailySeries).Methods(http.MethodGet)

	// Enquiries
	v1.HandleFunc("/tenants/{slug}/enquiries", s.handlers.ListEnquiries).Methods(http.MethodGet)

	// Public endpoints: render path and enquiry submission, rate limited
	public := v1.NewRoute().Subrouter()
	if s.cfg.RateLimiter.Enabled {
		rateLimiter := middleware.NewRateLimiter(
			s.cfg.RateLimiter.RequestsPerSecond,
			s.cfg.RateLimiter.BurstSize,
			s.logger,
		)
		public.Use(rateLimiter.Limit)
	}
	public.HandleFunc("/tenants/{slug}/site", s.handlers.RenderSite).Methods(http.MethodGet)
	public.HandleFunc("/tenants/{slug}/enquiries", s.handlers.RecordEnquiry).Methods(http.MethodPost)

	// Not found handler
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		s.errorHandler.WriteErrorResponse(w, http.StatusNotFound, apierrors.ErrorCodeInvalidRequest, "endpoint not found", requestID)
	})

	// Method not allowed handler. Subrouters do not inherit this from the
	// parent, so each one gets it explicitly.
	methodNotAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		s.errorHandler.WriteErrorResponse(w, http.StatusMethodNotAllowed, apierrors.ErrorCodeInvalidRequest, "method not allowed", requestID)
	})
	s.router.MethodNotAllowedHandler = methodNotAllowed
	v1.MethodNotAllowedHandler = methodNotAllowed
	public.MethodNotAllowedHandler = methodNotAllowed
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		zap.String("addr", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the http.Handler for the server.
func (s *Server) GetHandler() http.Handler {
	return s.router
}
