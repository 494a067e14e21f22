// Package metrics provides Prometheus metrics for the 7wink service.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge

	publishesTotal *prometheus.CounterVec
	clonesTotal    *prometheus.CounterVec
	visitsRecorded *prometheus.CounterVec
	enquiriesTotal *prometheus.CounterVec

	healthStatus prometheus.Gauge
}

var globalMetrics *Metrics

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	if globalMetrics != nil {
		return globalMetrics
	}

	globalMetrics = &Metrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sevenwink_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sevenwink_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		requestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sevenwink_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		publishesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sevenwink_publishes_total",
				Help: "Total number of content versions appended",
			},
			[]string{"kind"},
		),
		clonesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sevenwink_template_clones_total",
				Help: "Total number of template clones",
			},
			[]string{"template_id"},
		),
		visitsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sevenwink_visits_recorded_total",
				Help: "Total number of visit events recorded",
			},
			[]string{"status"},
		),
		enquiriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sevenwink_enquiries_total",
				Help: "Total number of enquiries recorded",
			},
			[]string{"status"},
		),
		healthStatus: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sevenwink_health_status",
				Help: "Health status of the service (1 = healthy, 0 = unhealthy)",
			},
		),
	}

	return globalMetrics
}

// RecordHTTPRequest records metrics for an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncRequestsInFlight increments the in-flight requests counter.
func (m *Metrics) IncRequestsInFlight() {
	m.requestsInFlight.Inc()
}

// DecRequestsInFlight decrements the in-flight requests counter.
func (m *Metrics) DecRequestsInFlight() {
	m.requestsInFlight.Dec()
}

// RecordPublish counts an appended version by kind (publish, restore,
// seed, clone).
func (m *Metrics) RecordPublish(kind string) {
	m.publishesTotal.WithLabelValues(kind).Inc()
}

// RecordClone counts a template clone.
func (m *Metrics) RecordClone(templateID int64) {
	m.clonesTotal.WithLabelValues(strconv.FormatInt(templateID, 10)).Inc()
}

// RecordVisit counts a visit recording attempt.
func (m *Metrics) RecordVisit(status string) {
	m.visitsRecorded.WithLabelValues(status).Inc()
}

// RecordEnquiry counts an enquiry recording attempt.
func (m *Metrics) RecordEnquiry(status string) {
	m.enquiriesTotal.WithLabelValues(status).Inc()
}

// SetHealthStatus sets the health status.
func (m *Metrics) SetHealthStatus(healthy bool) {
	if healthy {
		m.healthStatus.Set(1)
	} else {
		m.healthStatus.Set(0)
	}
}

// MetricsServer provides a separate HTTP server for Prometheus metrics.
type MetricsServer struct {
	server *http.Server
	logger *zap.Logger
}

// NewMetricsServer creates a new metrics server.
func NewMetricsServer(port int, path string, logger *zap.Logger) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
		logger: logger,
	}
}

// Start starts the metrics server.
func (ms *MetricsServer) Start() error {
	ms.logger.Info("starting metrics server", zap.String("addr", ms.server.Addr))
	return ms.server.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server.
func (ms *MetricsServer) Shutdown(ctx context.Context) error {
	return ms.server.Shutdown(ctx)
}

// MetricsMiddleware creates middleware that records HTTP metrics.
func MetricsMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.IncRequestsInFlight()
			defer m.DecRequestsInFlight()

			start := time.Now()
			rw := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			m.RecordHTTPRequest(r.Method, r.URL.Path, rw.statusCode, time.Since(start))
		})
	}
}

// metricsResponseWriter wraps http.ResponseWriter to capture metrics.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
