// Package main provides the entry point for the 7wink service.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/anuranjan87/7wink/internal/config"
	apierrors "github.com/anuranjan87/7wink/internal/errors"
	"github.com/anuranjan87/7wink/internal/handler"
	"github.com/anuranjan87/7wink/internal/health"
	"github.com/anuranjan87/7wink/internal/metrics"
	"github.com/anuranjan87/7wink/internal/server"
	"github.com/anuranjan87/7wink/internal/service"
	"github.com/anuranjan87/7wink/internal/store"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to config file")
	flag.Parse()

	logger := initLogger()
	defer logger.Sync()

	logger.Info("starting 7wink")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.Int("server_port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.String("database_name", cfg.Database.Database),
		zap.String("analytics_timezone", cfg.Analytics.Timezone))

	location, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		logger.Fatal("failed to load analytics timezone", zap.Error(err))
	}

	// Initialize metrics
	m := metrics.NewMetrics()
	m.SetHealthStatus(true)

	// Initialize Postgres pool and apply migrations
	pool, err := store.NewPool(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := store.Migrate(context.Background(), pool, logger); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	// Initialize stores
	registryStore := store.NewPostgresRegistryStore(pool, logger)
	contentStore := store.NewPostgresContentStore(pool, logger)
	visitStore := store.NewPostgresVisitStore(pool, logger)
	enquiryStore := store.NewPostgresEnquiryStore(pool, logger)
	templateStore := store.NewPostgresTemplateStore(pool, logger)

	renderCache, err := store.NewRedisRenderCache(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		logger,
	)
	if err != nil {
		logger.Fatal("failed to initialize render cache", zap.Error(err))
	}

	tenantCache := store.NewInMemoryTenantCache(cfg.Cache.MaxSize, logger)

	logger.Info("stores initialized")

	// Initialize services
	tenantService := service.NewTenantService(registryStore, contentStore, tenantCache, cfg.Cache.TenantTTL, logger)
	contentService := service.NewContentService(contentStore, renderCache, cfg.Cache.RenderTTL, logger)
	templateService := service.NewTemplateService(templateStore, tenantService, contentService, logger)
	analyticsService := service.NewAnalyticsService(visitStore, location, logger)
	enquiryService := service.NewEnquiryService(enquiryStore, tenantService, logger)

	logger.Info("services initialized")

	// Initialize HTTP layer
	errorHandler := apierrors.NewHandler(logger)
	handlers := handler.NewHandlers(
		tenantService,
		contentService,
		templateService,
		analyticsService,
		enquiryService,
		errorHandler,
		m,
		logger,
	)
	healthChecker := health.NewHealthChecker(registryStore, renderCache, logger)

	httpServer := server.NewServer(cfg, handlers, healthChecker, errorHandler, m, logger)
	httpServer.SetupRoutes()

	var metricsServer *metrics.MetricsServer
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path, logger)
	}

	// Run servers until a signal or the first failure
	g, gctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return httpServer.Start()
	})

	if metricsServer != nil {
		g.Go(func() error {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		case <-gctx.Done():
		}

		m.SetHealthStatus(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown HTTP server", zap.Error(err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown metrics server", zap.Error(err))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}

	// Close stores
	if err := renderCache.Close(); err != nil {
		logger.Error("failed to close render cache", zap.Error(err))
	}
	registryStore.Close()

	logger.Info("7wink shutdown complete")
}

// initLogger initializes the zap logger.
func initLogger() *zap.Logger {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var level zapcore.Level
	switch logLevel {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	logFormat := os.Getenv("LOG_FORMAT")

	var config zap.Config
	if logFormat == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return logger
}
