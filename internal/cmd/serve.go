package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/ailink"
	"github.com/doorstephq/doorstep/internal/ailink/driver"
	"github.com/doorstephq/doorstep/internal/branding"
	"github.com/doorstephq/doorstep/internal/cache"
	"github.com/doorstephq/doorstep/internal/config"
	"github.com/doorstephq/doorstep/internal/copywriter"
	"github.com/doorstephq/doorstep/internal/core/pacing"
	"github.com/doorstephq/doorstep/internal/core/session"
	"github.com/doorstephq/doorstep/internal/core/store"
	errwrap "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/hashtag"
	"github.com/doorstephq/doorstep/internal/lookup"
	"github.com/doorstephq/doorstep/internal/observability"
	"github.com/doorstephq/doorstep/internal/photos"
	"github.com/doorstephq/doorstep/internal/server"
	"github.com/doorstephq/doorstep/internal/server/handlers"
	"github.com/doorstephq/doorstep/internal/vision"
)

// signalHealthChecker implements HealthChecker for signal system
type signalHealthChecker struct{}

func (s signalHealthChecker) CheckHealth(ctx context.Context) error {
	return nil // Signal handlers are registered and ready
}

// telemetryHealthChecker ensures telemetry system and exporter are available
type telemetryHealthChecker struct{}

func (telemetryHealthChecker) CheckHealth(ctx context.Context) error {
	if observability.TelemetrySystem == nil || observability.PrometheusExporter == nil {
		return errwrap.NewInternalError("telemetry system not initialized")
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the brochure generation HTTP server with graceful shutdown support.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload (placeholder - restart recommended)

The server will cleanly shut down the HTTP server and flush logs on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "configuration load failed")
		}

		identity := GetAppIdentity()
		namespace := identity.TelemetryNamespace()

		observability.InitServerLogger(identity.BinaryName, cfg.Logging.Level, namespace)
		logger := observability.ServerLogger

		metricsPort := cfg.Metrics.Port
		if metricsPort == 0 {
			metricsPort = 9090
		}
		if err := observability.InitMetrics(identity.BinaryName, metricsPort, namespace); err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			return errwrap.WrapInternal(ctx, err, "metrics initialization failed")
		}

		logger.Info("Initializing server",
			zap.String("service", identity.BinaryName),
			zap.String("namespace", namespace),
			zap.String("version", versionInfo.Version),
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.Int("metrics_port", metricsPort))

		if cfg.AILink.Debug.TraceEnabled && traceFile == "" {
			cleanup, err := driver.EnableTracing(cfg.AILink.Debug.TraceFile)
			if err != nil {
				logger.Warn("Failed to enable tracing", zap.Error(err))
			} else {
				_ = cleanup
			}
		}

		db, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "store open failed")
		}
		if err := db.Migrate(ctx); err != nil {
			return errwrap.WrapInternal(ctx, err, "store migration failed")
		}

		photoStore, err := photos.NewStore(cfg.Sessions.PhotosDir)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "photo store init failed")
		}

		var lookupCache cache.Cache
		if cfg.Cache.RedisURL != "" {
			redisCache, err := cache.NewRedis(ctx, cfg.Cache.RedisURL)
			if err != nil {
				return errwrap.WrapInternal(ctx, err, "redis connection failed")
			}
			lookupCache = redisCache
			logger.Info("Lookup cache backend: redis")
		} else {
			lookupCache = cache.NewMemory()
			logger.Info("Lookup cache backend: memory")
		}

		brands, err := branding.Load(cfg.Branding.TemplatesFile)
		if err != nil {
			return errwrap.WrapInternal(ctx, err, "branding registry load failed")
		}

		registry := ailink.NewRegistry(cfg.AILink)
		ledger := session.NewLedger(db, cfg.Sessions.EditLimit, cfg.Sessions.TTL)
		pacer := pacing.NewPacer(cfg.Pacing.MinInterval)

		lookupSvc := lookup.NewService(cfg.Lookup.BaseURL, cfg.Lookup.IdealPostcodesAPIKey, lookupCache, cfg.Lookup.CacheTTL)
		if cfg.Lookup.Timeout > 0 {
			lookupSvc.Timeout = cfg.Lookup.Timeout
		}

		deps := server.Deps{
			Ledger:   ledger,
			Store:    db,
			Photos:   photoStore,
			Analyzer: vision.NewAnalyzer(registry, pacer),
			Copy:     copywriter.New(registry, ledger),
			Lookup:   lookupSvc,
			Hashtags: hashtag.NewService(),
			Branding: brands,
		}

		// Initialize health manager
		handlers.InitHealthManager(versionInfo.Version)
		hm := handlers.GetHealthManager()
		hm.RegisterChecker("signal_handlers", signalHealthChecker{})
		hm.RegisterChecker("telemetry", telemetryHealthChecker{})
		hm.RegisterChecker("store", db)

		srv := server.New(cfg, deps)
		handlers.SetAppIdentity(identity)

		janitorDone := make(chan struct{})
		srv.StartLimiterJanitor(janitorDone)

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Shutdown handlers run LIFO: server first, then store, then logs.
		signals.OnShutdown(func(ctx context.Context) error {
			logger.Info("Flushing logger...")
			if err := logger.Sync(); err != nil {
				// Sync errors are often benign (stdout/stderr already closed)
				logger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
			}
			return nil
		})

		signals.OnShutdown(func(ctx context.Context) error {
			logger.Info("Closing session store...")
			return db.Close()
		})

		signals.OnShutdown(func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server...")
			close(janitorDone)

			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errwrap.WrapInternal(ctx, err, "server shutdown failed")
			}

			logger.Info("HTTP server stopped gracefully")
			return nil
		})

		signals.OnReload(func(ctx context.Context) error {
			logger.Info("Received SIGHUP: attempting config reload")
			if _, err := config.Load(cfgFile); err != nil {
				logger.Error("Failed to reload config", zap.Error(err))
				return errwrap.WrapInternal(ctx, err, "config reload failed")
			}
			logger.Info("Configuration reloaded; restart to apply server-level changes")
			return nil
		})

		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
		}

		errChan := make(chan error, 1)
		go func() {
			logger.Info("Starting HTTP server...",
				zap.String("host", cfg.Server.Host),
				zap.Int("port", cfg.Server.Port))
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()

		go func() {
			if err := signals.Listen(cmd.Context()); err != nil {
				logger.Error("Signal handler error", zap.Error(err))
				errChan <- err
			}
		}()

		if err := <-errChan; err != nil {
			return errwrap.WrapInternal(ctx, err, "server error")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
