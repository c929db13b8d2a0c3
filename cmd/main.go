package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/roster/internal/adapters/http/api"
	"github.com/okian/roster/internal/adapters/http/swagger"
	"github.com/okian/roster/internal/adapters/repository"
	app "github.com/okian/roster/internal/app"
	"github.com/okian/roster/internal/config"
	"github.com/okian/roster/internal/domain/auth"
	"github.com/okian/roster/internal/domain/geo"
	"github.com/okian/roster/internal/domain/session"
	"github.com/okian/roster/pkg/logger"
	"github.com/okian/roster/pkg/metrics"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load()
	if err != nil {
		// Logger isn't configured until the format is known
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "roster server exited", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return eris.Wrap(err, "start service")
	}
	defer svc.Stop()

	srv := newHTTPServer(ctx, cfg, svc, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})
	g.Go(func() error {
		startServiceMetricsUpdater(gctx, svc)
		return nil
	})
	g.Go(func() error {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(ctx, "shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "server shutdown failed", logger.Error(err))
		}
		return nil
	})

	err = g.Wait()
	log.Info(ctx, "server stopped")
	return err
}

// newService builds the directory service from configuration.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, error) {
	var (
		directory *repository.MemoryDirectory
		err       error
	)
	if cfg.RosterPath != "" {
		directory, err = repository.LoadFile(ctx, cfg.RosterPath, repository.WithLogger(log))
	} else {
		directory, err = repository.Sample(ctx, repository.WithLogger(log))
	}
	if err != nil {
		return nil, err
	}

	table := geo.Default()
	if cfg.GeoTablePath != "" {
		if table, err = geo.LoadFile(cfg.GeoTablePath); err != nil {
			return nil, err
		}
		log.Info(ctx, "geo table loaded", logger.String("path", cfg.GeoTablePath), logger.Int("cities", table.Len()))
	}

	return app.New(
		app.WithLogger(log),
		app.WithDirectory(directory),
		app.WithGeoTable(table),
		app.WithSessionStore(session.NewInMemoryStore(session.WithMaxSessions(cfg.MaxSessions))),
		app.WithAuthenticator(auth.New(cfg.Username, cfg.Password, auth.WithRateLimit(cfg.LoginRate, cfg.LoginBurst))),
		app.WithMaxPhotoBytes(cfg.MaxPhotoBytes),
	), nil
}

// newHTTPServer registers the API on a fresh mux behind CORS.
func newHTTPServer(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc,
		api.WithAllowedOrigins(cfg.AllowedOrigins),
		api.WithMaxPhotoBytes(cfg.MaxPhotoBytes),
		api.WithLogger(log.Named("api")),
	)
	apiServer.Register(ctx, mux)

	// API description at /openapi.yaml and /api-docs
	swagger.Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Handler(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes service gauges until ctx is done.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()
	metrics.UpdateRosterSize(stats.RosterSize)
	metrics.UpdateActiveSessions(int(stats.ActiveSessions))
}
