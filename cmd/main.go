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

	"github.com/okian/squadrate/internal/adapters/http/api"
	"github.com/okian/squadrate/internal/adapters/http/swagger"
	"github.com/okian/squadrate/internal/adapters/rowstore"
	service "github.com/okian/squadrate/internal/app"
	"github.com/okian/squadrate/internal/config"
	"github.com/okian/squadrate/pkg/logger"
	"github.com/okian/squadrate/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Custom registry only; drop the default Go collectors.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, memory, err := newStore(cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build row store", logger.Error(err))
		os.Exit(1)
	}

	svc := newService(cfg, store, log)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx, systemMetricsInterval)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, memory, cfg.BaserowToken),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("store", cfg.StoreBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// newStore builds the configured row store. The memory store is returned a
// second time so its Baserow-compatible endpoints can be mounted.
func newStore(cfg *config.Config, log logger.Logger) (rowstore.Store, *rowstore.MemoryStore, error) {
	if cfg.StoreBackend == config.BackendMemory {
		m := rowstore.NewMemoryStore(rowstore.WithMemoryPageSize(cfg.BaserowPageSize))
		return m, m, nil
	}
	client, err := rowstore.NewBaserowClient(cfg.BaserowAPIURL, cfg.BaserowToken,
		rowstore.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout()}),
		rowstore.WithPageSize(cfg.BaserowPageSize),
		rowstore.WithRateLimit(cfg.BaserowRPS, cfg.BaserowBurst),
		rowstore.WithLogger(log.Named("baserow")),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, nil, nil
}

func newService(cfg *config.Config, store rowstore.Store, log logger.Logger) *service.Service {
	return service.New(
		service.WithLogger(log),
		service.WithStore(store),
		service.WithTables(cfg.BaserowTableID, cfg.BaserowSelfTableID),
		service.WithCollationLocale(cfg.CollationLocale),
		service.WithDismissiveTokens(cfg.DismissiveTokens...),
		service.WithUnknownAuthor(cfg.UnknownAuthor),
		service.WithSubmitBatchSize(cfg.SubmitBatchSize),
	)
}

// newMux registers the API, the docs and, for the memory backend, the row
// endpoints.
func newMux(ctx context.Context, svc *service.Service, memory *rowstore.MemoryStore, token string) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	if memory != nil {
		rowstore.NewHandler(memory, token).Register(mux)
	}
	return mux
}

// startSystemMetricsUpdater refreshes runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
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
