package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"covidash/internal/handler/api"
	"covidash/internal/service/ratelimit"
	"covidash/internal/usecase"
	"covidash/pkg/cache"
	"covidash/pkg/config"
	xhttp "covidash/pkg/http"
	applogger "covidash/pkg/logger"
	"covidash/pkg/metrics"
)

// Version is reported by the status endpoint.
const Version = "1.0.0"

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	collector *applogger.ErrorCollector
	cache     cache.Service
	dash      *usecase.Dashboard
	hub       *api.LiveHub
	limiter   *ratelimit.Limiter
	rec       *metrics.Recorder

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *applogger.ErrorCollector,
	c cache.Service,
	dash *usecase.Dashboard,
	hub *api.LiveHub,
	limiter *ratelimit.Limiter,
	rec *metrics.Recorder,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		collector: collector,
		cache:     c,
		dash:      dash,
		hub:       hub,
		limiter:   limiter,
		rec:       rec,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handlers := xhttp.Handlers{
		api.NewDashboardEchoHandler(a.logger, a.dash, a.rec),
		api.NewStatusEchoHandler(a.logger, a.cache, a.collector, Version),
		a.hub,
	}

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
	}
	if a.limiter != nil {
		opts = append(opts, xhttp.WithMiddleware(ratelimit.Middleware(a.limiter)))
	}
	a.httpServer = xhttp.NewServer(handlers, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("cache_backend", a.cfg.Cache.Backend),
	)

	go a.refreshLoop(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// refreshLoop periodically re-pulls the summary, which refreshes the cache
// ahead of expiry and feeds connected live clients.
func (a *App) refreshLoop(ctx context.Context) {
	a.broadcastSummary(ctx)

	interval := a.cfg.Dashboard.RefreshInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.broadcastSummary(ctx)
		}
	}
}

func (a *App) broadcastSummary(ctx context.Context) {
	rows, err := a.dash.Summary(ctx)
	if err != nil {
		a.logger.Warn("summary refresh failed", applogger.Error(err))
		return
	}
	a.hub.Broadcast("summary", rows)
	a.logger.Debug("summary refreshed", applogger.Int("countries", len(rows)))
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Warn("cache close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
