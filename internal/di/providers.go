package di

import (
	"fmt"
	"time"

	"covidash/internal/domain/repository"
	"covidash/internal/handler/api"
	"covidash/internal/service/diseasesh"
	"covidash/internal/service/ratelimit"
	"covidash/internal/usecase"
	"covidash/pkg/cache"
	"covidash/pkg/config"
	xlogger "covidash/pkg/logger"
	"covidash/pkg/metrics"
	"covidash/pkg/server"
)

// ProvideErrorCollector creates the in-memory error aggregation store
// surfaced by the status endpoint.
func ProvideErrorCollector() *xlogger.ErrorCollector {
	return xlogger.NewErrorCollector(50, time.Hour)
}

// ProvideLogger creates the application logger with error collection attached.
func ProvideLogger(cfg *config.Config, collector *xlogger.ErrorCollector) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	l.AttachCollector(collector)
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideCache creates the response cache for the configured backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
		), nil

	case "redis":
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)

	case "layered":
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(rc,
			cache.WithLayeredMemorySize(cfg.Cache.MaxEntries),
		), nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideStatsSource creates the disease.sh client.
func ProvideStatsSource(cfg *config.Config, c cache.Service, rec *metrics.Recorder) repository.StatsSource {
	return diseasesh.New(
		cfg.DiseaseSh.BaseURL,
		cfg.DiseaseSh.Timeout,
		c,
		cfg.Cache.TTL,
		rec,
	)
}

// ProvideDashboard creates the dashboard use case.
func ProvideDashboard(cfg *config.Config, source repository.StatsSource) *usecase.Dashboard {
	return usecase.NewDashboard(
		source,
		cfg.DiseaseSh.LastDays,
		cfg.Dashboard.DefaultWindow,
		cfg.Dashboard.SeasonalPeriod,
		cfg.Dashboard.DecompMinPoints,
	)
}

// ProvideLiveHub creates the WebSocket broadcast hub.
func ProvideLiveHub(logger *xlogger.Logger, rec *metrics.Recorder) *api.LiveHub {
	return api.NewLiveHub(logger, rec)
}

// ProvideRateLimiter creates the per-IP limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *xlogger.Logger,
	collector *xlogger.ErrorCollector,
	c cache.Service,
	dash *usecase.Dashboard,
	hub *api.LiveHub,
	limiter *ratelimit.Limiter,
	rec *metrics.Recorder,
) *server.App {
	return server.New(cfg, logger, collector, c, dash, hub, limiter, rec)
}
