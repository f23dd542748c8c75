package api

import (
	"time"

	"covidash/pkg/cache"
	xhttp "covidash/pkg/http"
	xlogger "covidash/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatusEchoHandler serves the operational status endpoint: uptime, cache
// counters, and recently collected error-level log entries.
type StatusEchoHandler struct {
	logger    *xlogger.Logger
	cache     cache.Service
	collector *xlogger.ErrorCollector
	startedAt time.Time
	version   string
}

func NewStatusEchoHandler(logger *xlogger.Logger, c cache.Service, collector *xlogger.ErrorCollector, version string) *StatusEchoHandler {
	return &StatusEchoHandler{
		logger:    logger,
		cache:     c,
		collector: collector,
		startedAt: time.Now(),
		version:   version,
	}
}

func (h *StatusEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/status", h.Status)
}

type statusPayload struct {
	Version      string                       `json:"version"`
	UptimeSecs   int64                        `json:"uptime_seconds"`
	Cache        cache.Stats                  `json:"cache"`
	RecentErrors []xlogger.AggregatedLogEntry `json:"recent_errors"`
}

func (h *StatusEchoHandler) Status(c echo.Context) error {
	payload := statusPayload{
		Version:    h.version,
		UptimeSecs: int64(time.Since(h.startedAt).Seconds()),
		Cache:      h.cache.Stats(),
	}
	if h.collector != nil {
		payload.RecentErrors = h.collector.Recent()
	} else {
		payload.RecentErrors = []xlogger.AggregatedLogEntry{}
	}
	return xhttp.SuccessResponse(c, payload)
}
