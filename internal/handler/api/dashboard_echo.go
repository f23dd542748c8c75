package api

import (
	"errors"
	"fmt"
	"net/http"

	models "covidash/internal/domain/models"
	"covidash/internal/service/diseasesh"
	"covidash/internal/services/timeseries"
	"covidash/internal/usecase"
	xhttp "covidash/pkg/http"
	xlogger "covidash/pkg/logger"
	"covidash/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	dash   *usecase.Dashboard
	rec    *metrics.Recorder
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dash *usecase.Dashboard, rec *metrics.Recorder) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, dash: dash, rec: rec}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/summary", h.Summary)
	g.GET("/countries", h.Countries)
	g.GET("/kpis", h.KPIs)
	g.GET("/correlation", h.Correlation)
	g.GET("/scatter", h.Scatter)
	g.GET("/map", h.Map)
	g.GET("/timeseries", h.TimeSeries)
	g.GET("/decomposition", h.Decomposition)
	g.GET("/export/csv", h.ExportCSV)
}

func (h *DashboardEchoHandler) Summary(c echo.Context) error {
	res, err := h.dash.Summary(c.Request().Context())
	if err != nil {
		return h.fail(c, "summary", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Countries(c echo.Context) error {
	res, err := h.dash.Countries(c.Request().Context())
	if err != nil {
		return h.fail(c, "countries", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) KPIs(c echo.Context) error {
	req := &models.KPIRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dash.KPIs(c.Request().Context(), req.Country)
	if err != nil {
		return h.fail(c, "kpis", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Correlation(c echo.Context) error {
	res, err := h.dash.Correlation(c.Request().Context())
	if err != nil {
		return h.fail(c, "correlation", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Scatter(c echo.Context) error {
	res, err := h.dash.Scatter(c.Request().Context())
	if err != nil {
		return h.fail(c, "scatter", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Map(c echo.Context) error {
	res, err := h.dash.Map(c.Request().Context())
	if err != nil {
		return h.fail(c, "map", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) TimeSeries(c echo.Context) error {
	req := &models.TimeSeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dash.TimeSeries(c.Request().Context(), req.Country, req.Metric, req.Window, req.Range)
	if err != nil {
		return h.fail(c, "timeseries", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) Decomposition(c echo.Context) error {
	req := &models.DecompositionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dash.Decomposition(c.Request().Context(), req.Country, req.Metric)
	if err != nil {
		return h.fail(c, "decomposition", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardEchoHandler) ExportCSV(c echo.Context) error {
	b, err := h.dash.ExportCSV(c.Request().Context())
	if err != nil {
		return h.fail(c, "export", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", usecase.ExportFilename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", b)
}

// fail logs the error and maps it to the HTTP error taxonomy: fetch failures
// and malformed upstream payloads are 502s, an unknown country is a 404, and
// everything else is a 500.
func (h *DashboardEchoHandler) fail(c echo.Context, op string, err error) error {
	h.logger.Error(op+" usecase error", xlogger.Error(err))

	var fe *diseasesh.FetchError
	if errors.As(err, &fe) {
		h.countError("upstream")
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError(fe.Error()).WithError(fe.Err))
	}
	var fme *timeseries.FormatError
	if errors.As(err, &fme) {
		h.countError("format")
		return xhttp.AppErrorResponse(c, xhttp.FormatError(fme.Error()).WithError(fme))
	}
	if errors.Is(err, usecase.ErrCountryNotFound) {
		h.countError("not_found")
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	}
	h.countError("internal")
	return xhttp.AppErrorResponse(c, err)
}

func (h *DashboardEchoHandler) countError(kind string) {
	if h.rec != nil {
		h.rec.RecordError(kind)
	}
}
