package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidash/internal/domain/models"
	"covidash/internal/service/diseasesh"
	"covidash/internal/usecase"
	xlogger "covidash/pkg/logger"
	"covidash/pkg/metrics"
)

// One registry-backed recorder for the package; promauto registers globally.
var testRecorder = metrics.New()

type failingSource struct {
	summary []models.CountrySummary
	err     error
}

func (s *failingSource) Summary(context.Context) ([]models.CountrySummary, error) {
	return s.summary, s.err
}

func (s *failingSource) GlobalHistorical(context.Context, string) ([]models.CountryHistorical, error) {
	return nil, s.err
}

func (s *failingSource) CountryHistorical(context.Context, string, string) (*models.CountryHistorical, error) {
	return nil, s.err
}

func newTestHandler(t *testing.T, src *failingSource) *DashboardEchoHandler {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	dash := usecase.NewDashboard(src, "all", 7, 7, 30)
	return NewDashboardEchoHandler(l, dash, testRecorder)
}

func doRequest(t *testing.T, h func(echo.Context) error, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestKPIsUnknownCountryMapsToNotFound(t *testing.T) {
	h := newTestHandler(t, &failingSource{summary: []models.CountrySummary{
		{Country: "Andorra", Cases: 1},
	}})

	rec := doRequest(t, h.KPIs, "/api/kpis?country=Nowhere")

	assert.Contains(t, rec.Body.String(), `"status":404`)
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")
}

func TestUpstreamFailureMapsToBadGateway(t *testing.T) {
	h := newTestHandler(t, &failingSource{
		err: &diseasesh.FetchError{Endpoint: diseasesh.EndpointSummary, Err: errors.New("status 503")},
	})

	rec := doRequest(t, h.Summary, "/api/summary")

	assert.Contains(t, rec.Body.String(), `"status":502`)
	assert.Contains(t, rec.Body.String(), "ERR_UPSTREAM")
}

func TestNilRecorderDoesNotPanicOnFailure(t *testing.T) {
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	dash := usecase.NewDashboard(&failingSource{err: errors.New("boom")}, "all", 7, 7, 30)
	h := NewDashboardEchoHandler(l, dash, nil)

	rec := doRequest(t, h.Summary, "/api/summary")
	assert.Contains(t, rec.Body.String(), `"status":500`)
}

func TestValidationFailureIsBadRequest(t *testing.T) {
	h := newTestHandler(t, &failingSource{})

	rec := doRequest(t, h.TimeSeries, "/api/timeseries?metric=bogus")

	assert.Contains(t, rec.Body.String(), `"status":400`)
	assert.Contains(t, rec.Body.String(), "ERR_ONEOF")
}
