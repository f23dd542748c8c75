package diseasesh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covidash/pkg/cache"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })

	c := New(srv.URL, 5*time.Second, mem, time.Hour, nil).(*Client)
	return c, srv
}

func TestSummaryDecodesRows(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/countries", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"country":"Andorra","countryInfo":{"iso2":"AD"},"continent":"Europe",
			 "cases":100,"deaths":5,"recovered":80,"tests":1234,"population":200},
			{"country":"Atlantis","countryInfo":{"iso2":null},"continent":null,
			 "cases":50,"deaths":2,"recovered":40,"population":100}
		]`))
	}))

	rows, err := c.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Andorra", rows[0].Country)
	assert.Equal(t, "AD", rows[0].ISO2())
	require.NotNil(t, rows[0].Tests)
	assert.Equal(t, 1234.0, *rows[0].Tests)

	assert.Nil(t, rows[1].Tests)
	assert.Equal(t, "", rows[1].ISO2())
	assert.Equal(t, "", rows[1].ContinentName())
}

func TestSecondCallServedFromCache(t *testing.T) {
	var hits int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte(`[{"country":"Andorra","countryInfo":{},"cases":1}]`))
	}))

	_, err := c.Summary(context.Background())
	require.NoError(t, err)
	_, err = c.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestHistoricalPassesLastdays(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("lastdays"))
		_, _ = w.Write([]byte(`[{"country":"Andorra","timeline":{"cases":{"3/1/21":10}}}]`))
	}))

	rows, err := c.GlobalHistorical(context.Background(), "all")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 10.0, rows[0].Timeline["cases"]["3/1/21"])
}

func TestCountryHistoricalEscapesPath(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical/New%20Zealand", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"country":"New Zealand","timeline":{"cases":{"3/1/21":7}}}`))
	}))

	row, err := c.CountryHistorical(context.Background(), "New Zealand", "30")
	require.NoError(t, err)
	assert.Equal(t, "New Zealand", row.Country)
}

func TestUpstreamFailureIsFetchError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := c.Summary(context.Background())
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, EndpointSummary, fe.Endpoint)
}

func TestFailuresAreNotCached(t *testing.T) {
	var hits int64
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&hits, 1)
		if n == 1 {
			http.Error(w, "flaky", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"country":"Andorra","countryInfo":{},"cases":1}]`))
	}))

	_, err := c.Summary(context.Background())
	require.Error(t, err)

	rows, err := c.Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}
