package diseasesh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"covidash/internal/domain/models"
	drepo "covidash/internal/domain/repository"
	"covidash/pkg/cache"
	xhttp "covidash/pkg/http"
	"covidash/pkg/metrics"
)

// Endpoint names, used for cache keys and metric labels.
const (
	EndpointSummary           = "summary"
	EndpointGlobalHistorical  = "historical"
	EndpointCountryHistorical = "historical_country"
)

// FetchError wraps a failed upstream request. A non-2xx status and a
// transport failure look the same to callers: the dependent rendering path
// must halt and surface the error.
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("disease.sh %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client implements a StatsSource backed by the disease.sh REST API, with
// responses memoized for a fixed window keyed by the full parameter tuple.
type Client struct {
	baseURL string
	client  *xhttp.Client
	cache   cache.Service
	ttl     time.Duration
	rec     *metrics.Recorder
}

// New creates a disease.sh StatsSource.
func New(baseURL string, timeout time.Duration, c cache.Service, ttl time.Duration, rec *metrics.Recorder) drepo.StatsSource {
	return &Client{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cache:   c,
		ttl:     ttl,
		rec:     rec,
	}
}

// Summary fetches the per-country summary table.
func (c *Client) Summary(ctx context.Context) ([]models.CountrySummary, error) {
	b, err := c.getOrFetch(ctx, EndpointSummary, cache.Key(EndpointSummary), c.baseURL+"/countries")
	if err != nil {
		return nil, err
	}

	var rows []models.CountrySummary
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, &FetchError{Endpoint: EndpointSummary, Err: fmt.Errorf("decode: %w", err)}
	}
	return rows, nil
}

// GlobalHistorical fetches every country's historical timelines.
func (c *Client) GlobalHistorical(ctx context.Context, lastdays string) ([]models.CountryHistorical, error) {
	u := fmt.Sprintf("%s/historical?lastdays=%s", c.baseURL, url.QueryEscape(lastdays))
	b, err := c.getOrFetch(ctx, EndpointGlobalHistorical, cache.Key(EndpointGlobalHistorical, lastdays), u)
	if err != nil {
		return nil, err
	}

	var rows []models.CountryHistorical
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, &FetchError{Endpoint: EndpointGlobalHistorical, Err: fmt.Errorf("decode: %w", err)}
	}
	return rows, nil
}

// CountryHistorical fetches one country's historical timelines.
func (c *Client) CountryHistorical(ctx context.Context, country, lastdays string) (*models.CountryHistorical, error) {
	u := fmt.Sprintf("%s/historical/%s?lastdays=%s", c.baseURL, url.PathEscape(country), url.QueryEscape(lastdays))
	b, err := c.getOrFetch(ctx, EndpointCountryHistorical, cache.Key(EndpointCountryHistorical, country, lastdays), u)
	if err != nil {
		return nil, err
	}

	var row models.CountryHistorical
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, &FetchError{Endpoint: EndpointCountryHistorical, Err: fmt.Errorf("decode: %w", err)}
	}
	return &row, nil
}

func (c *Client) getOrFetch(ctx context.Context, endpoint, key, u string) ([]byte, error) {
	b, cached, err := cache.GetOrFetch(ctx, c.cache, key, c.ttl, func(ctx context.Context) ([]byte, error) {
		start := time.Now()

		var body []byte
		ferr := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    u,
		}, &body)

		if c.rec != nil {
			c.rec.RecordFetchLatency(endpoint, time.Since(start).Seconds())
		}
		if ferr != nil {
			if c.rec != nil {
				c.rec.RecordFetch(endpoint, "error")
			}
			return nil, ferr
		}
		if c.rec != nil {
			c.rec.RecordFetch(endpoint, "ok")
			c.rec.RecordRefresh(endpoint, float64(time.Now().Unix()))
		}
		return body, nil
	})
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}

	if c.rec != nil {
		if cached {
			c.rec.RecordCacheLookup(endpoint, "hit")
		} else {
			c.rec.RecordCacheLookup(endpoint, "miss")
		}
	}
	return b, nil
}
