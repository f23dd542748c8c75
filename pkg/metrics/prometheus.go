package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus instruments for the data path.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	lastRefresh   *prometheus.GaugeVec
	liveClients   prometheus.Gauge
	errorsTotal   *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "covidash_upstream_fetches_total",
				Help: "Total number of upstream API fetches",
			},
			[]string{"endpoint", "result"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "covidash_cache_lookups_total",
				Help: "Cache lookups for upstream responses",
			},
			[]string{"endpoint", "outcome"},
		),
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "covidash_upstream_fetch_duration_seconds",
				Help:    "Duration of upstream API fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		lastRefresh: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "covidash_last_refresh_timestamp_seconds",
				Help: "Unix timestamp of the last successful fetch per endpoint",
			},
			[]string{"endpoint"},
		),
		liveClients: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "covidash_live_clients",
				Help: "Currently connected live-update WebSocket clients",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "covidash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordFetch records an upstream fetch outcome ("ok" or "error").
func (r *Recorder) RecordFetch(endpoint, result string) {
	r.fetchesTotal.WithLabelValues(endpoint, result).Inc()
}

// RecordCacheLookup records a cache outcome ("hit" or "miss").
func (r *Recorder) RecordCacheLookup(endpoint, outcome string) {
	r.cacheLookups.WithLabelValues(endpoint, outcome).Inc()
}

// RecordFetchLatency records upstream fetch latency in seconds.
func (r *Recorder) RecordFetchLatency(endpoint string, seconds float64) {
	r.fetchLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordRefresh marks a successful fetch for an endpoint.
func (r *Recorder) RecordRefresh(endpoint string, unixSeconds float64) {
	r.lastRefresh.WithLabelValues(endpoint).Set(unixSeconds)
}

// SetLiveClients records the number of connected WebSocket clients.
func (r *Recorder) SetLiveClients(n int) {
	r.liveClients.Set(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
