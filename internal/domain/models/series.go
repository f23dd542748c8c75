package models

import "time"

// SeriesPoint is one (date, cumulative value) observation.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DerivedPoint extends a cumulative observation with the daily delta and the
// trailing moving average of the delta.
type DerivedPoint struct {
	Date       time.Time `json:"date"`
	Cumulative float64   `json:"cumulative"`
	Delta      float64   `json:"delta"`
	MovingAvg  float64   `json:"moving_avg"`
}

// DerivedSeries is the chart-ready time-series table for one country+metric.
type DerivedSeries struct {
	Country string         `json:"country"`
	Metric  string         `json:"metric"`
	Window  int            `json:"window"`
	Points  []DerivedPoint `json:"points"`
}

// Empty reports whether there is any data to chart.
func (s *DerivedSeries) Empty() bool {
	return s == nil || len(s.Points) == 0
}

// Decomposition holds the four aligned component sequences of an additive
// seasonal decomposition.
type Decomposition struct {
	Period   int         `json:"period"`
	Dates    []time.Time `json:"dates"`
	Observed []float64   `json:"observed"`
	Trend    []float64   `json:"trend"`
	Seasonal []float64   `json:"seasonal"`
	Residual []float64   `json:"residual"`
}
