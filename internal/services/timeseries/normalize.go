package timeseries

import (
	"fmt"
	"sort"
	"time"

	"covidash/internal/domain/models"
)

// DateLayout is the source's historical date key format: month/day with no
// guaranteed leading zeros and a two-digit year.
const DateLayout = "1/2/06"

// FormatError reports a date key that does not match the source format.
// It fails the whole normalization; keys are never silently skipped.
type FormatError struct {
	Key string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("timeline date key %q: %v", e.Key, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Normalize extracts one metric's timeline and returns it as a sequence of
// (date, cumulative) points sorted ascending by date. An absent or empty
// metric yields an empty sequence, which callers treat as "no data", not as
// an error.
func Normalize(timeline models.Timeline, metric string) ([]models.SeriesPoint, error) {
	sub := timeline.Metric(metric)
	if len(sub) == 0 {
		return nil, nil
	}

	points := make([]models.SeriesPoint, 0, len(sub))
	for key, value := range sub {
		d, err := time.Parse(DateLayout, key)
		if err != nil {
			return nil, &FormatError{Key: key, Err: err}
		}
		points = append(points, models.SeriesPoint{Date: d, Value: value})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// SumAligned aligns per-country cumulative series on the union of their
// dates, zero-filling dates a country never reported, and sums them into
// one combined series. Zero-fill (not forward-fill) is correct here only
// because each input is cumulative and missing dates before a country's
// first report are a genuine zero baseline.
func SumAligned(series [][]models.SeriesPoint) []models.SeriesPoint {
	totals := make(map[time.Time]float64)
	for _, s := range series {
		for _, p := range s {
			totals[p.Date] += p.Value
		}
	}
	if len(totals) == 0 {
		return nil
	}

	out := make([]models.SeriesPoint, 0, len(totals))
	for d, v := range totals {
		out = append(out, models.SeriesPoint{Date: d, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
