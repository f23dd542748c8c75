package timeseries

import (
	"time"

	"covidash/internal/domain/models"
)

// Derive computes the daily delta and its trailing moving average from a
// cumulative series. The first delta is 0 by convention (no prior day). The
// moving-average window shrinks at the start of the series, so there is no
// leading gap: ma[i] is the mean of delta[max(0,i-window+1)..i].
func Derive(points []models.SeriesPoint, window int) []models.DerivedPoint {
	if len(points) == 0 {
		return nil
	}
	if window < 1 {
		window = 1
	}

	out := make([]models.DerivedPoint, len(points))
	sum := 0.0
	for i, p := range points {
		delta := 0.0
		if i > 0 {
			delta = p.Value - points[i-1].Value
		}

		sum += delta
		if i >= window {
			sum -= out[i-window].Delta
		}
		n := i + 1
		if n > window {
			n = window
		}

		out[i] = models.DerivedPoint{
			Date:       p.Date,
			Cumulative: p.Value,
			Delta:      delta,
			MovingAvg:  sum / float64(n),
		}
	}
	return out
}

// DailyObserved reindexes the delta sequence onto a continuous daily grid
// from the first to the last date, filling days without an observation with
// 0. Decomposition requires a regular daily cadence.
func DailyObserved(points []models.DerivedPoint) ([]time.Time, []float64) {
	if len(points) == 0 {
		return nil, nil
	}

	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		byDate[p.Date] = p.Delta
	}

	first := points[0].Date
	last := points[len(points)-1].Date
	n := int(last.Sub(first).Hours()/24) + 1

	dates := make([]time.Time, 0, n)
	values := make([]float64, 0, n)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
		values = append(values, byDate[d])
	}
	return dates, values
}
