package timeseries

import (
	"fmt"
	"time"

	"covidash/internal/domain/models"
)

// DefaultPeriod is the seasonal cycle length: daily data with weekly
// seasonality.
const DefaultPeriod = 7

// MinDecomposePoints is the minimum daily-delta series length before a
// decomposition is attempted at all.
const MinDecomposePoints = 30

// UnavailableError reports why a decomposition could not be produced. It is
// informational: the caller renders a note and the rest of the page stands.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("decomposition not available: %s", e.Reason)
}

// Decompose splits a regular daily series into trend, seasonal and residual
// components using an additive model. The trend is a centered moving average
// over one period, linearly extrapolated to cover the boundary points; the
// seasonal component is the zero-centered mean of the detrended values per
// position in the cycle; the residual is whatever remains.
//
// The input must have a continuous daily cadence (see DailyObserved) and at
// least MinDecomposePoints points.
func Decompose(dates []time.Time, observed []float64, period int) (*models.Decomposition, error) {
	if period < 2 {
		period = DefaultPeriod
	}
	n := len(observed)
	if n < MinDecomposePoints {
		return nil, &UnavailableError{Reason: fmt.Sprintf("series has %d points, need at least %d", n, MinDecomposePoints)}
	}
	if n < 2*period {
		return nil, &UnavailableError{Reason: fmt.Sprintf("series has %d points, need at least two full periods (%d)", n, 2*period)}
	}
	if len(dates) != n {
		return nil, &UnavailableError{Reason: "dates and observations are misaligned"}
	}

	trend := centeredMovingAverage(observed, period)
	extrapolateTrend(trend, period)

	// Period averages of the detrended series, centered so the seasonal
	// component sums to ~0 over one cycle.
	sums := make([]float64, period)
	counts := make([]int, period)
	for i := 0; i < n; i++ {
		j := i % period
		sums[j] += observed[i] - trend[i]
		counts[j]++
	}
	averages := make([]float64, period)
	total := 0.0
	for j := 0; j < period; j++ {
		averages[j] = sums[j] / float64(counts[j])
		total += averages[j]
	}
	level := total / float64(period)

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = averages[i%period] - level
		residual[i] = observed[i] - trend[i] - seasonal[i]
	}

	out := &models.Decomposition{
		Period:   period,
		Dates:    dates,
		Observed: observed,
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
	}
	return out, nil
}

// centeredMovingAverage computes the centered MA of window = period. For an
// even period the two window endpoints are half-weighted; for an odd period
// it is the plain centered mean. Positions whose window would run off either
// end are undefined by position (the first and last period/2 indices) and
// must be filled by extrapolateTrend before use.
func centeredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	trend := make([]float64, n)
	half := period / 2

	for i := range trend {
		lo := i - half
		hi := i + half
		if period%2 == 0 {
			// Even period: weight the two boundary points by 1/2.
			if lo < 0 || hi >= n {
				continue
			}
			sum := values[lo]/2 + values[hi]/2
			for k := lo + 1; k < hi; k++ {
				sum += values[k]
			}
			trend[i] = sum / float64(period)
		} else {
			if lo < 0 || hi >= n {
				continue
			}
			sum := 0.0
			for k := lo; k <= hi; k++ {
				sum += values[k]
			}
			trend[i] = sum / float64(period)
		}
	}
	return trend
}

// extrapolateTrend fills the undefined boundary stretches of the trend with
// a straight line fitted to the nearest `period` defined points, mirroring
// the behavior of extrapolating the trend over the series frequency.
func extrapolateTrend(trend []float64, period int) {
	n := len(trend)
	half := period / 2
	first := half
	last := n - 1 - half
	if first >= last {
		return
	}

	// Leading edge: fit on the first `period` defined points.
	slope, intercept := linearFit(trend, first, min(first+period-1, last))
	for i := 0; i < first; i++ {
		trend[i] = intercept + slope*float64(i)
	}

	// Trailing edge: fit on the last `period` defined points.
	slope, intercept = linearFit(trend, max(first, last-period+1), last)
	for i := last + 1; i < n; i++ {
		trend[i] = intercept + slope*float64(i)
	}
}

// linearFit returns the least-squares slope and intercept of trend[lo..hi]
// against its indices.
func linearFit(values []float64, lo, hi int) (slope, intercept float64) {
	n := float64(hi - lo + 1)
	if n < 2 {
		return 0, values[lo]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := lo; i <= hi; i++ {
		x := float64(i)
		y := values[i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
