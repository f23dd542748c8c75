package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyDates(n int) []time.Time {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func TestDecomposeTooShort(t *testing.T) {
	n := 29
	values := make([]float64, n)
	_, err := Decompose(dailyDates(n), values, DefaultPeriod)
	require.Error(t, err)

	var ue *UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Reason, "29")
}

func TestDecomposeAtThreshold(t *testing.T) {
	n := 30
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	res, err := Decompose(dailyDates(n), values, DefaultPeriod)
	require.NoError(t, err)
	require.NotNil(t, res)
}

func TestDecomposeComponentLengthsAligned(t *testing.T) {
	n := 42
	values := make([]float64, n)
	for i := range values {
		values[i] = 50 + 3*float64(i) + 10*math.Sin(2*math.Pi*float64(i)/7)
	}

	res, err := Decompose(dailyDates(n), values, DefaultPeriod)
	require.NoError(t, err)

	assert.Len(t, res.Dates, n)
	assert.Len(t, res.Observed, n)
	assert.Len(t, res.Trend, n)
	assert.Len(t, res.Seasonal, n)
	assert.Len(t, res.Residual, n)
	assert.Equal(t, DefaultPeriod, res.Period)
}

func TestDecomposeAdditiveIdentity(t *testing.T) {
	n := 56
	values := make([]float64, n)
	for i := range values {
		values[i] = 20 + float64(i%7)*4 + float64(i)/2
	}

	res, err := Decompose(dailyDates(n), values, DefaultPeriod)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		sum := res.Trend[i] + res.Seasonal[i] + res.Residual[i]
		assert.InDelta(t, res.Observed[i], sum, 1e-9, "observed must equal trend+seasonal+residual at %d", i)
	}
}

func TestDecomposeSeasonalSumsToZeroOverCycle(t *testing.T) {
	n := 70
	values := make([]float64, n)
	for i := range values {
		values[i] = 100 + 12*math.Sin(2*math.Pi*float64(i)/7) + float64(i)
	}

	res, err := Decompose(dailyDates(n), values, DefaultPeriod)
	require.NoError(t, err)

	sum := 0.0
	for j := 0; j < DefaultPeriod; j++ {
		sum += res.Seasonal[j]
	}
	assert.InDelta(t, 0, sum, 1e-9)

	// The seasonal pattern repeats with period 7.
	for i := DefaultPeriod; i < n; i++ {
		assert.InDelta(t, res.Seasonal[i-DefaultPeriod], res.Seasonal[i], 1e-12)
	}
}

func TestDecomposeRecoversLinearTrend(t *testing.T) {
	// Pure line: seasonal and residual should be ~0 and the trend the line
	// itself, including the extrapolated edges.
	n := 35
	values := make([]float64, n)
	for i := range values {
		values[i] = 5 + 2*float64(i)
	}

	res, err := Decompose(dailyDates(n), values, DefaultPeriod)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		assert.InDelta(t, values[i], res.Trend[i], 1e-9, "trend at %d", i)
		assert.InDelta(t, 0, res.Seasonal[i], 1e-9, "seasonal at %d", i)
		assert.InDelta(t, 0, res.Residual[i], 1e-9, "residual at %d", i)
	}
}

func TestDecomposeConstantSeriesDoesNotPanic(t *testing.T) {
	n := 40
	values := make([]float64, n) // all zero: degenerate but must not blow up

	res, err := Decompose(dailyDates(n), values, DefaultPeriod)
	require.NoError(t, err)
	for i := range res.Residual {
		assert.InDelta(t, 0, res.Residual[i], 1e-12)
	}
}
