package timeseries

import (
	"testing"
	"time"

	"covidash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cumulative(start time.Time, values ...float64) []models.SeriesPoint {
	out := make([]models.SeriesPoint, len(values))
	for i, v := range values {
		out[i] = models.SeriesPoint{Date: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestDeriveDeltas(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	series := cumulative(start, 100, 110, 110, 150)

	got := Derive(series, 7)
	require.Len(t, got, 4)

	assert.Equal(t, 0.0, got[0].Delta, "first delta defaults to 0")
	assert.Equal(t, 10.0, got[1].Delta)
	assert.Equal(t, 0.0, got[2].Delta)
	assert.Equal(t, 40.0, got[3].Delta)

	for i, p := range got {
		assert.Equal(t, series[i].Value, p.Cumulative)
		assert.Equal(t, series[i].Date, p.Date)
	}
}

func TestDeriveMovingAverageShrinksAtStart(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	series := cumulative(start, 0, 10, 30, 60, 100)
	// deltas: 0, 10, 20, 30, 40

	got := Derive(series, 3)
	require.Len(t, got, 5)

	assert.InDelta(t, 0.0, got[0].MovingAvg, 1e-12)           // mean(0)
	assert.InDelta(t, 5.0, got[1].MovingAvg, 1e-12)           // mean(0,10)
	assert.InDelta(t, 10.0, got[2].MovingAvg, 1e-12)          // mean(0,10,20)
	assert.InDelta(t, 20.0, got[3].MovingAvg, 1e-12)          // mean(10,20,30)
	assert.InDelta(t, 30.0, got[4].MovingAvg, 1e-12)          // mean(20,30,40)
}

func TestDeriveWindowOneEqualsDeltas(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	series := cumulative(start, 5, 9, 9, 30, 31)

	got := Derive(series, 1)
	for _, p := range got {
		assert.Equal(t, p.Delta, p.MovingAvg)
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	assert.Nil(t, Derive(nil, 7))
}

func TestDailyObservedFillsGapsWithZero(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []models.DerivedPoint{
		{Date: start, Delta: 3},
		{Date: start.AddDate(0, 0, 1), Delta: 5},
		{Date: start.AddDate(0, 0, 4), Delta: 7}, // two-day gap before this
	}

	dates, values := DailyObserved(points)
	require.Len(t, dates, 5)
	assert.Equal(t, []float64{3, 5, 0, 0, 7}, values)
	assert.Equal(t, start.AddDate(0, 0, 2), dates[2])
}

func TestDailyObservedEmpty(t *testing.T) {
	dates, values := DailyObserved(nil)
	assert.Nil(t, dates)
	assert.Nil(t, values)
}
