package timeseries

import (
	"testing"
	"time"

	"covidash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeParsesAndSorts(t *testing.T) {
	tl := models.Timeline{
		"cases": {
			"3/5/21": 120,
			"3/3/21": 100,
			"3/4/21": 110,
		},
	}

	points, err := Normalize(tl, models.MetricCases)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, time.Date(2021, 3, 3, 0, 0, 0, 0, time.UTC), points[0].Date)
	assert.Equal(t, time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC), points[2].Date)
	assert.Equal(t, 100.0, points[0].Value)
	assert.Equal(t, 120.0, points[2].Value)
}

func TestNormalizeTwoDigitYearFormat(t *testing.T) {
	points, err := Normalize(models.Timeline{"cases": {"3/5/21": 1}}, models.MetricCases)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, time.Date(2021, 3, 5, 0, 0, 0, 0, time.UTC), points[0].Date)
}

func TestNormalizeRejectsWrongDateFormat(t *testing.T) {
	tl := models.Timeline{
		"cases": {
			"3/5/21":     1,
			"2021-03-05": 2, // ISO form must fail loudly, not misparse
		},
	}

	_, err := Normalize(tl, models.MetricCases)
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "2021-03-05", fe.Key)
}

func TestNormalizeAbsentMetricIsNoData(t *testing.T) {
	tl := models.Timeline{"cases": {"1/1/21": 5}}

	points, err := Normalize(tl, models.MetricTests)
	require.NoError(t, err)
	assert.Empty(t, points)

	points, err = Normalize(nil, models.MetricCases)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestSumAlignedZeroFillsMissingDates(t *testing.T) {
	a, err := Normalize(models.Timeline{"cases": {"1/1/21": 10}}, models.MetricCases)
	require.NoError(t, err)
	b, err := Normalize(models.Timeline{"cases": {"1/1/21": 5, "1/2/21": 8}}, models.MetricCases)
	require.NoError(t, err)

	combined := SumAligned([][]models.SeriesPoint{a, b})
	require.Len(t, combined, 2)

	// Missing 1/2/21 for the first country is zero-filled, not forward-filled.
	assert.Equal(t, 15.0, combined[0].Value)
	assert.Equal(t, 8.0, combined[1].Value)
	assert.True(t, combined[0].Date.Before(combined[1].Date))
}

func TestSumAlignedEmptyInput(t *testing.T) {
	assert.Nil(t, SumAligned(nil))
	assert.Nil(t, SumAligned([][]models.SeriesPoint{nil, {}}))
}
