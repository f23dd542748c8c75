package stats

import (
	"math"
	"testing"

	"covidash/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(cases, deaths, recovered, active, population float64) models.CountrySummary {
	return models.CountrySummary{
		Cases:      cases,
		Deaths:     deaths,
		Recovered:  recovered,
		Active:     active,
		Population: population,
	}
}

func TestCorrelationPerfectlyLinearColumns(t *testing.T) {
	// deaths = cases/10 across all rows: correlation must be exactly 1.
	rows := []models.CountrySummary{
		row(100, 10, 50, 40, 1000),
		row(200, 20, 90, 30, 5000),
		row(400, 40, 10, 90, 2000),
	}

	m := Correlation(rows)
	require.Equal(t, CorrelationColumns, m.Columns)
	assert.InDelta(t, 1.0, m.Values[0][1], 1e-12) // cases vs deaths
}

func TestCorrelationMatrixShape(t *testing.T) {
	rows := []models.CountrySummary{
		row(1, 2, 3, 4, 5),
		row(2, 1, 5, 3, 4),
		row(9, 7, 1, 2, 8),
	}

	m := Correlation(rows)
	require.Len(t, m.Values, 5)
	for i := range m.Values {
		require.Len(t, m.Values[i], 5)
		assert.Equal(t, 1.0, m.Values[i][i], "diagonal must be 1")
		for j := range m.Values[i] {
			assert.Equal(t, m.Values[i][j], m.Values[j][i], "matrix must be symmetric")
			assert.False(t, math.IsNaN(m.Values[i][j]))
			assert.LessOrEqual(t, math.Abs(m.Values[i][j]), 1.0+1e-12)
		}
	}
}

func TestCorrelationZeroVarianceColumn(t *testing.T) {
	// Recovered stuck at 0 (e.g. source stopped reporting): no NaN allowed.
	rows := []models.CountrySummary{
		row(1, 2, 0, 4, 5),
		row(2, 3, 0, 1, 9),
	}

	m := Correlation(rows)
	for i := range m.Values {
		for j := range m.Values[i] {
			assert.False(t, math.IsNaN(m.Values[i][j]))
		}
	}
	assert.Equal(t, 0.0, m.Values[0][2]) // cases vs recovered
}

func TestCorrelationEmptyTable(t *testing.T) {
	m := Correlation(nil)
	require.Len(t, m.Values, 5)
	assert.Equal(t, 1.0, m.Values[0][0])
}
