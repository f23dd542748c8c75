package stats

import (
	"math"

	"covidash/internal/domain/models"
)

// CorrelationColumns are the summary columns the cross-country correlation
// matrix is computed over. Missing values are treated as 0.
var CorrelationColumns = []string{"cases", "deaths", "recovered", "active", "population"}

// Correlation computes the Pearson correlation matrix over the summary
// table's numeric columns. Columns with zero variance correlate as 0 with
// everything except themselves (1 on the diagonal).
func Correlation(rows []models.CountrySummary) *models.CorrelationMatrix {
	cols := make([][]float64, len(CorrelationColumns))
	for i, name := range CorrelationColumns {
		cols[i] = columnValues(rows, name)
	}

	k := len(CorrelationColumns)
	values := make([][]float64, k)
	for i := range values {
		values[i] = make([]float64, k)
		values[i][i] = 1
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			r := pearson(cols[i], cols[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &models.CorrelationMatrix{
		Columns: CorrelationColumns,
		Values:  values,
	}
}

func columnValues(rows []models.CountrySummary, column string) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		switch column {
		case "cases":
			out[i] = r.Cases
		case "deaths":
			out[i] = r.Deaths
		case "recovered":
			out[i] = r.Recovered
		case "active":
			out[i] = r.Active
		case "population":
			out[i] = r.Population
		}
	}
	return out
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	if n == 0 {
		return 0
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
