package usecase

import (
	"context"
	"errors"
	"sort"

	"covidash/internal/domain/models"
	drepo "covidash/internal/domain/repository"
	"covidash/internal/services/stats"
	"covidash/internal/services/timeseries"
	"covidash/pkg/util"
)

// ErrCountryNotFound is returned when a selected country has no row in the
// summary table.
var ErrCountryNotFound = errors.New("country not found in summary")

// rangePresets are the selectable chart windows, mirroring the range
// selector of the time-series chart.
var rangePresets = []models.RangePreset{
	{Label: "1m", Months: 1},
	{Label: "3m", Months: 3},
	{Label: "6m", Months: 6},
	{Label: "all", Months: 0},
}

// Dashboard assembles every chart-ready table the page consumes. It owns no
// state beyond its collaborators; all data is pulled (cached) per call.
type Dashboard struct {
	source    drepo.StatsSource
	lastDays  string
	window    int
	period    int
	minPoints int
}

func NewDashboard(source drepo.StatsSource, lastDays string, defaultWindow, period, minPoints int) *Dashboard {
	if lastDays == "" {
		lastDays = "all"
	}
	if defaultWindow < 1 {
		defaultWindow = timeseries.DefaultPeriod
	}
	if period < 2 {
		period = timeseries.DefaultPeriod
	}
	if minPoints < timeseries.MinDecomposePoints {
		minPoints = timeseries.MinDecomposePoints
	}
	return &Dashboard{
		source:    source,
		lastDays:  lastDays,
		window:    defaultWindow,
		period:    period,
		minPoints: minPoints,
	}
}

// Summary returns the raw per-country summary table.
func (d *Dashboard) Summary(ctx context.Context) ([]models.CountrySummary, error) {
	return d.source.Summary(ctx)
}

// Countries returns the selector values: "Global" first, then the distinct
// country names sorted alphabetically.
func (d *Dashboard) Countries(ctx context.Context) ([]string, error) {
	rows, err := d.source.Summary(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Country == "" {
			continue
		}
		if _, ok := seen[r.Country]; ok {
			continue
		}
		seen[r.Country] = struct{}{}
		names = append(names, r.Country)
	}
	sort.Strings(names)

	return append([]string{models.CountryGlobal}, names...), nil
}

// KPIs returns the headline totals for one country, or the column sums for
// the Global view, formatted with thousands separators. A country without a
// tests value reads "N/A".
func (d *Dashboard) KPIs(ctx context.Context, country string) (*models.KPIBlock, error) {
	rows, err := d.source.Summary(ctx)
	if err != nil {
		return nil, err
	}

	if country == models.CountryGlobal {
		var cases, deaths, recovered, tests float64
		for _, r := range rows {
			cases += r.Cases
			deaths += r.Deaths
			recovered += r.Recovered
			if r.Tests != nil {
				tests += *r.Tests
			}
		}
		return &models.KPIBlock{
			Country:   models.CountryGlobal,
			Cases:     util.FormatThousands(int64(cases)),
			Deaths:    util.FormatThousands(int64(deaths)),
			Recovered: util.FormatThousands(int64(recovered)),
			Tests:     util.FormatThousands(int64(tests)),
		}, nil
	}

	for _, r := range rows {
		if r.Country != country {
			continue
		}
		testsText := "N/A"
		if r.Tests != nil {
			testsText = util.FormatThousands(int64(*r.Tests))
		}
		return &models.KPIBlock{
			Country:   r.Country,
			Cases:     util.FormatThousands(int64(r.Cases)),
			Deaths:    util.FormatThousands(int64(r.Deaths)),
			Recovered: util.FormatThousands(int64(r.Recovered)),
			Tests:     testsText,
		}, nil
	}
	return nil, ErrCountryNotFound
}

// Correlation returns the cross-country Pearson correlation matrix.
func (d *Dashboard) Correlation(ctx context.Context) (*models.CorrelationMatrix, error) {
	rows, err := d.source.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Correlation(rows), nil
}

// Scatter returns the cases-vs-deaths scatter table.
func (d *Dashboard) Scatter(ctx context.Context) (*models.ScatterTable, error) {
	rows, err := d.source.Summary(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]models.ScatterPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.ScatterPoint{
			Country:    r.Country,
			Cases:      r.Cases,
			Deaths:     r.Deaths,
			Population: r.Population,
			Continent:  r.ContinentName(),
		})
	}
	return &models.ScatterTable{LogX: true, Points: points}, nil
}

// Map returns the choropleth rows. Rows without an ISO2 code keep their
// country name and render without a location encoding.
func (d *Dashboard) Map(ctx context.Context) ([]models.MapRow, error) {
	rows, err := d.source.Summary(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.MapRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.MapRow{
			Country: r.Country,
			ISO2:    r.ISO2(),
			Cases:   r.Cases,
		})
	}
	return out, nil
}

// TimeSeries builds the derived time-series table for one country (or the
// Global aggregate) and metric, with the moving average computed over
// window, optionally cut to a range preset.
func (d *Dashboard) TimeSeries(ctx context.Context, country, metric string, window int, rng string) (*models.TimeSeriesTable, error) {
	if window < 1 {
		window = d.window
	}

	series, err := d.cumulativeSeries(ctx, country, metric)
	if err != nil {
		return nil, err
	}

	table := &models.TimeSeriesTable{
		Range:   rng,
		Presets: rangePresets,
		Metrics: models.Metrics(),
		Series: models.DerivedSeries{
			Country: country,
			Metric:  metric,
			Window:  window,
		},
	}

	derived := timeseries.Derive(series, window)

	if len(derived) > 0 {
		if start, ok := util.RangeStart(derived[len(derived)-1].Date, rng); ok {
			cut := derived[:0:0]
			for _, p := range derived {
				if !p.Date.Before(start) {
					cut = append(cut, p)
				}
			}
			derived = cut
		}
	}

	table.Series.Points = derived
	table.NoData = table.Series.Empty()
	return table, nil
}

// Decomposition decomposes the daily-delta series for one country+metric.
// A series that is too short or degenerate yields an unavailable table with
// the reason; only fetch/format failures are returned as errors.
func (d *Dashboard) Decomposition(ctx context.Context, country, metric string) (*models.DecompositionTable, error) {
	table := &models.DecompositionTable{Country: country, Metric: metric}

	series, err := d.cumulativeSeries(ctx, country, metric)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		table.Reason = "no time series data for the selected options"
		return table, nil
	}

	// Eligibility is judged on the reported points, not on the zero-filled
	// calendar grid: a sparse series must not qualify by spanning enough days.
	derived := timeseries.Derive(series, 1)
	if len(derived) < d.minPoints {
		table.Reason = "series too short for a weekly decomposition"
		return table, nil
	}

	dates, observed := timeseries.DailyObserved(derived)
	res, err := timeseries.Decompose(dates, observed, d.period)
	if err != nil {
		var ue *timeseries.UnavailableError
		if errors.As(err, &ue) {
			table.Reason = ue.Reason
			return table, nil
		}
		return nil, err
	}

	table.Available = true
	table.Result = res
	return table, nil
}

// cumulativeSeries resolves the cumulative series for one selection. The
// Global aggregate sums every country's normalized series on the union of
// their dates with zero-fill.
func (d *Dashboard) cumulativeSeries(ctx context.Context, country, metric string) ([]models.SeriesPoint, error) {
	if country == models.CountryGlobal {
		hist, err := d.source.GlobalHistorical(ctx, d.lastDays)
		if err != nil {
			return nil, err
		}

		perCountry := make([][]models.SeriesPoint, 0, len(hist))
		for _, h := range hist {
			s, err := timeseries.Normalize(h.Timeline, metric)
			if err != nil {
				return nil, err
			}
			if len(s) > 0 {
				perCountry = append(perCountry, s)
			}
		}
		return timeseries.SumAligned(perCountry), nil
	}

	hist, err := d.source.CountryHistorical(ctx, country, d.lastDays)
	if err != nil {
		return nil, err
	}
	return timeseries.Normalize(hist.Timeline, metric)
}
