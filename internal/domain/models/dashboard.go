package models

// KPIBlock holds the headline totals, formatted for display with thousands
// separators. Tests reads "N/A" when the source has no value.
type KPIBlock struct {
	Country   string `json:"country"`
	Cases     string `json:"cases"`
	Deaths    string `json:"deaths"`
	Recovered string `json:"recovered"`
	Tests     string `json:"tests"`
}

// CorrelationMatrix is a symmetric Pearson correlation table over the
// summary's numeric columns.
type CorrelationMatrix struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

// ScatterPoint is one country's cases-vs-deaths observation, sized by
// population and colored by continent when the source provides one.
type ScatterPoint struct {
	Country    string  `json:"country"`
	Cases      float64 `json:"cases"`
	Deaths     float64 `json:"deaths"`
	Population float64 `json:"population"`
	Continent  string  `json:"continent,omitempty"`
}

// ScatterTable carries the scatter rows plus axis hints for the renderer.
type ScatterTable struct {
	LogX   bool           `json:"log_x"`
	Points []ScatterPoint `json:"points"`
}

// MapRow is one choropleth entry. ISO2 may be empty, in which case the map
// renders the row without a location encoding.
type MapRow struct {
	Country string  `json:"country"`
	ISO2    string  `json:"iso2,omitempty"`
	Cases   float64 `json:"cases"`
}

// RangePreset names a selectable date-range preset for the time-series chart.
type RangePreset struct {
	Label  string `json:"label"`
	Months int    `json:"months"` // 0 means the full series
}

// TimeSeriesTable is the time-series chart payload: the derived series plus
// the range presets and metric options the UI offers. NoData is set when the
// metric has no timeline for the selection.
type TimeSeriesTable struct {
	NoData  bool          `json:"no_data"`
	Range   string        `json:"range"`
	Presets []RangePreset `json:"presets"`
	Metrics []string      `json:"metrics"`
	Series  DerivedSeries `json:"series"`
}

// DecompositionTable is the four-panel decomposition payload. When the input
// is too short or degenerate, Available is false and Reason explains why;
// the rest of the page is unaffected.
type DecompositionTable struct {
	Country   string         `json:"country"`
	Metric    string         `json:"metric"`
	Available bool           `json:"available"`
	Reason    string         `json:"reason,omitempty"`
	Result    *Decomposition `json:"result,omitempty"`
}
