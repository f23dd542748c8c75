package models

// Metric names accepted by the historical endpoints. "tests" is a valid
// selector but the source publishes no tests timeline, which the dashboard
// renders as "no data".
const (
	MetricCases     = "cases"
	MetricDeaths    = "deaths"
	MetricRecovered = "recovered"
	MetricTests     = "tests"
)

// CountryGlobal is the reserved selector value for the aggregate view.
const CountryGlobal = "Global"

// Metrics returns the metric selector values in display order.
func Metrics() []string {
	return []string{MetricCases, MetricDeaths, MetricRecovered, MetricTests}
}

// Timeline maps metric name -> date key ("M/D/YY", no leading zeros
// guaranteed) -> cumulative count. Date keys are not guaranteed sorted.
type Timeline map[string]map[string]float64

// Metric returns the per-date sub-mapping for one metric, or nil.
func (t Timeline) Metric(name string) map[string]float64 {
	if t == nil {
		return nil
	}
	return t[name]
}

// CountryHistorical is one country's historical payload.
type CountryHistorical struct {
	Country  string   `json:"country"`
	Province *string  `json:"province"`
	Timeline Timeline `json:"timeline"`
}
