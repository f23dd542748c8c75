package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type KPIRequest struct {
	Country string `query:"country" json:"country" default:"Global"`
}

type TimeSeriesRequest struct {
	Country string `query:"country" json:"country" default:"Global"`
	Metric  string `query:"metric" json:"metric" default:"cases" validate:"oneof=cases deaths recovered tests"`
	Window  int    `query:"window" json:"window" default:"7" validate:"gte=1,lte=30"`
	Range   string `query:"range" json:"range" default:"all" validate:"oneof=1m 3m 6m all"`
}

type DecompositionRequest struct {
	Country string `query:"country" json:"country" default:"Global"`
	Metric  string `query:"metric" json:"metric" default:"cases" validate:"oneof=cases deaths recovered tests"`
}
