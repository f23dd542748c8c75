package models

// CountryInfo is the nested country metadata block from the summary endpoint.
type CountryInfo struct {
	ID   *int    `json:"_id"`
	ISO2 *string `json:"iso2"`
	ISO3 *string `json:"iso3"`
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
	Flag string  `json:"flag"`
}

// CountrySummary is one row of the per-country summary table. Uniqueness of
// the country name is not guaranteed by the source and not enforced here.
// Tests and Continent may be absent for some territories.
type CountrySummary struct {
	Country     string      `json:"country"`
	CountryInfo CountryInfo `json:"countryInfo"`
	Continent   *string     `json:"continent"`
	Updated     int64       `json:"updated"`
	Cases       float64     `json:"cases"`
	Deaths      float64     `json:"deaths"`
	Recovered   float64     `json:"recovered"`
	Active      float64     `json:"active"`
	Critical    float64     `json:"critical"`
	Tests       *float64    `json:"tests"`
	Population  float64     `json:"population"`
}

// ISO2 returns the two-letter country code, or "" when the source has none.
func (s *CountrySummary) ISO2() string {
	if s.CountryInfo.ISO2 == nil {
		return ""
	}
	return *s.CountryInfo.ISO2
}

// ContinentName returns the continent, or "" when absent.
func (s *CountrySummary) ContinentName() string {
	if s.Continent == nil {
		return ""
	}
	return *s.Continent
}
