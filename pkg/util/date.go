package util

import "time"

// RangeStart returns the inclusive start of a date-range preset ending at
// `last`. Presets follow the dashboard's range selector: "1m", "3m", "6m"
// months back, anything else means the full series.
func RangeStart(last time.Time, preset string) (time.Time, bool) {
	switch preset {
	case "1m":
		return last.AddDate(0, -1, 0), true
	case "3m":
		return last.AddDate(0, -3, 0), true
	case "6m":
		return last.AddDate(0, -6, 0), true
	default:
		return time.Time{}, false
	}
}
