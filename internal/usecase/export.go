package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"
)

// ExportFilename is the download name of the summary export.
const ExportFilename = "covid_summary.csv"

var exportHeader = []string{
	"country", "continent", "iso2",
	"cases", "deaths", "recovered", "active", "critical",
	"tests", "population", "updated",
}

// ExportCSV renders the full summary table as CSV with a fixed column set.
// Absent optional values (tests, continent, iso2) become empty cells.
func (d *Dashboard) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := d.source.Summary(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	for i := range rows {
		r := &rows[i]
		tests := ""
		if r.Tests != nil {
			tests = formatCell(*r.Tests)
		}
		record := []string{
			r.Country,
			r.ContinentName(),
			r.ISO2(),
			formatCell(r.Cases),
			formatCell(r.Deaths),
			formatCell(r.Recovered),
			formatCell(r.Active),
			formatCell(r.Critical),
			tests,
			formatCell(r.Population),
			time.UnixMilli(r.Updated).UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
