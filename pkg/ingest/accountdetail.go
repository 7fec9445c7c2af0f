package ingest

import (
	"fmt"
	"time"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/program"
	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

// AccountDetailIngestor parses the categorized visit export from the EHR.
// Rows carry a status, an owning provider, and an event type that decides
// the treatment program. The export is usually an HTML table wearing an .xls
// file name, with a title block above the real header.
type AccountDetailIngestor struct {
	normalizer  *provider.Normalizer
	categorizer *program.Categorizer
}

// NewAccountDetailIngestor creates an AccountDetailIngestor. Nil dependencies
// use their default configurations.
func NewAccountDetailIngestor(n *provider.Normalizer, c *program.Categorizer) *AccountDetailIngestor {
	if n == nil {
		n = provider.NewNormalizer(nil)
	}
	if c == nil {
		c = program.NewCategorizer(nil)
	}
	return &AccountDetailIngestor{normalizer: n, categorizer: c}
}

// Ingest parses the account detail export into categorized visit records.
// All statuses are retained; filtering to completed visits is a report rule,
// not an ingestion rule.
func (a *AccountDetailIngestor) Ingest(data []byte) ([]records.VisitRecord, *records.Stats, error) {
	stats := records.NewStats(SourceAccountDetail)

	rows, err := parseSource(SourceAccountDetail, data)
	if err != nil {
		return nil, stats, err
	}
	if len(rows) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceAccountDetail, 0, 0)
	}

	required := []column{
		col("Status"),
		col("Owner", "provider", "provider name", "staff"),
		col("Event Type", "event type", "subject", "event"),
	}
	headerRow, index, missing := findHeaderRow(rows, required)
	if missing != "" {
		return nil, stats, errors.NewMissingColumnError(SourceAccountDetail, missing)
	}
	statusIdx, _ := required[0].find(index)
	ownerIdx, _ := required[1].find(index)
	typeIdx, _ := required[2].find(index)
	dateIdx, hasDate := col("Date", "start time", "event date").find(index)

	var visits []records.VisitRecord
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if rowEmpty(row) {
			continue
		}
		stats.Rows++
		rowNum := i + 1

		raw := cell(row, ownerIdx)
		if a.normalizer.Excluded(raw) {
			stats.Exclude()
			continue
		}
		key, err := a.normalizer.Normalize(raw)
		if err != nil {
			stats.Warn(rowNum, fmt.Sprintf("invalid provider name %q", raw))
			continue
		}

		var date time.Time
		if hasDate {
			if t, ok := parseDate(cell(row, dateIdx)); ok {
				date = t
			}
		}

		visits = append(visits, records.VisitRecord{
			Provider: key,
			Date:     date,
			Category: a.categorizer.Categorize(cell(row, typeIdx)),
			Status:   records.ParseStatus(cell(row, statusIdx)),
		})
	}

	stats.Records = len(visits)
	if len(visits) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceAccountDetail, stats.Rows, stats.Skipped)
	}
	return visits, stats, nil
}
