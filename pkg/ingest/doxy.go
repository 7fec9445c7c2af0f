package ingest

import (
	"fmt"
	"time"

	"github.com/clinicops/rollup/pkg/duration"
	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

// DoxyIngestor parses the telehealth call log export. Every row is one
// completed call with the provider's display name and a free-form duration.
type DoxyIngestor struct {
	normalizer *provider.Normalizer
}

// NewDoxyIngestor creates a DoxyIngestor. A nil normalizer uses the default
// configuration.
func NewDoxyIngestor(n *provider.Normalizer) *DoxyIngestor {
	if n == nil {
		n = provider.NewNormalizer(nil)
	}
	return &DoxyIngestor{normalizer: n}
}

// Ingest parses the call log into visit records.
func (d *DoxyIngestor) Ingest(data []byte) ([]records.VisitRecord, *records.Stats, error) {
	stats := records.NewStats(SourceDoxy)

	rows, err := parseSource(SourceDoxy, data)
	if err != nil {
		return nil, stats, err
	}
	if len(rows) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceDoxy, 0, 0)
	}

	required := []column{
		col("Provider name", "provider", "clinician", "clinician name"),
		col("Duration", "call duration", "visit duration"),
	}
	headerRow, index, missing := findHeaderRow(rows, required)
	if missing != "" {
		return nil, stats, errors.NewMissingColumnError(SourceDoxy, missing)
	}
	nameIdx, _ := required[0].find(index)
	durIdx, _ := required[1].find(index)
	dateIdx, hasDate := col("Date", "call date", "visit date", "start time").find(index)

	var visits []records.VisitRecord
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if rowEmpty(row) {
			continue
		}
		stats.Rows++
		rowNum := i + 1

		raw := cell(row, nameIdx)
		if d.normalizer.Excluded(raw) {
			stats.Exclude()
			continue
		}
		key, err := d.normalizer.Normalize(raw)
		if err != nil {
			stats.Warn(rowNum, fmt.Sprintf("invalid provider name %q", raw))
			continue
		}

		// Missing durations stay in the count as unknown; only durations
		// that are present but unparseable drop the row.
		var dur *float64
		if durText := cell(row, durIdx); !duration.Missing(durText) {
			minutes, err := duration.Parse(durText)
			if err != nil {
				stats.Warn(rowNum, fmt.Sprintf("invalid duration %q", durText))
				continue
			}
			dur = &minutes
		}

		var date time.Time
		if hasDate {
			if t, ok := parseDate(cell(row, dateIdx)); ok {
				date = t
			}
		}

		visits = append(visits, records.VisitRecord{
			Provider:        key,
			Date:            date,
			DurationMinutes: dur,
			Status:          records.StatusCompleted,
		})
	}

	stats.Records = len(visits)
	if len(visits) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceDoxy, stats.Rows, stats.Skipped)
	}
	return visits, stats, nil
}
