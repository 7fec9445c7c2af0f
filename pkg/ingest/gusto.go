package ingest

import (
	"fmt"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

// GustoIngestor parses the payroll time-tracking export. The file opens with
// a multi-row preamble (company name, pay period, blank spacers) before the
// real header, so the header is found by scanning, not by position.
type GustoIngestor struct {
	normalizer *provider.Normalizer
}

// NewGustoIngestor creates a GustoIngestor. A nil normalizer uses the
// default configuration.
func NewGustoIngestor(n *provider.Normalizer) *GustoIngestor {
	if n == nil {
		n = provider.NewNormalizer(nil)
	}
	return &GustoIngestor{normalizer: n}
}

// Ingest parses the payroll export into per-provider hours records.
// Zero-hour records are kept; dropping them is a report rule.
func (g *GustoIngestor) Ingest(data []byte) ([]records.HoursRecord, *records.Stats, error) {
	stats := records.NewStats(SourceGusto)

	rows, err := parseSource(SourceGusto, data)
	if err != nil {
		return nil, stats, err
	}
	if len(rows) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceGusto, 0, 0)
	}

	required := []column{
		col("Name", "employee", "employee name"),
		col("Total hours", "hours", "total"),
	}
	headerRow, index, missing := findHeaderRow(rows, required)
	if missing != "" {
		return nil, stats, errors.NewMissingColumnError(SourceGusto, missing)
	}
	nameIdx, _ := required[0].find(index)
	hoursIdx, _ := required[1].find(index)

	var hours []records.HoursRecord
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if rowEmpty(row) {
			continue
		}
		stats.Rows++
		rowNum := i + 1

		raw := cell(row, nameIdx)
		if g.normalizer.Excluded(raw) {
			stats.Exclude()
			continue
		}
		key, err := g.normalizer.Normalize(raw)
		if err != nil {
			stats.Warn(rowNum, fmt.Sprintf("invalid provider name %q", raw))
			continue
		}

		text := cell(row, hoursIdx)
		total, err := parseHours(text)
		if err != nil {
			stats.Warn(rowNum, fmt.Sprintf("invalid hours %q", text))
			continue
		}
		if total < 0 {
			stats.Warn(rowNum, fmt.Sprintf("negative hours %q", text))
			continue
		}

		hours = append(hours, records.HoursRecord{
			Provider:   key,
			TotalHours: total,
		})
	}

	stats.Records = len(hours)
	if len(hours) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceGusto, stats.Rows, stats.Skipped)
	}
	return hours, stats, nil
}
