package ingest

import (
	"fmt"
	"regexp"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

// bookingQualifier matches the parenthesized qualifiers the booking system
// appends to page names, like "Jane Doe (Weight Loss)".
var bookingQualifier = regexp.MustCompile(`\s*\([^)]*\)`)

// BookingIngestor parses the booking system's per-provider activity summary.
// The provider is the booking page name; the counts are passed through as
// the system reports them.
type BookingIngestor struct {
	normalizer *provider.Normalizer
}

// NewBookingIngestor creates a BookingIngestor. A nil normalizer uses the
// default configuration.
func NewBookingIngestor(n *provider.Normalizer) *BookingIngestor {
	if n == nil {
		n = provider.NewNormalizer(nil)
	}
	return &BookingIngestor{normalizer: n}
}

// Ingest parses the booking summary into per-provider activity records.
func (b *BookingIngestor) Ingest(data []byte) ([]records.BookingSummaryRecord, *records.Stats, error) {
	stats := records.NewStats(SourceBooking)

	rows, err := parseSource(SourceBooking, data)
	if err != nil {
		return nil, stats, err
	}
	if len(rows) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceBooking, 0, 0)
	}

	required := []column{
		col("Booking page", "booking page name"),
	}
	headerRow, index, missing := findHeaderRow(rows, required)
	if missing != "" {
		return nil, stats, errors.NewMissingColumnError(SourceBooking, missing)
	}
	pageIdx, _ := required[0].find(index)

	// Count columns are optional: older summary exports carry only a subset,
	// and absent columns read as zero.
	counts := []struct {
		col column
		idx int
		ok  bool
	}{
		{col: col("All activities", "total activities", "activities")},
		{col: col("Scheduled")},
		{col: col("Completed")},
		{col: col("Canceled", "cancelled")},
		{col: col("No-show", "no-shows", "no show")},
	}
	for i := range counts {
		counts[i].idx, counts[i].ok = counts[i].col.find(index)
	}

	var bookings []records.BookingSummaryRecord
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if rowEmpty(row) {
			continue
		}
		stats.Rows++
		rowNum := i + 1

		raw := bookingQualifier.ReplaceAllString(cell(row, pageIdx), "")
		if b.normalizer.Excluded(raw) {
			stats.Exclude()
			continue
		}
		key, err := b.normalizer.Normalize(raw)
		if err != nil {
			stats.Warn(rowNum, fmt.Sprintf("invalid booking page %q", cell(row, pageIdx)))
			continue
		}

		values := make([]int, len(counts))
		bad := false
		for ci, c := range counts {
			if !c.ok {
				continue
			}
			n, err := parseCount(cell(row, c.idx))
			if err != nil {
				stats.Warn(rowNum, fmt.Sprintf("invalid %s count %q", c.col.name, cell(row, c.idx)))
				bad = true
				break
			}
			values[ci] = n
		}
		if bad {
			continue
		}

		bookings = append(bookings, records.BookingSummaryRecord{
			Provider:        key,
			TotalActivities: values[0],
			Scheduled:       values[1],
			Completed:       values[2],
			Canceled:        values[3],
			NoShow:          values[4],
		})
	}

	stats.Records = len(bookings)
	if len(bookings) == 0 {
		return nil, stats, errors.NewEmptySourceError(SourceBooking, stats.Rows, stats.Skipped)
	}
	return bookings, stats, nil
}
