// Package ingest parses the four activity exports into normalized records.
//
// Each source gets its own ingestor because each export disagrees about
// encoding, layout, and header spelling. All four follow the same contract:
// file-level problems (undecodable bytes, missing required columns, nothing
// usable at all) are errors; row-level problems are skipped, counted, and
// reported through records.Stats so one bad row never sinks a report.
package ingest

import (
	"strconv"
	"strings"
	"time"
)

// Source names used in errors, stats, and logs.
const (
	SourceDoxy          = "doxy report"
	SourceBooking       = "booking summary"
	SourceAccountDetail = "account detail"
	SourceGusto         = "gusto hours"
)

// dateLayouts are the date and datetime formats the exports write, most
// specific first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// parseDate parses a visit date, trying each known layout. Dates are
// optional everywhere, so failure means "no date", not a skipped row.
func parseDate(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseCount parses an activity count leniently: blank is zero and thousands
// separators are tolerated. Anything else non-numeric is an error the caller
// turns into a row skip.
func parseCount(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, nil
	}
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return strconv.Atoi(trimmed)
}

// parseHours parses payroll hours, tolerating currency noise like "$" and
// thousands separators that spreadsheet exports add.
func parseHours(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.ReplaceAll(trimmed, "$", "")
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	trimmed = strings.TrimSpace(trimmed)
	return strconv.ParseFloat(trimmed, 64)
}
