// Package records defines the normalized record types the ingestors emit and
// the report builders consume. Each record carries a canonical provider key,
// so records from different exports join without further name handling.
package records

import (
	"strings"
	"time"

	"github.com/clinicops/rollup/pkg/program"
	"github.com/clinicops/rollup/pkg/provider"
)

// Status is the visit outcome as reported by the source system.
type Status string

// Known visit statuses.
const (
	StatusCompleted Status = "Completed"
	StatusScheduled Status = "Scheduled"
	StatusCanceled  Status = "Canceled"
	StatusNoShow    Status = "No-show"
)

// ParseStatus maps raw status text onto a known Status. Unrecognized values
// pass through unchanged so they can still be inspected downstream.
func ParseStatus(raw string) Status {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "completed", "complete":
		return StatusCompleted
	case "scheduled":
		return StatusScheduled
	case "canceled", "cancelled":
		return StatusCanceled
	case "no-show", "no show", "noshow":
		return StatusNoShow
	default:
		return Status(trimmed)
	}
}

// String returns the status as a display string.
func (s Status) String() string {
	return string(s)
}

// VisitRecord is one visit from the Doxy call log or the Account Detail
// export. Records are immutable once ingested.
type VisitRecord struct {
	// Provider is the canonical provider key.
	Provider provider.Key

	// Date is the visit date, or the zero time when the source row carried
	// no usable date.
	Date time.Time

	// DurationMinutes is the visit length in fractional minutes. Nil means
	// the source recorded no duration; nil is never conflated with zero.
	DurationMinutes *float64

	// Category is the treatment program this visit was classified into.
	Category program.Category

	// Status is the visit outcome.
	Status Status
}

// Duration returns the visit length and whether it is known.
func (v VisitRecord) Duration() (float64, bool) {
	if v.DurationMinutes == nil {
		return 0, false
	}
	return *v.DurationMinutes, true
}

// Completed reports whether the visit actually took place.
func (v VisitRecord) Completed() bool {
	return v.Status == StatusCompleted
}

// BookingSummaryRecord is one provider's row from the booking system's
// activity summary. Counts are passed through as reported; no arithmetic
// relationship between them is assumed.
type BookingSummaryRecord struct {
	Provider        provider.Key
	TotalActivities int
	Scheduled       int
	Completed       int
	Canceled        int
	NoShow          int
}

// HoursRecord is one provider's payroll hours total from the time-tracking
// export.
type HoursRecord struct {
	Provider   provider.Key
	TotalHours float64
}
