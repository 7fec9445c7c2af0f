// Package diff compares two weekly reports and reports what changed per
// provider.
//
// Reports are compared on their canonical provider keys, so the same person
// lines up week over week even when the source exports spelled their name
// differently. Field values are compared numerically and rendered in the
// same display formats the report tables use.
package diff

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/report"
)

// Differ detects changes between two generated reports.
type Differ interface {
	// Compare diffs the current report against the previous one and
	// returns the per-provider changes.
	Compare(previous, current *report.Report) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	tolerance    float64
	ignoreFields map[string]bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{
		ignoreFields: make(map[string]bool),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// fieldOrder lists every comparable field in report table order. Comparison
// and rendering both follow this order so output is deterministic.
var fieldOrder = []string{
	"doxy.total_visits",
	"oncehub.total_activities",
	"oncehub.scheduled",
	"oncehub.completed",
	"oncehub.canceled",
	"oncehub.no_show",
	"programs.trt",
	"programs.hrt",
	"programs.other",
	"programs.total",
	"gusto.total_hours",
	"metrics.total_visits",
	"metrics.visits_over_20",
	"metrics.pct_over_20",
	"metrics.hours_over_20",
	"metrics.avg_duration_minutes",
	"hours.gusto_hours",
	"hours.total_visits",
	"hours.calculated_hours",
}

// Compare diffs the current report against the previous one.
func (d *differ) Compare(previous, current *report.Report) *Changeset {
	if previous == nil {
		previous = &report.Report{}
	}
	if current == nil {
		current = &report.Report{}
	}

	changeset := &Changeset{
		Added:   []Entry{},
		Updated: []ProviderUpdate{},
		Removed: []Entry{},
	}

	prev := buildProfiles(previous)
	cur := buildProfiles(current)

	// Find added and updated providers.
	for key, p := range cur {
		if old, ok := prev[key]; ok {
			if changes := d.compareProfiles(old, p); len(changes) > 0 {
				changeset.Updated = append(changeset.Updated, ProviderUpdate{
					Provider: key,
					Changes:  changes,
				})
			}
		} else {
			changeset.Added = append(changeset.Added, newEntry(key, p))
		}
	}

	// Find removed providers.
	for key, p := range prev {
		if _, ok := cur[key]; !ok {
			changeset.Removed = append(changeset.Removed, newEntry(key, p))
		}
	}

	// Sort for consistent output.
	sortChangeset(changeset)
	changeset.Summary = summarize(changeset)

	return changeset
}

// compareProfiles walks the canonical field list and records every field
// whose value moved beyond the tolerance, including fields present in only
// one of the two reports.
func (d *differ) compareProfiles(prev, cur *profile) []FieldChange {
	changes := []FieldChange{}

	for _, field := range fieldOrder {
		if d.ignored(field) {
			continue
		}

		pv, pok := prev.fields[field]
		cv, cok := cur.fields[field]

		switch {
		case !pok && !cok:
			continue
		case pok != cok:
			changes = append(changes, FieldChange{
				Field: field,
				Old:   displayOrAbsent(pv, pok),
				New:   displayOrAbsent(cv, cok),
			})
		case math.Abs(pv.number-cv.number) > d.tolerance:
			changes = append(changes, FieldChange{
				Field: field,
				Old:   pv.display,
				New:   cv.display,
			})
		}
	}

	return changes
}

// ignored reports whether a field is excluded from comparison, either by its
// full name or by its table prefix ("gusto" covers "gusto.total_hours").
func (d *differ) ignored(field string) bool {
	if d.ignoreFields[field] {
		return true
	}
	for i := 0; i < len(field); i++ {
		if field[i] == '.' {
			return d.ignoreFields[field[:i]]
		}
	}
	return false
}

// profile collects one provider's values across every report table, keyed by
// qualified field name.
type profile struct {
	fields map[string]value
	visits int
	hours  float64
}

// value pairs a field's numeric value with its table display form.
type value struct {
	display string
	number  float64
}

func (p *profile) set(field string, v value) {
	p.fields[field] = v
}

// buildProfiles flattens a report into per-provider field maps. A provider
// appears if they have a row in any of the six tables.
func buildProfiles(r *report.Report) map[provider.Key]*profile {
	profiles := make(map[provider.Key]*profile)

	at := func(key provider.Key) *profile {
		p, ok := profiles[key]
		if !ok {
			p = &profile{fields: make(map[string]value)}
			profiles[key] = p
		}
		return p
	}

	for _, row := range r.DoxyVisits {
		p := at(row.Provider)
		p.visits = row.TotalVisits
		p.set("doxy.total_visits", countValue(row.TotalVisits))
	}

	for _, row := range r.OnceHubVisits {
		p := at(row.Provider)
		p.set("oncehub.total_activities", countValue(row.TotalActivities))
		p.set("oncehub.scheduled", countValue(row.Scheduled))
		p.set("oncehub.completed", countValue(row.Completed))
		p.set("oncehub.canceled", countValue(row.Canceled))
		p.set("oncehub.no_show", countValue(row.NoShow))
	}

	for _, row := range r.VisitsByProgram {
		p := at(row.Provider)
		p.set("programs.trt", countValue(row.TRT))
		p.set("programs.hrt", countValue(row.HRT))
		p.set("programs.other", countValue(row.Other))
		p.set("programs.total", countValue(row.Total))
	}

	for _, row := range r.GustoHours {
		p := at(row.Provider)
		p.hours = row.TotalHours
		p.set("gusto.total_hours", hoursValue(row.TotalHours))
	}

	for _, row := range r.PerformanceMetrics {
		p := at(row.Provider)
		p.set("metrics.total_visits", countValue(row.TotalVisits))
		p.set("metrics.visits_over_20", countValue(row.VisitsOver20))
		p.set("metrics.pct_over_20", percentValue(row.PctOver20))
		p.set("metrics.hours_over_20", hoursValue(row.HoursOver20))
		p.set("metrics.avg_duration_minutes", hoursValue(row.AvgDurationMinutes))
	}

	for _, row := range r.HoursWorked {
		p := at(row.Provider)
		p.set("hours.gusto_hours", hoursValue(row.GustoHours))
		p.set("hours.total_visits", countValue(row.TotalVisits))
		p.set("hours.calculated_hours", hoursValue(row.CalculatedHours))
	}

	return profiles
}

// sortChangeset sorts all slices in the changeset by provider.
func sortChangeset(changeset *Changeset) {
	sort.Slice(changeset.Added, func(i, j int) bool {
		return changeset.Added[i].Provider < changeset.Added[j].Provider
	})
	sort.Slice(changeset.Updated, func(i, j int) bool {
		return changeset.Updated[i].Provider < changeset.Updated[j].Provider
	})
	sort.Slice(changeset.Removed, func(i, j int) bool {
		return changeset.Removed[i].Provider < changeset.Removed[j].Provider
	})
}

// Helper functions

func newEntry(key provider.Key, p *profile) Entry {
	return Entry{
		Provider:    key,
		TotalVisits: p.visits,
		GustoHours:  p.hours,
	}
}

func countValue(n int) value {
	return value{display: strconv.Itoa(n), number: float64(n)}
}

func hoursValue(f float64) value {
	return value{display: fmt.Sprintf("%.2f", f), number: f}
}

func percentValue(f float64) value {
	return value{display: fmt.Sprintf("%.1f", f), number: f}
}

func displayOrAbsent(v value, present bool) string {
	if !present {
		return "-"
	}
	return v.display
}
