package report

import (
	"sort"

	"github.com/clinicops/rollup/pkg/program"
	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

// DoxyVisitRow is one provider's visit count from the telehealth call log.
type DoxyVisitRow struct {
	Provider    provider.Key `json:"provider" yaml:"provider"`
	TotalVisits int          `json:"total_visits" yaml:"total_visits"`
}

// OnceHubRow is one provider's booking activity summary. Distinct booking
// pages that normalize to the same provider are summed into one row.
type OnceHubRow struct {
	Provider        provider.Key `json:"provider" yaml:"provider"`
	TotalActivities int          `json:"total_activities" yaml:"total_activities"`
	Scheduled       int          `json:"scheduled" yaml:"scheduled"`
	Completed       int          `json:"completed" yaml:"completed"`
	Canceled        int          `json:"canceled" yaml:"canceled"`
	NoShow          int          `json:"no_show" yaml:"no_show"`
}

// ProgramRow is one provider's completed visit count per treatment program.
type ProgramRow struct {
	Provider provider.Key `json:"provider" yaml:"provider"`
	TRT      int          `json:"trt" yaml:"trt"`
	HRT      int          `json:"hrt" yaml:"hrt"`
	Other    int          `json:"other" yaml:"other"`
	Total    int          `json:"total" yaml:"total"`
}

// GustoHoursRow is one provider's payroll hours, restricted to providers who
// also appear in the visit log.
type GustoHoursRow struct {
	Provider   provider.Key `json:"provider" yaml:"provider"`
	TotalHours float64      `json:"total_hours" yaml:"total_hours"`
}

// MetricsRow is one provider's call performance summary. Percentage and
// average are computed over visits with a known duration only.
type MetricsRow struct {
	Provider           provider.Key `json:"provider" yaml:"provider"`
	TotalVisits        int          `json:"total_visits" yaml:"total_visits"`
	VisitsOver20       int          `json:"visits_over_20" yaml:"visits_over_20"`
	PctOver20          float64      `json:"pct_over_20" yaml:"pct_over_20"`
	HoursOver20        float64      `json:"hours_over_20" yaml:"hours_over_20"`
	AvgDurationMinutes float64      `json:"avg_duration_minutes" yaml:"avg_duration_minutes"`
}

// HoursWorkedRow compares a provider's payroll hours against the hours their
// visit count implies at the assumed visit length.
type HoursWorkedRow struct {
	Provider        provider.Key `json:"provider" yaml:"provider"`
	GustoHours      float64      `json:"gusto_hours" yaml:"gusto_hours"`
	TotalVisits     int          `json:"total_visits" yaml:"total_visits"`
	CalculatedHours float64      `json:"calculated_hours" yaml:"calculated_hours"`
}

// DoxyVisits counts visits per provider, most visits first.
func DoxyVisits(visits []records.VisitRecord) []DoxyVisitRow {
	counts := make(map[provider.Key]int)
	for _, v := range visits {
		counts[v.Provider]++
	}

	rows := make([]DoxyVisitRow, 0, len(counts))
	for key, n := range counts {
		rows = append(rows, DoxyVisitRow{Provider: key, TotalVisits: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalVisits != rows[j].TotalVisits {
			return rows[i].TotalVisits > rows[j].TotalVisits
		}
		return rows[i].Provider < rows[j].Provider
	})
	return rows
}

// OnceHubVisits sums booking activity per provider, most activity first.
func OnceHubVisits(bookings []records.BookingSummaryRecord) []OnceHubRow {
	byProvider := make(map[provider.Key]*OnceHubRow)
	order := make([]provider.Key, 0, len(bookings))
	for _, b := range bookings {
		row, ok := byProvider[b.Provider]
		if !ok {
			row = &OnceHubRow{Provider: b.Provider}
			byProvider[b.Provider] = row
			order = append(order, b.Provider)
		}
		row.TotalActivities += b.TotalActivities
		row.Scheduled += b.Scheduled
		row.Completed += b.Completed
		row.Canceled += b.Canceled
		row.NoShow += b.NoShow
	}

	rows := make([]OnceHubRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byProvider[key])
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalActivities != rows[j].TotalActivities {
			return rows[i].TotalActivities > rows[j].TotalActivities
		}
		return rows[i].Provider < rows[j].Provider
	})
	return rows
}

// VisitsByProgram counts completed visits per provider and treatment program,
// largest total first. Non-completed visits are not counted.
func VisitsByProgram(visits []records.VisitRecord) []ProgramRow {
	byProvider := make(map[provider.Key]*ProgramRow)
	order := make([]provider.Key, 0, len(visits))
	for _, v := range visits {
		if !v.Completed() {
			continue
		}
		row, ok := byProvider[v.Provider]
		if !ok {
			row = &ProgramRow{Provider: v.Provider}
			byProvider[v.Provider] = row
			order = append(order, v.Provider)
		}
		switch v.Category {
		case program.TRT:
			row.TRT++
		case program.HRT:
			row.HRT++
		default:
			row.Other++
		}
		row.Total++
	}

	rows := make([]ProgramRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byProvider[key])
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Provider < rows[j].Provider
	})
	return rows
}

// GustoHours keeps payroll hours for providers who appear in the visit log,
// most hours first. Rows that sum to zero hours are dropped, which also
// discards payroll summary lines that never match a visit provider.
func GustoHours(hours []records.HoursRecord, doxyVisits []records.VisitRecord) []GustoHoursRow {
	active := make(map[provider.Key]bool, len(doxyVisits))
	for _, v := range doxyVisits {
		active[v.Provider] = true
	}

	totals := make(map[provider.Key]float64)
	order := make([]provider.Key, 0, len(hours))
	for _, h := range hours {
		if !active[h.Provider] {
			continue
		}
		if _, ok := totals[h.Provider]; !ok {
			order = append(order, h.Provider)
		}
		totals[h.Provider] += h.TotalHours
	}

	rows := make([]GustoHoursRow, 0, len(order))
	for _, key := range order {
		if totals[key] <= 0 {
			continue
		}
		rows = append(rows, GustoHoursRow{Provider: key, TotalHours: totals[key]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalHours != rows[j].TotalHours {
			return rows[i].TotalHours > rows[j].TotalHours
		}
		return rows[i].Provider < rows[j].Provider
	})
	return rows
}

// PerformanceMetrics summarizes call performance per provider, most visits
// first. TotalVisits counts every visit; the over-20 percentage and the
// average use only visits with a known duration, and both report zero when no
// duration is known at all.
func PerformanceMetrics(visits []records.VisitRecord) []MetricsRow {
	type acc struct {
		total   int
		known   int
		sum     float64
		over    int
		overSum float64
	}

	byProvider := make(map[provider.Key]*acc)
	order := make([]provider.Key, 0, len(visits))
	for _, v := range visits {
		a, ok := byProvider[v.Provider]
		if !ok {
			a = &acc{}
			byProvider[v.Provider] = a
			order = append(order, v.Provider)
		}
		a.total++
		if d, ok := v.Duration(); ok {
			a.known++
			a.sum += d
			if d > 20.0 {
				a.over++
				a.overSum += d
			}
		}
	}

	rows := make([]MetricsRow, 0, len(order))
	for _, key := range order {
		a := byProvider[key]
		row := MetricsRow{
			Provider:     key,
			TotalVisits:  a.total,
			VisitsOver20: a.over,
			HoursOver20:  a.overSum / 60,
		}
		if a.known > 0 {
			row.PctOver20 = float64(a.over) / float64(a.known) * 100
			row.AvgDurationMinutes = a.sum / float64(a.known)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalVisits != rows[j].TotalVisits {
			return rows[i].TotalVisits > rows[j].TotalVisits
		}
		return rows[i].Provider < rows[j].Provider
	})
	return rows
}

// HoursWorked joins payroll hours with visit counts by provider, largest
// calculated hours first. The join is full outer: a provider present on only
// one side keeps that side's value and zero for the other. CalculatedHours is
// what the visit count implies at AssumedVisitMinutes per visit.
func HoursWorked(gustoRows []GustoHoursRow, doxyRows []DoxyVisitRow) []HoursWorkedRow {
	byProvider := make(map[provider.Key]*HoursWorkedRow)
	order := make([]provider.Key, 0, len(gustoRows)+len(doxyRows))

	get := func(key provider.Key) *HoursWorkedRow {
		row, ok := byProvider[key]
		if !ok {
			row = &HoursWorkedRow{Provider: key}
			byProvider[key] = row
			order = append(order, key)
		}
		return row
	}

	for _, g := range gustoRows {
		get(g.Provider).GustoHours = g.TotalHours
	}
	for _, d := range doxyRows {
		row := get(d.Provider)
		row.TotalVisits = d.TotalVisits
		row.CalculatedHours = float64(d.TotalVisits) * AssumedVisitMinutes / 60
	}

	rows := make([]HoursWorkedRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *byProvider[key])
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CalculatedHours != rows[j].CalculatedHours {
			return rows[i].CalculatedHours > rows[j].CalculatedHours
		}
		return rows[i].Provider < rows[j].Provider
	})
	return rows
}
