// Package report aggregates normalized activity records into the six tables
// of the weekly provider report.
//
// The six builders are pure functions over typed record slices: they group,
// join, compute, and sort without touching shared state, so they may run in
// any order once ingestion is done. Rows keep full float precision; numbers
// are fixed to display decimals only when rendered into a Table.
package report

import (
	"fmt"
	"strconv"

	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

// AssumedVisitMinutes is the visit length used to convert visit counts into
// hours on the Hours Worked table.
const AssumedVisitMinutes = 20

// Report holds the six built tables plus ingestion statistics for each
// source that contributed to them.
type Report struct {
	DoxyVisits         []DoxyVisitRow   `json:"doxy_visits" yaml:"doxy_visits"`
	OnceHubVisits      []OnceHubRow     `json:"oncehub_visits" yaml:"oncehub_visits"`
	VisitsByProgram    []ProgramRow     `json:"visits_by_program" yaml:"visits_by_program"`
	GustoHours         []GustoHoursRow  `json:"gusto_hours" yaml:"gusto_hours"`
	PerformanceMetrics []MetricsRow     `json:"performance_metrics" yaml:"performance_metrics"`
	HoursWorked        []HoursWorkedRow `json:"hours_worked" yaml:"hours_worked"`
	Sources            []records.Stats  `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// Table is one renderable report sheet: a name, ordered column headers, and
// rows of display-formatted cells.
type Table struct {
	Name    string     `json:"name" yaml:"name"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Tables renders the report in sheet order. Always six tables, even when a
// section has no rows.
func (r *Report) Tables() []Table {
	doxy := Table{
		Name:    "Doxy Visits",
		Headers: []string{"Provider", "Total Visits"},
	}
	for _, row := range r.DoxyVisits {
		doxy.Rows = append(doxy.Rows, []string{
			row.Provider.String(),
			strconv.Itoa(row.TotalVisits),
		})
	}

	oncehub := Table{
		Name:    "OnceHub Visits",
		Headers: []string{"Provider", "Total Activities", "Scheduled", "Completed", "Canceled", "No-show"},
	}
	for _, row := range r.OnceHubVisits {
		oncehub.Rows = append(oncehub.Rows, []string{
			row.Provider.String(),
			strconv.Itoa(row.TotalActivities),
			strconv.Itoa(row.Scheduled),
			strconv.Itoa(row.Completed),
			strconv.Itoa(row.Canceled),
			strconv.Itoa(row.NoShow),
		})
	}

	programs := Table{
		Name:    "Visits by Program",
		Headers: []string{"Provider", "TRT", "HRT", "Other", "Total"},
	}
	for _, row := range r.VisitsByProgram {
		programs.Rows = append(programs.Rows, []string{
			row.Provider.String(),
			strconv.Itoa(row.TRT),
			strconv.Itoa(row.HRT),
			strconv.Itoa(row.Other),
			strconv.Itoa(row.Total),
		})
	}

	gusto := Table{
		Name:    "Gusto Hours",
		Headers: []string{"Provider", "Total Hours"},
	}
	for _, row := range r.GustoHours {
		gusto.Rows = append(gusto.Rows, []string{
			row.Provider.String(),
			formatHours(row.TotalHours),
		})
	}

	metrics := Table{
		Name: "Doxy Performance Metrics",
		Headers: []string{
			"Provider", "Total Visits", "Visits Over 20 Min",
			"% Over 20 Min", "Hours on 20+ Min Visits", "Avg Duration (min)",
		},
	}
	for _, row := range r.PerformanceMetrics {
		metrics.Rows = append(metrics.Rows, []string{
			row.Provider.String(),
			strconv.Itoa(row.TotalVisits),
			strconv.Itoa(row.VisitsOver20),
			formatPercent(row.PctOver20),
			formatHours(row.HoursOver20),
			formatHours(row.AvgDurationMinutes),
		})
	}

	worked := Table{
		Name:    "Hours Worked",
		Headers: []string{"Provider", "Gusto Hours", "Total Visits", "Hours Worked (20 min/visit)"},
	}
	for _, row := range r.HoursWorked {
		worked.Rows = append(worked.Rows, []string{
			row.Provider.String(),
			formatHours(row.GustoHours),
			strconv.Itoa(row.TotalVisits),
			formatHours(row.CalculatedHours),
		})
	}

	return []Table{doxy, oncehub, programs, gusto, metrics, worked}
}

// ProviderCount reports the number of distinct providers appearing anywhere
// in the report.
func (r *Report) ProviderCount() int {
	seen := make(map[provider.Key]bool)
	for _, row := range r.DoxyVisits {
		seen[row.Provider] = true
	}
	for _, row := range r.OnceHubVisits {
		seen[row.Provider] = true
	}
	for _, row := range r.VisitsByProgram {
		seen[row.Provider] = true
	}
	for _, row := range r.GustoHours {
		seen[row.Provider] = true
	}
	for _, row := range r.HoursWorked {
		seen[row.Provider] = true
	}
	return len(seen)
}

// TotalVisits reports the number of visits counted on the Doxy Visits table.
func (r *Report) TotalVisits() int {
	total := 0
	for _, row := range r.DoxyVisits {
		total += row.TotalVisits
	}
	return total
}

// Warnings reports the number of skipped rows across all sources.
func (r *Report) Warnings() int {
	total := 0
	for _, s := range r.Sources {
		total += len(s.Warnings)
	}
	return total
}

// formatHours renders hour and minute quantities with two decimals.
func formatHours(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// formatPercent renders percentages with one decimal.
func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
