package report

import (
	"strings"

	"github.com/clinicops/rollup/pkg/provider"
)

// FilterProvider returns a copy of the report restricted to providers whose
// canonical name contains the query, case-insensitively. An empty query
// returns the report unchanged. Row order and source statistics are kept as
// generated.
func (r *Report) FilterProvider(query string) *Report {
	if query == "" {
		return r
	}

	needle := strings.ToLower(query)
	matches := func(key provider.Key) bool {
		return strings.Contains(strings.ToLower(key.String()), needle)
	}

	filtered := &Report{Sources: r.Sources}

	for _, row := range r.DoxyVisits {
		if matches(row.Provider) {
			filtered.DoxyVisits = append(filtered.DoxyVisits, row)
		}
	}
	for _, row := range r.OnceHubVisits {
		if matches(row.Provider) {
			filtered.OnceHubVisits = append(filtered.OnceHubVisits, row)
		}
	}
	for _, row := range r.VisitsByProgram {
		if matches(row.Provider) {
			filtered.VisitsByProgram = append(filtered.VisitsByProgram, row)
		}
	}
	for _, row := range r.GustoHours {
		if matches(row.Provider) {
			filtered.GustoHours = append(filtered.GustoHours, row)
		}
	}
	for _, row := range r.PerformanceMetrics {
		if matches(row.Provider) {
			filtered.PerformanceMetrics = append(filtered.PerformanceMetrics, row)
		}
	}
	for _, row := range r.HoursWorked {
		if matches(row.Provider) {
			filtered.HoursWorked = append(filtered.HoursWorked, row)
		}
	}

	return filtered
}
