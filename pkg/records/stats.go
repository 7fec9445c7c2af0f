package records

import "fmt"

// Warning records one row an ingestor dropped and why. Row numbers refer to
// the source file, header included, so they match what a person sees when
// they open the export.
type Warning struct {
	Row    int    `json:"row" yaml:"row"`
	Reason string `json:"reason" yaml:"reason"`
}

// String returns the warning in "row N: reason" form.
func (w Warning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Reason)
}

// Stats summarizes one source's ingestion outcome. A partially damaged export
// still produces a report; Stats is how callers find out what was dropped.
type Stats struct {
	// Source names the export these stats describe.
	Source string `json:"source" yaml:"source"`

	// Rows is the number of data rows seen, excluding the header.
	Rows int `json:"rows" yaml:"rows"`

	// Records is the number of records successfully produced.
	Records int `json:"records" yaml:"records"`

	// Skipped is the number of rows dropped for data problems.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Excluded is the number of rows dropped by the exclusion list.
	Excluded int `json:"excluded" yaml:"excluded"`

	// Warnings describe each skipped row.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewStats creates Stats for the named source.
func NewStats(source string) *Stats {
	return &Stats{Source: source}
}

// Warn records a skipped row.
func (s *Stats) Warn(row int, reason string) {
	s.Skipped++
	s.Warnings = append(s.Warnings, Warning{Row: row, Reason: reason})
}

// Exclude records a row dropped by the exclusion list.
func (s *Stats) Exclude() {
	s.Excluded++
}

// Usable reports whether ingestion produced any records at all.
func (s *Stats) Usable() bool {
	return s.Records > 0
}
