package diff

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/clinicops/rollup/pkg/provider"
)

// FieldChange represents a change to a specific report field. Values carry
// the display form used on the report tables.
type FieldChange struct {
	Field string `json:"field" yaml:"field"`
	Old   string `json:"old" yaml:"old"`
	New   string `json:"new" yaml:"new"`
}

// Entry identifies a provider who appears in only one of the two reports,
// with their headline numbers from that report.
type Entry struct {
	Provider    provider.Key `json:"provider" yaml:"provider"`
	TotalVisits int          `json:"total_visits" yaml:"total_visits"`
	GustoHours  float64      `json:"gusto_hours" yaml:"gusto_hours"`
}

// ProviderUpdate represents a provider present in both reports whose numbers
// moved.
type ProviderUpdate struct {
	Provider provider.Key  `json:"provider" yaml:"provider"`
	Changes  []FieldChange `json:"changes" yaml:"changes"`
}

// Changeset represents all provider changes between two reports.
type Changeset struct {
	Added   []Entry          `json:"added" yaml:"added"`
	Updated []ProviderUpdate `json:"updated" yaml:"updated"`
	Removed []Entry          `json:"removed" yaml:"removed"`
	Summary Summary          `json:"summary" yaml:"summary"`
}

// Summary provides summary statistics for a changeset.
type Summary struct {
	Added        int `json:"added" yaml:"added"`
	Updated      int `json:"updated" yaml:"updated"`
	Removed      int `json:"removed" yaml:"removed"`
	FieldChanges int `json:"field_changes" yaml:"field_changes"`
	TotalChanges int `json:"total_changes" yaml:"total_changes"`
}

// summarize computes the summary for a changeset.
func summarize(c *Changeset) Summary {
	fieldChanges := 0
	for _, update := range c.Updated {
		fieldChanges += len(update.Changes)
	}

	return Summary{
		Added:        len(c.Added),
		Updated:      len(c.Updated),
		Removed:      len(c.Removed),
		FieldChanges: fieldChanges,
		TotalChanges: len(c.Added) + len(c.Updated) + len(c.Removed),
	}
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	parts := []string{}
	if c.Summary.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", c.Summary.Added))
	}
	if c.Summary.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", c.Summary.Updated))
	}
	if c.Summary.Removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", c.Summary.Removed))
	}

	s := fmt.Sprintf("Providers: %s", strings.Join(parts, ", "))
	if c.Summary.FieldChanges > 0 {
		s += fmt.Sprintf(" (%d field changes)", c.Summary.FieldChanges)
	}
	return s
}

// Render writes a detailed, human-readable view of the changeset.
func (c *Changeset) Render(w io.Writer) {
	fmt.Fprintln(w, c.String())
	fmt.Fprintln(w, strings.Repeat("─", 80))

	if len(c.Added) > 0 {
		fmt.Fprintf(w, "\n➕ Added Providers (%d):\n", len(c.Added))
		for _, entry := range c.Added {
			renderEntry(w, entry)
		}
	}

	if len(c.Updated) > 0 {
		fmt.Fprintf(w, "\n🔄 Updated Providers (%d):\n", len(c.Updated))
		for _, update := range c.Updated {
			fmt.Fprintf(w, "  • %s:\n", update.Provider)
			for _, change := range update.Changes {
				fmt.Fprintf(w, "    - %s: %s → %s\n", change.Field, change.Old, change.New)
			}
		}
	}

	if len(c.Removed) > 0 {
		fmt.Fprintf(w, "\n⚠️  Removed Providers (%d):\n", len(c.Removed))
		for _, entry := range c.Removed {
			renderEntry(w, entry)
		}
	}
}

// Print outputs the detailed view to stdout.
func (c *Changeset) Print() {
	c.Render(os.Stdout)
}

// renderEntry writes one added or removed provider with their headline
// numbers where present.
func renderEntry(w io.Writer, entry Entry) {
	fmt.Fprintf(w, "  • %s", entry.Provider)

	details := []string{}
	if entry.TotalVisits > 0 {
		details = append(details, fmt.Sprintf("%d visits", entry.TotalVisits))
	}
	if entry.GustoHours > 0 {
		details = append(details, fmt.Sprintf("%.2f gusto hours", entry.GustoHours))
	}
	if len(details) > 0 {
		fmt.Fprintf(w, " - %s", strings.Join(details, ", "))
	}
	fmt.Fprintln(w)
}
