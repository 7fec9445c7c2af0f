// Package diff provides the week-over-week comparison command for the rollup CLI.
package diff

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinicops/rollup/internal/cmd/application"
	"github.com/clinicops/rollup/internal/output"
	"github.com/clinicops/rollup/pkg/diff"
	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/report"
)

// Flags holds the diff command flags.
type Flags struct {
	Tolerance float64
	Ignore    []string
}

// NewCommand creates the diff command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:   "diff <previous> <current>",
		Short: "Compare two generated reports week over week",
		Long: `Diff compares two reports saved with generate -o json and shows which
providers were added or removed and which of their numbers moved.

Reports are matched on canonical provider names, so the same person
lines up across weeks even when the exports spelled their name
differently. Numeric fields compare at full precision; --tolerance
treats small moves as unchanged.

The default output is a readable change listing; -o json or -o yaml
emit the full changeset for scripting.`,
		Example: `  # Compare last week's report against this week's
  rollup diff last-week.json this-week.json

  # Ignore payroll moves of a quarter hour or less
  rollup diff last-week.json this-week.json --tolerance 0.25

  # Leave the Gusto tables out of the comparison
  rollup diff last-week.json this-week.json --ignore gusto,hours

  # Machine-readable changeset
  rollup diff last-week.json this-week.json -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, app, flags, args[0], args[1])
		},
	}

	flags = addFlags(cmd)

	return cmd
}

// addFlags defines the diff command flags.
func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().Float64Var(&flags.Tolerance, "tolerance", 0, "treat numeric moves at or below this as unchanged")
	cmd.Flags().StringSliceVar(&flags.Ignore, "ignore", nil, "fields or tables to exclude from the comparison")

	return flags
}

// runDiff loads both reports, compares them, and renders the changeset.
func runDiff(cmd *cobra.Command, app application.Application, flags *Flags, previousPath, currentPath string) error {
	previous, err := readReport(previousPath)
	if err != nil {
		return err
	}
	current, err := readReport(currentPath)
	if err != nil {
		return err
	}

	changeset := diff.New(
		diff.WithTolerance(flags.Tolerance),
		diff.WithIgnoredFields(flags.Ignore...),
	).Compare(previous, current)

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), changeset)
	case "":
		changeset.Render(cmd.OutOrStdout())
		return nil
	default:
		return errors.NewValidationError("format", string(format), "diff renders as text, json, or yaml")
	}
}

// readReport loads a report previously written with generate -o json.
func readReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, errors.NewParseError("json", path, "not a report written with generate -o json", err)
	}
	return &rep, nil
}
