// Package generate provides the report generation command for the rollup CLI.
package generate

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinicops/rollup"
	"github.com/clinicops/rollup/internal/cmd/application"
	"github.com/clinicops/rollup/internal/cmd/emoji"
	"github.com/clinicops/rollup/internal/output"
	"github.com/clinicops/rollup/pkg/constants"
	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/report"
	"github.com/clinicops/rollup/pkg/xlsx"
)

// Flags holds the generate command flags.
type Flags struct {
	Doxy     string
	Account  string
	Gusto    string
	Booking  string
	XLSX     string
	Provider string
}

// NewCommand creates the generate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate the weekly report from local export files",
		Long: `Generate reconciles the weekly activity exports into the provider report.

Three exports are required: the Doxy call log, the account detail visit
records, and the Gusto time-tracking hours. The OnceHub booking summary
is optional; without it the booking table is empty.

Exports may be CSV or the HTML tables some systems save under an .xls
name; encodings are detected automatically. Rows that cannot be parsed
are skipped and logged rather than failing the report.

By default the report prints to stdout in the format selected with -o
(or a terminal table when stdout is a terminal). With --xlsx the report
is written as a multi-sheet Excel workbook instead.`,
		Example: `  # Print the report as a terminal table
  rollup generate --doxy doxy.csv --account account.xls --gusto gusto.csv

  # Include the optional booking summary
  rollup generate --doxy doxy.csv --account account.xls --gusto gusto.csv --booking booking.xls

  # Write a multi-sheet Excel workbook
  rollup generate --doxy doxy.csv --account account.xls --gusto gusto.csv --xlsx report.xlsx

  # Machine-readable output for scripting
  rollup generate --doxy doxy.csv --account account.xls --gusto gusto.csv -o json > report.json

  # Only providers matching a name
  rollup generate --doxy doxy.csv --account account.xls --gusto gusto.csv --provider smith`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, app, flags)
		},
	}

	flags = addFlags(cmd)

	return cmd
}

// addFlags defines the generate command flags.
func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVar(&flags.Doxy, "doxy", "", "Doxy call log export")
	cmd.Flags().StringVar(&flags.Account, "account", "", "account detail visit export")
	cmd.Flags().StringVar(&flags.Gusto, "gusto", "", "Gusto time-tracking hours export")
	cmd.Flags().StringVar(&flags.Booking, "booking", "", "OnceHub booking summary export (optional)")
	cmd.Flags().StringVar(&flags.XLSX, "xlsx", "", "write the report as an Excel workbook to this path")
	cmd.Flags().StringVar(&flags.Provider, "provider", "", "restrict the report to providers matching this name")

	_ = cmd.MarkFlagRequired("doxy")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("gusto")

	return flags
}

// runGenerate reads the exports, runs the pipeline, and renders the report.
func runGenerate(cmd *cobra.Command, app application.Application, flags *Flags) error {
	inputs, err := readInputs(flags)
	if err != nil {
		return err
	}

	r, err := app.Rollup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.GenerateTimeout)
	defer cancel()

	rep, err := r.Generate(ctx, inputs)
	if err != nil {
		return err
	}
	rep = rep.FilterProvider(flags.Provider)

	if flags.XLSX != "" {
		return writeWorkbook(cmd, rep, flags.XLSX)
	}

	// Validate the configured format before detection so a typo fails loudly
	// instead of falling back to a table.
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	return output.FormatReport(cmd.OutOrStdout(), rep, output.DetectFormat(string(format)))
}

// readInputs loads the export files named by the flags into raw buffers.
func readInputs(flags *Flags) (rollup.Inputs, error) {
	var in rollup.Inputs

	files := []struct {
		path string
		dst  *[]byte
	}{
		{flags.Doxy, &in.Doxy},
		{flags.Account, &in.AccountDetail},
		{flags.Gusto, &in.Gusto},
		{flags.Booking, &in.Booking},
	}

	for _, f := range files {
		if f.path == "" {
			// Only the optional booking export can be empty here; cobra
			// enforces the required flags.
			continue
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return rollup.Inputs{}, errors.WrapIO("read", f.path, err)
		}
		*f.dst = data
	}

	return in, nil
}

// writeWorkbook renders the report tables into an Excel workbook on disk and
// prints a short confirmation with the headline numbers.
func writeWorkbook(cmd *cobra.Command, rep *report.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	if err := xlsx.Write(f, rep.Tables()); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendering workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}

	cmd.Printf("%s Report written to %s (%d providers, %d visits)\n",
		emoji.Success, path, rep.ProviderCount(), rep.TotalVisits())
	if n := rep.Warnings(); n > 0 {
		cmd.Printf("%s %d rows skipped during ingestion (see log)\n", emoji.Warning, n)
	}
	return nil
}
