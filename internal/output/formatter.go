// Package output provides formatters for command output.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/clinicops/rollup/pkg/report"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatCSV represents CSV output format.
	FormatCSV Format = "csv"
	// FormatMarkdown represents Markdown output format.
	FormatMarkdown Format = "markdown"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatCSV:
		return &CSVFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// FormatReport renders a generated report in the requested format. Table,
// CSV, and Markdown formats render the display tables; JSON and YAML carry
// the full precision rows plus per-source ingestion statistics.
func FormatReport(w io.Writer, rep *report.Report, format Format) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, rep)
	default:
		return NewFormatter(format).Format(w, rep.Tables())
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format. Report tables render with their sheet
// names; anything else falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case report.Table:
		return f.formatTable(w, v)
	case []report.Table:
		for i, tbl := range v {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, tbl.Name); err != nil {
				return err
			}
			if err := f.formatTable(w, tbl); err != nil {
				return err
			}
		}
		return nil
	default:
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

func (f *TableFormatter) formatTable(w io.Writer, data report.Table) error {
	// First column is the provider name; every other column is numeric and
	// reads better right-aligned.
	config := tablewriter.Config{}
	if len(data.Headers) > 0 {
		aligns := make([]tw.Align, len(data.Headers))
		aligns[0] = tw.AlignLeft
		for i := 1; i < len(aligns); i++ {
			aligns[i] = tw.AlignRight
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: aligns}
		config.Row.Alignment = tw.CellAlignment{PerColumn: aligns}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// MarkdownFormatter outputs report tables as a Markdown document, one
// section heading and table per sheet. Handy for pasting into wikis and
// weekly summary threads.
type MarkdownFormatter struct{}

// Format outputs report tables as Markdown.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	var tables []report.Table
	switch v := data.(type) {
	case report.Table:
		tables = []report.Table{v}
	case []report.Table:
		tables = v
	default:
		return fmt.Errorf("markdown format supports report tables only, got %T", data)
	}

	doc := md.NewMarkdown(w)
	for _, tbl := range tables {
		doc.H2(tbl.Name).LF()
		if len(tbl.Rows) == 0 {
			doc.PlainText("No data.").LF()
			continue
		}
		doc.Table(md.TableSet{
			Header: tbl.Headers,
			Rows:   tbl.Rows,
		}).LF()
	}
	return doc.Build()
}

// CSVFormatter outputs CSV format.
type CSVFormatter struct{}

// Format outputs report tables as CSV. Each table is written as its name on
// a line of its own, the header row, then the data rows, separated from the
// next table by a blank line.
func (f *CSVFormatter) Format(w io.Writer, data any) error {
	var tables []report.Table
	switch v := data.(type) {
	case report.Table:
		tables = []report.Table{v}
	case []report.Table:
		tables = v
	default:
		return fmt.Errorf("csv format supports report tables only, got %T", data)
	}

	cw := csv.NewWriter(w)
	for i, tbl := range tables {
		if i > 0 {
			cw.Flush()
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{tbl.Name}); err != nil {
			return err
		}
		if err := cw.Write(tbl.Headers); err != nil {
			return err
		}
		for _, row := range tbl.Rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	// Use explicit format if provided
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	// Check if output is a terminal
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	if format == "md" {
		format = FormatMarkdown
	}
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatMarkdown, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, csv, markdown", s)
	}
}
