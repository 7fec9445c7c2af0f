package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/clinicops/rollup/pkg/report"
	"github.com/clinicops/rollup/pkg/xlsx"
)

func TestWrite(t *testing.T) {
	r := &report.Report{
		DoxyVisits: []report.DoxyVisitRow{
			{Provider: "Jane Doe", TotalVisits: 2},
			{Provider: "John Smith", TotalVisits: 1},
		},
		GustoHours: []report.GustoHoursRow{
			{Provider: "Jane Doe", TotalHours: 32.5},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsx.Write(&buf, r.Tables()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Doxy Visits",
		"OnceHub Visits",
		"Visits by Program",
		"Gusto Hours",
		"Doxy Performance Metrics",
		"Hours Worked",
	}, f.GetSheetList())

	rows, err := f.GetRows("Doxy Visits")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Provider", "Total Visits"}, rows[0])
	assert.Equal(t, []string{"Jane Doe", "2"}, rows[1])

	// Quantities land as numbers: the stored value is 32.5, not the
	// display string "32.50".
	value, err := f.GetCellValue("Gusto Hours", "B2")
	require.NoError(t, err)
	assert.Equal(t, "32.5", value)

	// Empty sections still get their sheet with headers.
	rows, err = f.GetRows("OnceHub Visits")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 6)
}

func TestWriteEmptyTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsx.Write(&buf, (&report.Report{}).Tables()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 6)
}
