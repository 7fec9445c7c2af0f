package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/ingest"
	"github.com/clinicops/rollup/pkg/program"
	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

func TestAccountDetailIngest(t *testing.T) {
	a := ingest.NewAccountDetailIngestor(nil, nil)

	// The EHR export is an HTML table saved under an .xls name, with a
	// title block above the real header.
	data := []byte(`<html><body><table>
<tr><td>Account Detail Report</td></tr>
<tr><td>Aug 11 - Aug 17</td></tr>
<tr><th>Status</th><th>Owner</th><th>Event Type</th><th>Date</th></tr>
<tr><td>Completed</td><td>Jane Doe, FNP-C</td><td>TRT Follow-up</td><td>08/12/2025</td></tr>
<tr><td>Cancelled</td><td>Jane Doe</td><td>FOUNTAINTRT Initial</td><td>08/13/2025</td></tr>
<tr><td>Completed</td><td>John Smith MD</td><td>HRT Consult</td><td>08/13/2025</td></tr>
<tr><td>No Show</td><td>John Smith</td><td>Wellness Check</td><td>08/14/2025</td></tr>
</table></body></html>`)

	visits, stats, err := a.Ingest(data)
	require.NoError(t, err)
	require.Len(t, visits, 4)
	assert.Equal(t, 4, stats.Records)
	assert.Empty(t, stats.Warnings)

	assert.Equal(t, provider.Key("Jane Doe"), visits[0].Provider)
	assert.Equal(t, program.TRT, visits[0].Category)
	assert.Equal(t, records.StatusCompleted, visits[0].Status)
	assert.True(t, visits[0].Completed())
	assert.Equal(t, 2025, visits[0].Date.Year())

	// Branded program names categorize too, and all statuses are retained.
	assert.Equal(t, program.TRT, visits[1].Category)
	assert.Equal(t, records.StatusCanceled, visits[1].Status)
	assert.False(t, visits[1].Completed())

	assert.Equal(t, program.HRT, visits[2].Category)
	assert.Equal(t, program.Other, visits[3].Category)
	assert.Equal(t, records.StatusNoShow, visits[3].Status)
}

func TestAccountDetailIngestCSV(t *testing.T) {
	a := ingest.NewAccountDetailIngestor(nil, nil)

	data := []byte(`Status,Owner,Event Type
Completed,"Doe, Jane",TRT Refill
Scheduled,Ann Lee NP,Lab Review
`)

	visits, _, err := a.Ingest(data)
	require.NoError(t, err)
	require.Len(t, visits, 2)

	assert.Equal(t, program.TRT, visits[0].Category)
	assert.Equal(t, records.StatusScheduled, visits[1].Status)
	assert.Equal(t, provider.Key("Ann Lee"), visits[1].Provider)
	assert.True(t, visits[1].Date.IsZero())
}

func TestAccountDetailIngestSkipsBadRows(t *testing.T) {
	a := ingest.NewAccountDetailIngestor(nil, nil)

	data := []byte(`Status,Owner,Event Type
Completed,Jane Doe,TRT Follow-up
Completed,,HRT Consult
Completed,---,TRT Refill
`)

	visits, stats, err := a.Ingest(data)
	require.NoError(t, err)
	require.Len(t, visits, 1)

	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 2, stats.Skipped)
	require.Len(t, stats.Warnings, 2)
	assert.Contains(t, stats.Warnings[0].Reason, "invalid provider name")
}

func TestAccountDetailIngestMissingColumn(t *testing.T) {
	a := ingest.NewAccountDetailIngestor(nil, nil)

	_, _, err := a.Ingest([]byte("Status,Owner\nCompleted,Jane Doe\n"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingColumn(err))
	assert.Contains(t, err.Error(), "Event Type")
}

func TestAccountDetailIngestEmptySource(t *testing.T) {
	a := ingest.NewAccountDetailIngestor(nil, nil)

	_, _, err := a.Ingest(nil)
	require.Error(t, err)
	assert.True(t, errors.IsEmptySource(err))
}

func TestAccountDetailIngestCustomCategorizer(t *testing.T) {
	c := program.NewCategorizer(&program.Config{
		TRTKeywords: []string{"TESTOSTERONE"},
		HRTKeywords: []string{"HORMONE"},
	})
	a := ingest.NewAccountDetailIngestor(nil, c)

	data := []byte(`Status,Owner,Event Type
Completed,Jane Doe,Testosterone Initial
Completed,Jane Doe,TRT Follow-up
`)

	visits, _, err := a.Ingest(data)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, program.TRT, visits[0].Category)

	// The stock TRT keyword is not in the custom set.
	assert.Equal(t, program.Other, visits[1].Category)
}
