package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/ingest"
	"github.com/clinicops/rollup/pkg/provider"
	"github.com/clinicops/rollup/pkg/records"
)

func TestDoxyIngest(t *testing.T) {
	d := ingest.NewDoxyIngestor(nil)

	data := []byte(`Provider name,Date,Duration
Jane Doe NP,2025-08-11,00:20:00
"Jane Doe, FNP-C",2025-08-12,00:25:30
John Smith MD,2025-08-12,19:45
jane doe,2025-08-13,No data
`)

	visits, stats, err := d.Ingest(data)
	require.NoError(t, err)
	require.Len(t, visits, 4)

	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 4, stats.Records)
	assert.Zero(t, stats.Skipped)

	// All three spellings of Jane Doe collapse to the same key.
	assert.Equal(t, provider.Key("Jane Doe"), visits[0].Provider)
	assert.Equal(t, provider.Key("Jane Doe"), visits[1].Provider)
	assert.Equal(t, provider.Key("Jane Doe"), visits[3].Provider)
	assert.Equal(t, provider.Key("John Smith"), visits[2].Provider)

	minutes, ok := visits[0].Duration()
	require.True(t, ok)
	assert.Equal(t, 20.0, minutes)

	minutes, ok = visits[1].Duration()
	require.True(t, ok)
	assert.Equal(t, 25.5, minutes)

	// "No data" is unknown, not zero, and not a skip.
	_, ok = visits[3].Duration()
	assert.False(t, ok)

	assert.Equal(t, time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC), visits[0].Date)
	assert.Equal(t, records.StatusCompleted, visits[0].Status)
}

func TestDoxyIngestSkipsBadRows(t *testing.T) {
	d := ingest.NewDoxyIngestor(nil)

	data := []byte(`Provider name,Duration
Jane Doe NP,00:20:00
,00:10:00
John Smith,garbage
12345,00:15:00
Ann Lee,
`)

	visits, stats, err := d.Ingest(data)
	require.NoError(t, err)
	require.Len(t, visits, 2)

	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 3, stats.Skipped)
	require.Len(t, stats.Warnings, 3)
	assert.Contains(t, stats.Warnings[0].Reason, "provider name")
	assert.Contains(t, stats.Warnings[1].Reason, "duration")

	// The empty duration row survives as unknown.
	assert.Equal(t, provider.Key("Ann Lee"), visits[1].Provider)
	_, ok := visits[1].Duration()
	assert.False(t, ok)
}

func TestDoxyIngestMissingColumn(t *testing.T) {
	d := ingest.NewDoxyIngestor(nil)

	_, _, err := d.Ingest([]byte("Provider name,Date\nJane Doe,2025-08-11\n"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingColumn(err))
	assert.Contains(t, err.Error(), "Duration")
}

func TestDoxyIngestEmptySource(t *testing.T) {
	d := ingest.NewDoxyIngestor(nil)

	t.Run("no rows", func(t *testing.T) {
		_, _, err := d.Ingest(nil)
		require.Error(t, err)
		assert.True(t, errors.IsEmptySource(err))
	})

	t.Run("header only", func(t *testing.T) {
		_, _, err := d.Ingest([]byte("Provider name,Duration\n"))
		require.Error(t, err)
		assert.True(t, errors.IsEmptySource(err))
	})

	t.Run("every row unusable", func(t *testing.T) {
		_, stats, err := d.Ingest([]byte("Provider name,Duration\n,x\n,y\n"))
		require.Error(t, err)
		assert.True(t, errors.IsEmptySource(err))
		assert.Equal(t, 2, stats.Skipped)
	})
}

func TestDoxyIngestEncodings(t *testing.T) {
	// The same report saved as UTF-8 and UTF-16 must yield identical records.
	d := ingest.NewDoxyIngestor(nil)

	const content = "Provider name,Duration\nJane Doe NP,00:20:00\nJohn Smith,00:25:00\n"

	utf8Visits, _, err := d.Ingest([]byte(content))
	require.NoError(t, err)

	utf16Visits, _, err := d.Ingest(ingest.EncodeUTF16ForTest(content))
	require.NoError(t, err)

	assert.Equal(t, utf8Visits, utf16Visits)
}

func TestDoxyIngestExclusions(t *testing.T) {
	n := provider.NewNormalizer(&provider.Config{
		Suffixes:   provider.DefaultSuffixes,
		Exclusions: []string{"dan raphael"},
	})
	d := ingest.NewDoxyIngestor(n)

	data := []byte(`Provider name,Duration
Jane Doe NP,00:20:00
Dan Raphael MD,00:30:00
`)

	visits, stats, err := d.Ingest(data)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, provider.Key("Jane Doe"), visits[0].Provider)
	assert.Equal(t, 1, stats.Excluded)
	assert.Zero(t, stats.Skipped)
}
