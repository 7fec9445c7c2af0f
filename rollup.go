// Package rollup builds the weekly provider activity report from four
// heterogeneous exports: the Doxy telehealth call log, the OnceHub booking
// summary, the Gusto payroll hours export, and the EHR account detail report.
//
// Each export is ingested into typed records keyed by a normalized provider
// name, then aggregated into six report tables. Ingestion tolerates the
// messiness of real exports: mixed encodings, preamble rows above headers,
// HTML tables wearing spreadsheet file names, and free-form durations. Bad
// rows are skipped and counted rather than failing the report; a source that
// yields nothing usable fails with an error naming that source.
package rollup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/ingest"
	"github.com/clinicops/rollup/pkg/records"
	"github.com/clinicops/rollup/pkg/report"
)

// Inputs carries the raw bytes of the activity exports, as uploaded or read
// from disk. Booking is optional; a report without it has an empty OnceHub
// table. The other three are required.
type Inputs struct {
	Doxy          []byte
	AccountDetail []byte
	Gusto         []byte
	Booking       []byte
}

// Rollup ingests activity exports and aggregates them into the weekly
// report. Instances are safe for concurrent use; each Generate call works on
// its own data.
type Rollup struct {
	logger  zerolog.Logger
	doxy    *ingest.DoxyIngestor
	booking *ingest.BookingIngestor
	account *ingest.AccountDetailIngestor
	gusto   *ingest.GustoIngestor
}

// New creates a new Rollup instance with the given options
func New(opts ...Option) (*Rollup, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	return &Rollup{
		logger:  cfg.logger,
		doxy:    ingest.NewDoxyIngestor(cfg.normalizer),
		booking: ingest.NewBookingIngestor(cfg.normalizer),
		account: ingest.NewAccountDetailIngestor(cfg.normalizer, cfg.categorizer),
		gusto:   ingest.NewGustoIngestor(cfg.normalizer),
	}, nil
}

// Generate ingests the exports and builds all six report tables. The context
// is checked between stages; a source-level failure is wrapped with the
// source name so the caller can tell which file was at fault.
func (r *Rollup) Generate(ctx context.Context, in Inputs) (*report.Report, error) {
	rep := &report.Report{}

	doxyVisits, stats, err := r.doxy.Ingest(in.Doxy)
	if err != nil {
		return nil, errors.WrapSource(ingest.SourceDoxy, err)
	}
	r.logIngest(stats)
	rep.Sources = append(rep.Sources, *stats)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accountVisits, stats, err := r.account.Ingest(in.AccountDetail)
	if err != nil {
		return nil, errors.WrapSource(ingest.SourceAccountDetail, err)
	}
	r.logIngest(stats)
	rep.Sources = append(rep.Sources, *stats)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hours, stats, err := r.gusto.Ingest(in.Gusto)
	if err != nil {
		return nil, errors.WrapSource(ingest.SourceGusto, err)
	}
	r.logIngest(stats)
	rep.Sources = append(rep.Sources, *stats)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The booking summary is the one export providers do not always have.
	var bookings []records.BookingSummaryRecord
	if len(in.Booking) > 0 {
		bookings, stats, err = r.booking.Ingest(in.Booking)
		if err != nil {
			return nil, errors.WrapSource(ingest.SourceBooking, err)
		}
		r.logIngest(stats)
		rep.Sources = append(rep.Sources, *stats)
	} else {
		r.logger.Debug().
			Str("source", ingest.SourceBooking).
			Msg("source not provided, table will be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep.DoxyVisits = report.DoxyVisits(doxyVisits)
	rep.OnceHubVisits = report.OnceHubVisits(bookings)
	rep.VisitsByProgram = report.VisitsByProgram(accountVisits)
	rep.GustoHours = report.GustoHours(hours, doxyVisits)
	rep.PerformanceMetrics = report.PerformanceMetrics(doxyVisits)
	rep.HoursWorked = report.HoursWorked(rep.GustoHours, rep.DoxyVisits)

	r.logger.Info().
		Int("providers", rep.ProviderCount()).
		Int("visits", rep.TotalVisits()).
		Int("warnings", rep.Warnings()).
		Msg("report generated")

	return rep, nil
}

// logIngest records one source's ingestion outcome, surfacing each skipped
// row as a warning.
func (r *Rollup) logIngest(stats *records.Stats) {
	for _, w := range stats.Warnings {
		r.logger.Warn().
			Str("source", stats.Source).
			Int("row", w.Row).
			Msg(w.Reason)
	}
	r.logger.Debug().
		Str("source", stats.Source).
		Int("rows", stats.Rows).
		Int("records", stats.Records).
		Int("skipped", stats.Skipped).
		Int("excluded", stats.Excluded).
		Msg("source ingested")
}
