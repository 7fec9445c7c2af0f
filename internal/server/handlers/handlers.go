// Package handlers provides HTTP request handlers for the report API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicops/rollup"
	"github.com/clinicops/rollup/pkg/constants"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	rollup    *rollup.Rollup
	logger    *zerolog.Logger
	maxUpload int64
	started   time.Time
}

// New creates a new Handlers instance. maxUpload caps the size of each
// uploaded source file; zero or negative means the default cap. started is
// the server start time reported as uptime by the health endpoint.
func New(r *rollup.Rollup, logger *zerolog.Logger, maxUpload int64, started time.Time) *Handlers {
	if maxUpload <= 0 {
		maxUpload = constants.MaxUploadBytes
	}
	if started.IsZero() {
		started = time.Now()
	}
	return &Handlers{
		rollup:    r,
		logger:    logger,
		maxUpload: maxUpload,
		started:   started,
	}
}
