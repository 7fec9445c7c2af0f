package app

import (
	"github.com/clinicops/rollup/internal/cmd/application"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
