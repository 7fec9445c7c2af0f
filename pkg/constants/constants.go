// Package constants provides shared constants used throughout the rollup codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// GenerateTimeout is the timeout for building a full report
	GenerateTimeout = 2 * time.Minute

	// ServerShutdownTimeout is how long the HTTP server waits for in-flight
	// requests during graceful shutdown
	ServerShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Upload limit constants bound what the ingestion surfaces accept
const (
	// MaxUploadBytes is the per-file size cap for uploaded source exports (10 MB)
	MaxUploadBytes = 10 * 1024 * 1024

	// MaxUploadFiles is the number of source files a report is built from
	MaxUploadFiles = 4
)

// Path constants
const (
	// DefaultConfigName is the default config file name looked up in $HOME
	DefaultConfigName = ".rollup"

	// DefaultConfigType is the default config file format
	DefaultConfigType = "yaml"
)

// Format constants
const (
	// TimeFormatFilename is the format used in generated workbook filenames
	TimeFormatFilename = "20060102-150405"

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006"
)
