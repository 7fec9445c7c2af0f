// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
// These symbols are used for status indicators, alerts, and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: report written, server stopped cleanly.
	Success = "✓"

	// Stop represents critical stops, shutdowns, or blocking conditions.
	// Used for: graceful shutdowns, stop signals.
	Stop = "✗"

	// Warning represents warnings or non-critical issues.
	// Used for: skipped rows, missing optional sources.
	Warning = "!"
)
