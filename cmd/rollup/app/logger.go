package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/clinicops/rollup/pkg/logging"
)

// NewLogger builds the application logger from the resolved level and the
// configured format and output. Caller annotation turns on at debug and
// trace, where the file:line is worth the extra width.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel resolves the log level. An explicit --log-level (or
// LOG_LEVEL, which LoadConfig folds into the same field) always wins; after
// that -q beats -v when both are given, then either shortcut alone, then
// info.
func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		validated := validateLogLevel(config.LogLevel)
		if validated != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, validated)
		}
		return validated
	}

	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}

	return "info"
}

// validateLogLevel returns the level unchanged when it is one zerolog
// accepts and info otherwise. Levels are matched exactly; "DEBUG" is not
// "debug".
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "info"
	}
}
