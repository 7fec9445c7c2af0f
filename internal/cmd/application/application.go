// Package application provides the application interface for rollup commands.
//
// The Application interface defines the contract between the application layer
// and command implementations, enabling dependency injection and testability.
//
// Design Principles:
//   - Accept interfaces, return structs (Go proverb)
//   - Define interfaces where they're used, not where they're implemented
//   - Keep interfaces small and focused
//
// Usage in Commands:
//
//	import (
//	    "github.com/clinicops/rollup/internal/cmd/application"
//	)
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            ctx := cmd.Context() // context.Context from cobra
//	            r, err := app.Rollup()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use r.Generate(ctx, inputs)
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    OutputFormatFunc: func() string { return "json" },
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"github.com/rs/zerolog"

	"github.com/clinicops/rollup"
)

// Application provides the application interface that commands need.
// The App struct from cmd/rollup/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Rollup returns the report generator with optional configuration.
	// When called without options, returns the default cached instance built
	// from the application config (lazy-initialized, thread-safe).
	// When called with options, creates a new instance with custom
	// configuration (no caching).
	//
	// Examples:
	//   r, err := app.Rollup()                  // default instance (cached)
	//   r, err := app.Rollup(opt1, opt2)        // custom instance (new)
	Rollup(opts ...rollup.Option) (*rollup.Rollup, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml,
	// csv, markdown). Commands that support different output formats should
	// use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
