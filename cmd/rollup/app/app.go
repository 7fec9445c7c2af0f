// Package app provides the application context and dependency management
// for the rollup CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/clinicops/rollup"
	"github.com/clinicops/rollup/pkg/program"
	"github.com/clinicops/rollup/pkg/provider"
)

// App represents the rollup application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the report generator, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Report generator (lazy-initialized, singleton)
	mu     sync.RWMutex
	rollup *rollup.Rollup
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Rollup returns the report generator. Without options it returns the default
// instance built from the application config, creating it lazily on first use;
// this is thread-safe and ensures only one instance is created. With options
// it creates a new instance each time and does not cache it.
func (a *App) Rollup(opts ...rollup.Option) (*rollup.Rollup, error) {
	if len(opts) > 0 {
		return rollup.New(opts...)
	}

	a.mu.RLock()
	if a.rollup != nil {
		r := a.rollup
		a.mu.RUnlock()
		return r, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.rollup != nil {
		return a.rollup, nil
	}

	r, err := rollup.New(a.buildRollupOptions()...)
	if err != nil {
		return nil, fmt.Errorf("creating report generator: %w", err)
	}

	a.rollup = r
	return r, nil
}

// Shutdown performs graceful shutdown of the application. The report
// generator runs no background tasks, so this exists to give main a single
// cleanup hook alongside the server's own shutdown path.
func (a *App) Shutdown(_ context.Context) error {
	return nil
}

// buildRollupOptions constructs generator options from the app configuration.
// Name suffixes, exclusions, and program keywords from the config file extend
// the built-in defaults rather than replacing the whole normalizer.
func (a *App) buildRollupOptions() []rollup.Option {
	opts := []rollup.Option{rollup.WithLogger(*a.logger)}

	if len(a.config.Suffixes) > 0 || len(a.config.Exclusions) > 0 {
		cfg := provider.DefaultConfig()
		cfg.Suffixes = append(cfg.Suffixes, a.config.Suffixes...)
		cfg.Exclusions = append(cfg.Exclusions, a.config.Exclusions...)
		opts = append(opts, rollup.WithNormalizer(provider.NewNormalizer(cfg)))
	}

	if len(a.config.TRTKeywords) > 0 || len(a.config.HRTKeywords) > 0 {
		cfg := program.DefaultConfig()
		cfg.TRTKeywords = append(cfg.TRTKeywords, a.config.TRTKeywords...)
		cfg.HRTKeywords = append(cfg.HRTKeywords, a.config.HRTKeywords...)
		opts = append(opts, rollup.WithCategorizer(program.NewCategorizer(cfg)))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithRollup sets a custom report generator (useful for testing).
func WithRollup(r *rollup.Rollup) Option {
	return func(a *App) error {
		a.rollup = r
		return nil
	}
}
