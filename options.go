package rollup

import (
	"github.com/rs/zerolog"

	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/logging"
	"github.com/clinicops/rollup/pkg/program"
	"github.com/clinicops/rollup/pkg/provider"
)

// Option is a function that configures a Rollup instance
type Option func(*config) error

// config is the configuration a Rollup is built from
type config struct {
	logger      zerolog.Logger
	normalizer  *provider.Normalizer
	categorizer *program.Categorizer
}

func defaultConfig() *config {
	return &config{
		logger:      *logging.Default(),
		normalizer:  provider.NewNormalizer(nil),
		categorizer: program.NewCategorizer(nil),
	}
}

// WithLogger configures the logger used for ingestion warnings and progress
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithNormalizer configures the provider name normalizer shared by all
// ingestors, replacing the default suffix and exclusion sets
func WithNormalizer(n *provider.Normalizer) Option {
	return func(c *config) error {
		if n == nil {
			return errors.NewValidationError("normalizer", nil, "cannot be nil")
		}
		c.normalizer = n
		return nil
	}
}

// WithCategorizer configures the program categorizer used for account
// detail visits, replacing the default keyword sets
func WithCategorizer(cat *program.Categorizer) Option {
	return func(c *config) error {
		if cat == nil {
			return errors.NewValidationError("categorizer", nil, "cannot be nil")
		}
		c.categorizer = cat
		return nil
	}
}
