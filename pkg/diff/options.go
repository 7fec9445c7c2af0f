package diff

// Option is a functional option for configuring a Differ.
type Option func(*differ)

// WithTolerance sets the absolute difference below which two numeric values
// are treated as equal. The default is zero, so any movement counts.
func WithTolerance(tolerance float64) Option {
	return func(d *differ) {
		if tolerance > 0 {
			d.tolerance = tolerance
		}
	}
}

// WithIgnoredFields excludes fields from comparison. A name matches either a
// full field ("gusto.total_hours") or a whole table prefix ("gusto").
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}
