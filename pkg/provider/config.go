package provider

// DefaultSuffixes are the credential and business suffixes stripped from the
// end of provider names. Matching ignores case and periods, so "M.D." and
// "md" both match "MD".
var DefaultSuffixes = []string{
	"NP",
	"FNP",
	"FNP-C",
	"FNP-BC",
	"MD",
	"DO",
	"PA",
	"PA-C",
	"RN",
	"DNP",
	"APRN",
	"LLC",
	"INC",
	"PLLC",
}

// Config holds normalizer configuration. Suffix and exclusion lists are
// explicit so tests and deployments can extend them without code changes.
type Config struct {
	// Suffixes are trailing tokens stripped from names before title-casing.
	Suffixes []string

	// Exclusions are case-insensitive substrings. A raw name containing any
	// of them is dropped at ingestion (internal test accounts and the like).
	Exclusions []string
}

// DefaultConfig returns a configuration with the standard suffix set and no
// exclusions.
func DefaultConfig() *Config {
	return &Config{
		Suffixes: DefaultSuffixes,
	}
}
