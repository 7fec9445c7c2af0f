// Package program classifies visits into the clinic's treatment programs.
// Visit subjects arrive as free text ("FountainTRT Follow-up", "HRT Initial
// Consult"), so classification is keyword-based and deliberately forgiving:
// a visit that matches nothing is Other, never an error.
package program

import "strings"

// Category identifies the treatment program a visit belongs to.
type Category string

// Visit categories in canonical column order.
const (
	// TRT is testosterone replacement therapy.
	TRT Category = "TRT"

	// HRT is hormone replacement therapy.
	HRT Category = "HRT"

	// Other covers visits matching neither program.
	Other Category = "Other"
)

// String returns the category as a display string.
func (c Category) String() string {
	return string(c)
}

// Categories returns all categories in canonical column order.
func Categories() []Category {
	return []Category{TRT, HRT, Other}
}

// Config holds categorizer keyword lists. Keywords are explicit so new
// program spellings can be added without code changes.
type Config struct {
	// TRTKeywords classify a visit as TRT. Checked before HRT, so subjects
	// matching both programs land in TRT.
	TRTKeywords []string

	// HRTKeywords classify a visit as HRT.
	HRTKeywords []string
}

// DefaultConfig returns the standard keyword sets.
func DefaultConfig() *Config {
	return &Config{
		TRTKeywords: []string{"TRT", "FOUNTAINTRT"},
		HRTKeywords: []string{"HRT"},
	}
}

// Categorizer assigns visits to program categories by keyword match.
type Categorizer struct {
	trt []string
	hrt []string
}

// NewCategorizer creates a Categorizer from the given configuration.
// A nil config uses DefaultConfig.
func NewCategorizer(cfg *Config) *Categorizer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Categorizer{
		trt: foldKeywords(cfg.TRTKeywords),
		hrt: foldKeywords(cfg.HRTKeywords),
	}
}

// Categorize returns the program category for a visit subject or event type.
// Matching is a case-insensitive substring test, TRT keywords first. Unmatched
// or empty subjects are Other.
func (c *Categorizer) Categorize(subject string) Category {
	upper := strings.ToUpper(subject)

	for _, kw := range c.trt {
		if strings.Contains(upper, kw) {
			return TRT
		}
	}
	for _, kw := range c.hrt {
		if strings.Contains(upper, kw) {
			return HRT
		}
	}
	return Other
}

// foldKeywords uppercases and drops empty keywords so an empty config entry
// cannot match every subject.
func foldKeywords(keywords []string) []string {
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToUpper(strings.TrimSpace(kw))
		if kw != "" {
			folded = append(folded, kw)
		}
	}
	return folded
}
