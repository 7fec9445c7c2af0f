package provider

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/clinicops/rollup/pkg/errors"
)

// Normalizer converts raw provider names into canonical Keys.
type Normalizer struct {
	suffixes   map[string]struct{}
	exclusions []string
}

// NewNormalizer creates a Normalizer from the given configuration.
// A nil config uses DefaultConfig.
func NewNormalizer(cfg *Config) *Normalizer {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	suffixes := make(map[string]struct{}, len(cfg.Suffixes))
	for _, s := range cfg.Suffixes {
		suffixes[foldSuffix(s)] = struct{}{}
	}

	exclusions := make([]string, 0, len(cfg.Exclusions))
	for _, e := range cfg.Exclusions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			exclusions = append(exclusions, e)
		}
	}

	return &Normalizer{
		suffixes:   suffixes,
		exclusions: exclusions,
	}
}

// Normalize converts a raw provider name into its canonical Key.
//
// Whitespace is collapsed, trailing credential suffixes are stripped however
// they are punctuated, and the remainder is title-cased. Normalize is
// idempotent: feeding a Key back in returns the same Key.
func (n *Normalizer) Normalize(raw string) (Key, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return "", errors.NewInvalidNameError(raw, "empty name")
	}
	if !strings.ContainsFunc(name, unicode.IsLetter) {
		return "", errors.NewInvalidNameError(raw, "no letters")
	}

	name = n.stripSuffixes(name)

	key := cases.Title(language.English).String(strings.ToLower(name))
	return Key(key), nil
}

// Excluded reports whether a raw name matches the exclusion list. Matching is
// a case-insensitive substring test against the raw name, so "DRaphael",
// "dan raphael (test)" and similar variants all match a single entry.
func (n *Normalizer) Excluded(raw string) bool {
	if len(n.exclusions) == 0 {
		return false
	}
	lower := strings.ToLower(raw)
	for _, e := range n.exclusions {
		if strings.Contains(lower, e) {
			return true
		}
	}
	return false
}

// stripSuffixes removes trailing suffix tokens one at a time. Credentials
// stack ("Jane Doe, DNP, FNP-C"), so stripping repeats until the last token
// is not a suffix. The first token is never stripped.
func (n *Normalizer) stripSuffixes(name string) string {
	for {
		name = strings.TrimRight(name, " ,")
		idx := strings.LastIndexAny(name, " ,")
		if idx < 0 {
			return name
		}

		last := foldSuffix(name[idx+1:])
		if last == "" {
			name = name[:idx]
			continue
		}
		if _, ok := n.suffixes[last]; !ok {
			return name
		}
		name = name[:idx]
	}
}

// foldSuffix canonicalizes a suffix token for matching: uppercase, periods
// removed, surrounding commas dropped. "F.N.P.-C," folds to "FNP-C".
func foldSuffix(token string) string {
	token = strings.Trim(token, ",")
	token = strings.ReplaceAll(token, ".", "")
	return strings.ToUpper(strings.TrimSpace(token))
}
