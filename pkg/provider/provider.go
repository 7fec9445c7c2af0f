// Package provider normalizes free-form provider names into canonical keys.
//
// The four activity exports spell the same clinician four different ways:
// "Jane Doe NP", "Jane Doe, FNP-C", "jane doe", "JANE DOE, DNP". Everything
// downstream joins on the canonical Key this package produces, so two raw
// names that refer to the same person must normalize to the same Key.
package provider

// Key is the canonical identifier for a provider. It is the normalized,
// title-cased display name with credential suffixes stripped, and is the
// join key across all report tables.
type Key string

// String returns the key as a display string.
func (k Key) String() string {
	return string(k)
}
