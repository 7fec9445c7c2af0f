// Package duration parses the free-form visit durations that appear in
// activity exports. Sources write the same twenty-minute visit as "00:20:00",
// "20:00", or a bare "20", and sometimes record no duration at all.
package duration

import (
	"math"
	"strconv"
	"strings"

	"github.com/clinicops/rollup/pkg/errors"
)

// noData is the literal the visit log writes when a call recorded no duration.
const noData = "no data"

// Missing reports whether text represents an unknown duration. Unknown is not
// zero: records with missing durations stay in visit counts but are excluded
// from duration averages and threshold percentages.
func Missing(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.EqualFold(trimmed, noData)
}

// Parse converts a duration string into fractional minutes.
//
// Accepted forms are HH:MM:SS, MM:SS, and a bare number of minutes. Minute
// and second components in colon forms must be below 60. Anything else,
// including negative values, returns an InvalidDurationError.
func Parse(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, errors.NewInvalidDurationError(text, "empty")
	}

	if strings.Contains(trimmed, ":") {
		return parseClock(trimmed)
	}

	minutes, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, errors.NewInvalidDurationError(text, "not a duration")
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0, errors.NewInvalidDurationError(text, "not a duration")
	}
	if minutes < 0 {
		return 0, errors.NewInvalidDurationError(text, "negative")
	}
	return minutes, nil
}

// parseClock handles the HH:MM:SS and MM:SS forms.
func parseClock(text string) (float64, error) {
	parts := strings.Split(text, ":")

	var h, m, s string
	switch len(parts) {
	case 2:
		m, s = parts[0], parts[1]
	case 3:
		h, m, s = parts[0], parts[1], parts[2]
	default:
		return 0, errors.NewInvalidDurationError(text, "malformed time")
	}

	hours := 0
	if h != "" {
		var err error
		hours, err = parseComponent(h)
		if err != nil {
			return 0, errors.NewInvalidDurationError(text, "malformed time")
		}
	}

	minutes, err := parseComponent(m)
	if err != nil {
		return 0, errors.NewInvalidDurationError(text, "malformed time")
	}
	seconds, err := parseComponent(s)
	if err != nil {
		return 0, errors.NewInvalidDurationError(text, "malformed time")
	}

	if minutes > 59 {
		return 0, errors.NewInvalidDurationError(text, "minutes exceed 59")
	}
	if seconds > 59 {
		return 0, errors.NewInvalidDurationError(text, "seconds exceed 59")
	}

	return float64(hours)*60 + float64(minutes) + float64(seconds)/60, nil
}

// parseComponent parses one clock field. Only unsigned digits are accepted,
// which rejects negatives and embedded signs outright.
func parseComponent(part string) (int, error) {
	if part == "" {
		return 0, errors.New("empty component")
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return 0, errors.New("non-digit component")
		}
	}
	return strconv.Atoi(part)
}
