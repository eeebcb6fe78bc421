package common

import (
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 day format used for all persisted dates.
const DateFormat = "2006-01-02"

// checksumDateFormat renders a normalized date as a full UTC instant, the
// representation hashed into operation checksums.
const checksumDateFormat = "2006-01-02T15:04:05.000Z"

// NormalizeDate truncates a timestamp to midnight UTC. All dates are
// normalized before comparison or storage; the core never compares raw
// timestamps with time-of-day components.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// CompareNormalizedDates compares two timestamps at day granularity.
// Returns -1, 0, or 1.
func CompareNormalizedDates(a, b time.Time) int {
	na, nb := NormalizeDate(a), NormalizeDate(b)
	switch {
	case na.Before(nb):
		return -1
	case na.After(nb):
		return 1
	default:
		return 0
	}
}

// FormatNormalizedDate renders a timestamp as a YYYY-MM-DD string.
func FormatNormalizedDate(t time.Time) string {
	return NormalizeDate(t).Format(DateFormat)
}

// ParseDate parses a date string into a normalized (midnight UTC) time.
// Accepted layouts: ISO "YYYY-MM-DD" and the locale short forms
// "dd.mm.yyyy" (de-DE and similar) and "dd/mm/yyyy" (en-GB and similar).
// Semantically invalid dates such as "2025-06-31" are rejected.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{DateFormat, "02.01.2006", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date string provided: %q", s)
}
