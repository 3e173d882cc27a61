package normalize

import (
	"strconv"
	"time"
)

// ISODate is the layout of every date the normalizer emits
const ISODate = "2006-01-02"

// ParseDate parses an ISO date. Returns false for empty, Present or
// impossible calendar dates such as 2021-02-30.
func ParseDate(s string) (time.Time, bool) {
	if s == "" || s == Present {
		return time.Time{}, false
	}
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Year extracts the first four-digit run of s. Returns 0 when there is none.
func Year(s string) int {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return y
}

// DaysBetween returns the whole days from start to end, never negative.
// An ongoing end resolves to now. Missing or unparsable bounds give 0.
func DaysBetween(start, end string, now time.Time) int {
	startDate, ok := ParseDate(start)
	if !ok || end == "" {
		return 0
	}

	var endDate time.Time
	if end == Present {
		endDate = now
	} else {
		endDate, ok = ParseDate(end)
		if !ok {
			return 0
		}
	}

	// time.Duration saturates near 292 years, so count whole seconds instead
	days := int((endDate.Unix() - startDate.Unix()) / 86400)
	if days < 0 {
		return 0
	}
	return days
}
