package domain

import "time"

// Timestamp layouts accepted across record fields. SQLite's
// CURRENT_TIMESTAMP emits the second form.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses a stored timestamp, returning fallback when the value
// is empty or unparsable. Callers pass "now" as the fallback where the
// rule is "a missing/invalid start is treated as already started"; a bad
// date therefore silently changes classification rather than failing the
// whole batch, which is the intended recovery.
func ParseTime(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
