package filter

import (
	"time"

	"cloud.google.com/go/civil"
)

// NormalizeTemporal converts calendar dates and offset timestamps to one
// canonical representation: a time.Time in UTC.
//
//   - time.Time (any location) is converted to the same instant in UTC
//   - civil.Date is converted to midnight UTC of that day
//   - civil.DateTime is interpreted as UTC wall-clock time
//
// The second result is false if v is not a temporal value.
func NormalizeTemporal(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	case civil.Date:
		return t.In(time.UTC), true
	case civil.DateTime:
		return t.In(time.UTC), true
	default:
		return time.Time{}, false
	}
}

// ParseTemporal parses an RFC 3339 timestamp or a YYYY-MM-DD calendar date
// and normalizes it like NormalizeTemporal.
func ParseTemporal(s string) (time.Time, bool) {
	// Both layouts start with a four digit year and a dash.
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	if len(s) == 10 {
		d, err := civil.ParseDate(s)
		if err != nil {
			return time.Time{}, false
		}
		return d.In(time.UTC), true
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
