package analytics

import (
	"strings"
	"time"
)

// DateLayout is the layout of expense and start dates.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// CycleBounds returns [start, end) of the calendar month containing now,
// in now's location. end is the first instant of the following month, so an
// expense at 23:59:59.999 on the last day is still inside.
func CycleBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// ParseDate parses an ISO date or timestamp. Bare dates are read as local
// midnight in loc; timestamps carrying an offset keep it.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Today formats now as an expense date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
