package util

import "time"

// DayFormat is the ISO-8601 calendar-date layout used across the provider
// APIs and the spot_history table.
const DayFormat = "2006-01-02"

// FormatDay renders t as a UTC calendar date.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// ParseDay parses an ISO calendar date as midnight UTC.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayWindow returns the [start, end] time bounds for a trailing window of
// days ending at end (inclusive), both truncated to midnight UTC.
func DayWindow(end time.Time, days int) (time.Time, time.Time) {
	to := end.UTC().Truncate(24 * time.Hour)
	return to.AddDate(0, 0, -days), to
}
