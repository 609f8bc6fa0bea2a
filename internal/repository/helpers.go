package repository

import (
	"time"
)

// timeLayout is used for every timestamp column. Nanosecond precision keeps
// snapshots written within the same second distinguishable.
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp, returning the zero time when the
// value is empty or malformed.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}
