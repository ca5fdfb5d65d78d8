// Package biztime provides time utilities for the application.
// All storage and transport use UTC; record timestamps are unix milliseconds,
// matching the backend's numeric timestamp fields.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToMillis converts a time to unix milliseconds for storage.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts stored unix milliseconds back to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
