package utils

import (
	"time"
)

// MillisToTime converts milliseconds since epoch to time.Time
func MillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond))
}

// TimeToMillis converts time.Time to milliseconds since epoch
func TimeToMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// FormatTime formats time in ISO 8601 format
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatMillis formats a millisecond timestamp in ISO 8601 format (UTC)
func FormatMillis(millis int64) string {
	return FormatTime(MillisToTime(millis).UTC())
}

// ParseTime parses ISO 8601 formatted time string
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

// StartOfDayMillis returns the first millisecond of the day containing t, in t's location
func StartOfDayMillis(t time.Time) int64 {
	y, m, d := t.Date()
	return TimeToMillis(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}

// DaysAgoMillis returns the time in milliseconds for a given number of days before now
func DaysAgoMillis(now time.Time, days int) int64 {
	return TimeToMillis(now) - (int64(days) * 24 * 60 * 60 * 1000)
}
