// Package valueobject contains immutable value types shared by the use cases.
package valueobject

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical transaction date format.
	DateLayout = "2006-01-02"
	// ClockLayout is the canonical transaction time-of-day format.
	ClockLayout = "15:04:05"
)

// BusinessMoment is the calendar date and wall-clock time a sale or purchase happened,
// as reported by the client.
type BusinessMoment struct {
	Date  time.Time
	Clock string
}

// ParseBusinessDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp and returns the
// calendar date at UTC midnight.
func ParseBusinessDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if d, err := time.Parse(DateLayout, value); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", value)
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseBusinessClock accepts "HH:MM" or "HH:MM:SS" and normalizes to "HH:MM:SS".
func ParseBusinessClock(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{ClockLayout, "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("time %q must be HH:MM or HH:MM:SS", value)
}
