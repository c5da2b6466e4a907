package entities

import (
	"fmt"
	"time"
)

// DrawDateLayout is the wire format for draw dates.
const DrawDateLayout = "2006-01-02"

// ParseDrawDate parses a YYYY-MM-DD string into a UTC draw date
func ParseDrawDate(s string) (time.Time, error) {
	t, err := time.Parse(DrawDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid draw date %q: %w", s, err)
	}
	return t, nil
}

// FormatDrawDate renders a draw date as YYYY-MM-DD
func FormatDrawDate(t time.Time) string {
	return t.UTC().Format(DrawDateLayout)
}

// TruncateToDrawDate drops the time-of-day component, leaving UTC midnight.
// All draw bookkeeping keys off this value.
func TruncateToDrawDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
