package models

import (
	"time"

	apperrors "focolare/internal/errors"
)

// DateLayout is the wire format for calendar dates. Expenses carry a calendar
// date with no time component; periods compare dates, not instants.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrInvalidDate, err)
	}
	return t, nil
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
