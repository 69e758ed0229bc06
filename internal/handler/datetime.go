package handler

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04"
	datetimeLayout = "2006-01-02 15:04:05"
)

// CombineDateTime merges the split date and time form fields into one
// timestamp, seconds fixed at zero. Malformed input is an error, never
// silently truncated.
func CombineDateTime(date, clock string) (time.Time, error) {
	if date == "" || clock == "" {
		return time.Time{}, errors.New("date and time are both required")
	}

	t, err := time.Parse(datetimeLayout, date+" "+clock+":00")
	if err != nil {
		return time.Time{}, fmt.Errorf("combine %q %q: %w", date, clock, err)
	}
	return t, nil
}

// SplitDateTime is the inverse: it breaks a stored timestamp back into
// the date and time form fields for edit prefill.
func SplitDateTime(t time.Time) (date, clock string, err error) {
	if t.IsZero() {
		return "", "", errors.New("split: zero timestamp")
	}
	return t.Format(dateLayout), t.Format(clockLayout), nil
}
