package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/streakly/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// DateKey formats t as a YYYY-MM-DD key in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(constants.DateFormat)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) as midnight in loc.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// TrailingDates returns n date keys ending at ref, newest first.
// Calendar arithmetic goes through time.Date so DST transitions never skip or repeat a day.
func TrailingDates(ref time.Time, n int, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	ref = ref.In(loc)
	dates := make([]string, n)
	for offset := 0; offset < n; offset++ {
		d := time.Date(ref.Year(), ref.Month(), ref.Day()-offset, 12, 0, 0, 0, loc)
		dates[offset] = d.Format(constants.DateFormat)
	}
	return dates
}
