package schedule

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date format")
)

// ParseDay parses a calendar day given either as YYYY-MM-DD or as an RFC 3339
// timestamp and returns midnight of that day in loc (UTC when loc is nil).
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	if day, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return day, nil
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return StartOfDay(ts, loc), nil
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// IsDatePast reports whether the day named by dateStr ends before today in loc.
func IsDatePast(dateStr string, loc *time.Location, now time.Time) (bool, error) {
	day, err := ParseDay(dateStr, loc)
	if err != nil {
		return false, err
	}
	return day.Before(StartOfDay(now, loc)), nil
}
