package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
)

// ErrInvalidFormat is returned when a time-of-day or date string is malformed.
var ErrInvalidFormat = errors.New("invalid format")

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ParseTimeOfDay parses a strict 24h HH:MM string. Single-digit hours such as
// "9:00" are rejected.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if !timeOfDayPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("%w: time of day %q must be HH:MM", ErrInvalidFormat, s)
	}
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	return hour, minute, nil
}

// IsValidTimeOfDay reports whether s is a strict HH:MM string
func IsValidTimeOfDay(s string) bool {
	return timeOfDayPattern.MatchString(s)
}

// FormatTimeOfDay renders hour and minute as HH:MM
func FormatTimeOfDay(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseDate parses a YYYY-MM-DD date at midnight UTC. Use ParseDateInLocation
// when the result feeds fire-time arithmetic.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidFormat, s)
	}
	return t, nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in loc.
func ParseDateInLocation(s string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// Combine returns the instant at hour:minute on date's calendar day, in
// date's location. Wall-clock times that do not exist because of a DST gap are
// normalized by time.Date.
func Combine(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	return Combine(t, 0, 0)
}

// AddDays offsets t by n calendar days keeping its wall clock.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// IsPastOrEqual reports whether instant is at or before now
func IsPastOrEqual(instant, now time.Time) bool {
	return !instant.After(now)
}

// WeekdayOf returns the Sunday-indexed weekday of t in t's location
func WeekdayOf(t time.Time) time.Weekday {
	return t.Weekday()
}

// ToEpochMillis converts t to milliseconds since the Unix epoch.
func ToEpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromEpochMillis converts epoch milliseconds to a local time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// FormatInTimezone formats t for display in the named timezone. An unknown
// timezone falls back to t's own location.
func FormatInTimezone(t time.Time, timezone string) string {
	loc, err := LoadLocation(timezone)
	if err != nil {
		loc = t.Location()
	}
	return t.In(loc).Format("Mon " + constants.DateFormat + " " + constants.TimeFormat + " MST")
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
