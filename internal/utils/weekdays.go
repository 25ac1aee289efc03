package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/alarmnote/internal/models"
)

// weekdayNames maps lower-case English day names and their three-letter
// abbreviations to weekdays.
var weekdayNames = func() map[string]time.Weekday {
	names := make(map[string]time.Weekday, 14)
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		names[full] = d
		names[full[:3]] = d
	}
	return names
}()

// ParseWeekday accepts a day name, its abbreviation or a number with 0 as
// Sunday. Numbers outside 0..6 pass through for the validator to reject.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if d, ok := weekdayNames[key]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		return time.Weekday(n), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", key)
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		d, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// ParseRandomTimes parses "mon=09:00,wed=21:30" into a RandomTimes mapping.
// Time values are not validated here.
func ParseRandomTimes(s string) (models.RandomTimes, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	out := models.RandomTimes{}
	for _, part := range strings.Split(s, ",") {
		day, tod, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid random time %q: expected day=HH:MM", strings.TrimSpace(part))
		}
		wd, err := ParseWeekday(day)
		if err != nil {
			return nil, err
		}
		out[wd] = strings.TrimSpace(tod)
	}
	return out, nil
}
