package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
)

type AlarmType = constants.AlarmType

const (
	AlarmOneTime   = constants.AlarmOneTime
	AlarmRepeating = constants.AlarmRepeating
	AlarmRandom    = constants.AlarmRandom
)

// RandomTimes maps a weekday to the HH:MM time chosen for it. The mapping is
// partial: a weekday in Alarm.Weekdays may have no entry.
type RandomTimes map[time.Weekday]string

// TimeFor returns the time chosen for wd and whether an entry exists.
// Empty strings count as missing.
func (r RandomTimes) TimeFor(wd time.Weekday) (string, bool) {
	if r == nil {
		return "", false
	}
	t, ok := r[wd]
	if !ok || t == "" {
		return "", false
	}
	return t, true
}

// Clone returns an independent copy of the mapping
func (r RandomTimes) Clone() RandomTimes {
	if r == nil {
		return nil
	}
	out := make(RandomTimes, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Alarm is a recurrence specification attached to a note.
type Alarm struct {
	ID          string         `json:"id"`
	NoteID      string         `json:"note_id"`
	Type        AlarmType      `json:"type"`
	TimeOfDay   string         `json:"time_of_day"`            // HH:MM, 24h
	Date        string         `json:"date,omitempty"`         // YYYY-MM-DD, one-time only
	Weekdays    []time.Weekday `json:"weekdays,omitempty"`     // 0=Sunday, repeating and random
	RandomTimes RandomTimes    `json:"random_times,omitempty"` // random only
	Enabled     bool           `json:"enabled"`
	NextFireAt  *time.Time     `json:"next_fire_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsOneTime returns true if the alarm fires once
func (a *Alarm) IsOneTime() bool {
	return a.Type == AlarmOneTime
}

// IsWeekly returns true for the weekday-based types (repeating and random)
func (a *Alarm) IsWeekly() bool {
	return a.Type == AlarmRepeating || a.Type == AlarmRandom
}

// HasWeekday reports whether wd is in the alarm's weekday set
func (a *Alarm) HasWeekday(wd time.Weekday) bool {
	return slices.Contains(a.Weekdays, wd)
}

// SortedWeekdays returns the weekday set in ascending order without duplicates
func (a *Alarm) SortedWeekdays() []time.Weekday {
	days := slices.Clone(a.Weekdays)
	slices.Sort(days)
	return slices.Compact(days)
}

// IsElapsed reports whether the cached next fire time is strictly before now
func (a *Alarm) IsElapsed(now time.Time) bool {
	return a.NextFireAt != nil && a.NextFireAt.Before(now)
}

// Clone returns a deep copy so callers can derive new alarms without
// mutating the original.
func (a Alarm) Clone() Alarm {
	out := a
	out.Weekdays = slices.Clone(a.Weekdays)
	out.RandomTimes = a.RandomTimes.Clone()
	if a.NextFireAt != nil {
		t := *a.NextFireAt
		out.NextFireAt = &t
	}
	return out
}

// DisplayTime returns the time shown for the alarm in listings
func (a *Alarm) DisplayTime() string {
	if a.Type != AlarmRandom {
		return a.TimeOfDay
	}
	var parts []string
	for _, wd := range a.SortedWeekdays() {
		t, ok := a.RandomTimes.TimeFor(wd)
		if !ok {
			t = "--:--"
		}
		parts = append(parts, wd.String()[:3]+" "+t)
	}
	return strings.Join(parts, ", ")
}

// FormatRecurrence returns a human-readable string describing the alarm's recurrence pattern
func (a *Alarm) FormatRecurrence() string {
	switch a.Type {
	case AlarmOneTime:
		return fmt.Sprintf("Once on %s", a.Date)
	case AlarmRepeating, AlarmRandom:
		days := make([]string, 0, len(a.Weekdays))
		for _, wd := range a.SortedWeekdays() {
			days = append(days, wd.String()[:3])
		}
		label := "Weekly"
		if a.Type == AlarmRandom {
			label = "Random"
		}
		return fmt.Sprintf("%s: %s", label, strings.Join(days, ", "))
	default:
		return "Unknown"
	}
}
