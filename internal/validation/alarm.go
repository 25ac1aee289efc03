package validation

import (
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

// ValidateAlarm checks the structural rules of an alarm specification and
// returns the first violation, or nil. Rules run in order: time of day, then
// the date for one-time alarms, then weekdays for repeating and random alarms.
func ValidateAlarm(alarmType models.AlarmType, timeOfDay, date string, weekdays []time.Weekday) error {
	if !utils.IsValidTimeOfDay(timeOfDay) {
		return newError(CodeInvalidTimeFormat, "time", "time %q must be HH:MM (24h)", timeOfDay)
	}

	switch alarmType {
	case constants.AlarmOneTime:
		if date == "" {
			return newError(CodeMissingDate, "date", "one-time alarms require a date")
		}
		if _, err := utils.ParseDate(date); err != nil {
			return newError(CodeInvalidDateFormat, "date", "date %q must be YYYY-MM-DD", date)
		}
	case constants.AlarmRepeating, constants.AlarmRandom:
		if len(weekdays) == 0 {
			return newError(CodeMissingWeekdays, "weekdays", "%s alarms require at least one weekday", alarmType)
		}
		for _, wd := range weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				return newError(CodeInvalidWeekday, "weekdays", "weekday %d is outside 0-6", int(wd))
			}
		}
	}

	return nil
}

// ValidateRandomTimes checks the per-weekday times of a random alarm. Missing
// entries are allowed; the calculator skips those days.
func ValidateRandomTimes(times models.RandomTimes) error {
	for wd, tod := range times {
		if wd < time.Sunday || wd > time.Saturday {
			return newError(CodeInvalidWeekday, "random_times", "weekday %d is outside 0-6", int(wd))
		}
		if tod == "" {
			continue
		}
		if !utils.IsValidTimeOfDay(tod) {
			return newError(CodeInvalidTimeFormat, "random_times", "time %q for %s must be HH:MM (24h)", tod, wd)
		}
	}
	return nil
}

// ValidateAlarmSpec validates a complete alarm: its type, the structural rules
// of ValidateAlarm, duplicate weekdays and the random time mapping.
func ValidateAlarmSpec(a models.Alarm) error {
	switch a.Type {
	case constants.AlarmOneTime, constants.AlarmRepeating, constants.AlarmRandom:
	default:
		return newError(CodeUnknownType, "type", "unknown alarm type %q", a.Type)
	}

	if err := ValidateAlarm(a.Type, RepresentativeTime(a), a.Date, a.Weekdays); err != nil {
		return err
	}

	if !a.IsWeekly() {
		return nil
	}

	seen := make(map[time.Weekday]bool, len(a.Weekdays))
	for _, wd := range a.Weekdays {
		if seen[wd] {
			return newError(CodeDuplicateWeekday, "weekdays", "weekday %s listed more than once", wd)
		}
		seen[wd] = true
	}

	if a.Type == constants.AlarmRandom {
		return ValidateRandomTimes(a.RandomTimes)
	}
	return nil
}

// RepresentativeTime returns the time of day checked by the time-format rule.
// Random alarms store the time of their first weekday that has an entry.
func RepresentativeTime(a models.Alarm) string {
	if a.Type != constants.AlarmRandom {
		return a.TimeOfDay
	}
	for _, wd := range a.SortedWeekdays() {
		if t, ok := a.RandomTimes.TimeFor(wd); ok {
			return t
		}
	}
	return a.TimeOfDay
}
