package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

// Calculator computes the next fire instant of an alarm. All arithmetic is
// done in the wall clock of now's location.
type Calculator struct {
	anomalies atomic.Int64
}

// New creates a new Calculator
func New() *Calculator {
	return &Calculator{}
}

// Anomalies returns the number of calculation anomalies seen so far
func (c *Calculator) Anomalies() int64 {
	return c.anomalies.Load()
}

// NextFireAt returns the earliest instant strictly after now at which the
// alarm fires. The bool is false when no future occurrence exists. A
// malformed time of day is reported as an error wrapping utils.ErrInvalidFormat.
func (c *Calculator) NextFireAt(alarm models.Alarm, now time.Time) (time.Time, bool, error) {
	switch alarm.Type {
	case constants.AlarmOneTime:
		return c.nextOneTime(alarm, now)
	case constants.AlarmRepeating:
		hour, minute, err := utils.ParseTimeOfDay(alarm.TimeOfDay)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("alarm %s: %w", alarm.ID, err)
		}
		return c.scan(alarm, now, func(time.Weekday) (int, int, bool, error) {
			return hour, minute, true, nil
		})
	case constants.AlarmRandom:
		return c.scan(alarm, now, func(wd time.Weekday) (int, int, bool, error) {
			tod, ok := alarm.RandomTimes.TimeFor(wd)
			if !ok {
				c.anomaly(alarm, "missing random time for weekday", "weekday", wd)
				return 0, 0, false, nil
			}
			h, m, err := utils.ParseTimeOfDay(tod)
			if err != nil {
				return 0, 0, false, fmt.Errorf("alarm %s %s: %w", alarm.ID, wd, err)
			}
			return h, m, true, nil
		})
	default:
		c.anomaly(alarm, "unknown alarm type")
		return time.Time{}, false, nil
	}
}

func (c *Calculator) nextOneTime(alarm models.Alarm, now time.Time) (time.Time, bool, error) {
	hour, minute, err := utils.ParseTimeOfDay(alarm.TimeOfDay)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("alarm %s: %w", alarm.ID, err)
	}
	date, err := utils.ParseDateInLocation(alarm.Date, now.Location())
	if err != nil {
		return time.Time{}, false, fmt.Errorf("alarm %s: %w", alarm.ID, err)
	}

	candidate := utils.Combine(date, hour, minute)
	if utils.IsPastOrEqual(candidate, now) {
		return time.Time{}, false, nil
	}
	return candidate, true, nil
}

// timeForDay yields the wall-clock time used on a weekday. ok=false skips
// the day.
type timeForDay func(wd time.Weekday) (hour, minute int, ok bool, err error)

// scan walks today through the same weekday next week and returns the first
// candidate on a selected weekday. Today only counts when its candidate is
// still ahead of now, so a time already passed today resolves to the same
// weekday seven days later.
func (c *Calculator) scan(alarm models.Alarm, now time.Time, timeFor timeForDay) (time.Time, bool, error) {
	if len(alarm.Weekdays) == 0 {
		return time.Time{}, false, nil
	}

	today := utils.StartOfDay(now)
	for i := 0; i <= constants.ScanHorizonDays; i++ {
		day := utils.AddDays(today, i)
		wd := utils.WeekdayOf(day)
		if !alarm.HasWeekday(wd) {
			continue
		}
		hour, minute, ok, err := timeFor(wd)
		if err != nil {
			return time.Time{}, false, err
		}
		if !ok {
			continue
		}
		candidate := utils.Combine(day, hour, minute)
		if i > 0 || candidate.After(now) {
			return candidate, true, nil
		}
	}

	c.anomaly(alarm, "no occurrence found in scan window", "horizon_days", constants.ScanHorizonDays)
	return time.Time{}, false, nil
}

func (c *Calculator) anomaly(alarm models.Alarm, msg string, keyvals ...any) {
	c.anomalies.Add(1)
	args := append([]any{"alarm_id", alarm.ID, "type", alarm.Type}, keyvals...)
	logger.Warn("Calculation anomaly: "+msg, args...)
}
