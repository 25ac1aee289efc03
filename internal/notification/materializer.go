package notification

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

// Materializer expands alarms into OS notification requests.
type Materializer struct {
	defaultTitle string
	anomalies    atomic.Int64
}

// NewMaterializer returns a Materializer that titles requests for untitled
// notes with defaultTitle.
func NewMaterializer(defaultTitle string) *Materializer {
	if defaultTitle == "" {
		defaultTitle = constants.DefaultNotificationTitle
	}
	return &Materializer{defaultTitle: defaultTitle}
}

// Anomalies returns the number of weekdays skipped because their time was
// missing or malformed.
func (m *Materializer) Anomalies() int64 {
	return m.anomalies.Load()
}

// Materialize returns the requests to register for alarm. Disabled alarms and
// one-time alarms without a future fire time produce none.
func (m *Materializer) Materialize(alarm models.Alarm, noteTitle string, now time.Time) []models.NotificationRequest {
	if !alarm.Enabled {
		return nil
	}
	title := noteTitle
	if title == "" {
		title = m.defaultTitle
	}

	switch alarm.Type {
	case constants.AlarmOneTime:
		if alarm.NextFireAt == nil || utils.IsPastOrEqual(*alarm.NextFireAt, now) {
			return nil
		}
		fireAt := *alarm.NextFireAt
		return []models.NotificationRequest{{
			ID:      alarm.ID,
			AlarmID: alarm.ID,
			NoteID:  alarm.NoteID,
			FireAt:  fireAt,
			Title:   title,
			Body:    "Alarm at " + fireAt.Format(constants.TimeFormat),
			Data:    payload(alarm, nil),
		}}
	case constants.AlarmRepeating:
		return m.weekly(alarm, title, now, "Repeating alarm at ", func(time.Weekday) (string, bool) {
			return alarm.TimeOfDay, true
		})
	case constants.AlarmRandom:
		return m.weekly(alarm, title, now, "Random alarm at ", alarm.RandomTimes.TimeFor)
	default:
		m.anomaly(alarm, "unknown alarm type")
		return nil
	}
}

func (m *Materializer) weekly(alarm models.Alarm, title string, now time.Time, bodyPrefix string, timeFor func(time.Weekday) (string, bool)) []models.NotificationRequest {
	var reqs []models.NotificationRequest
	for _, wd := range alarm.SortedWeekdays() {
		tod, ok := timeFor(wd)
		if !ok {
			m.anomaly(alarm, "missing time for weekday", "weekday", wd)
			continue
		}
		hour, minute, err := utils.ParseTimeOfDay(tod)
		if err != nil {
			m.anomaly(alarm, "malformed time for weekday", "weekday", wd, "error", err)
			continue
		}

		reqs = append(reqs, models.NotificationRequest{
			ID:           WeekdayID(alarm.ID, wd),
			AlarmID:      alarm.ID,
			NoteID:       alarm.NoteID,
			Weekday:      &wd,
			FireAt:       NextWeekdayOccurrence(wd, hour, minute, now),
			RepeatWeekly: true,
			Title:        title,
			Body:         bodyPrefix + tod,
			Data:         payload(alarm, &wd),
		})
	}
	return reqs
}

// NextWeekdayOccurrence returns the first hour:minute on weekday wd strictly
// after now, in now's location.
func NextWeekdayOccurrence(wd time.Weekday, hour, minute int, now time.Time) time.Time {
	days := (int(wd) - int(utils.WeekdayOf(now)) + constants.DaysPerWeek) % constants.DaysPerWeek
	candidate := utils.Combine(utils.AddDays(utils.StartOfDay(now), days), hour, minute)
	if !candidate.After(now) {
		candidate = utils.Combine(utils.AddDays(utils.StartOfDay(now), days+constants.DaysPerWeek), hour, minute)
	}
	return candidate
}

func payload(alarm models.Alarm, wd *time.Weekday) map[string]string {
	data := map[string]string{
		constants.PayloadAlarmID: alarm.ID,
		constants.PayloadNoteID:  alarm.NoteID,
	}
	if wd != nil {
		data[constants.PayloadWeekday] = strconv.Itoa(int(*wd))
	}
	return data
}

func (m *Materializer) anomaly(alarm models.Alarm, msg string, keyvals ...any) {
	m.anomalies.Add(1)
	args := append([]any{"alarm_id", alarm.ID, "type", alarm.Type}, keyvals...)
	logger.Warn("Materialization anomaly: "+msg, args...)
}
