package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/models"
)

// Snooze derives a new one-time alarm firing minutes after now on the same
// note. The original alarm is not modified. Callers substitute the user's
// default snooze length for non-positive minutes.
func Snooze(original models.Alarm, minutes int, now time.Time) models.Alarm {
	fireAt := now.Add(time.Duration(minutes) * time.Minute)

	logger.Debug("Creating snooze alarm", "original_id", original.ID, "minutes", minutes, "fire_at", fireAt)

	return models.Alarm{
		ID:         uuid.New().String(),
		NoteID:     original.NoteID,
		Type:       constants.AlarmOneTime,
		TimeOfDay:  fireAt.Format(constants.TimeFormat),
		Date:       fireAt.Format(constants.DateFormat),
		Enabled:    true,
		NextFireAt: &fireAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// RecomputeAfterFire returns the next fire time of an alarm that has just
// fired. Only repeating alarms recur here; one-time and random alarms
// return no next occurrence.
//
// TODO: random alarms also recur weekly; decide whether they should
// recompute here like repeating ones before changing this.
func (c *Calculator) RecomputeAfterFire(alarm models.Alarm, now time.Time) (time.Time, bool, error) {
	if alarm.Type != constants.AlarmRepeating {
		return time.Time{}, false, nil
	}
	return c.NextFireAt(alarm, now)
}
