package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/utils"
)

const alarmColumns = `id, note_id, type, time_of_day, date, weekdays, random_times, enabled, next_fire_at, created_at, updated_at`

func (s *Store) AddAlarm(alarm models.Alarm) error {
	_, err := s.db.Exec(`
		INSERT INTO alarms (`+alarmColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		alarm.ID, alarm.NoteID, string(alarm.Type), alarm.TimeOfDay, alarm.Date,
		storage.EncodeWeekdays(alarm.Weekdays), storage.EncodeRandomTimes(alarm.RandomTimes),
		alarm.Enabled, storage.NullMillis(alarm.NextFireAt),
		utils.ToEpochMillis(alarm.CreatedAt), utils.ToEpochMillis(alarm.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to add alarm: %w", err)
	}
	return nil
}

func (s *Store) GetAlarm(id string) (models.Alarm, error) {
	row := s.db.QueryRow(`SELECT `+alarmColumns+` FROM alarms WHERE id = ?`, id)
	alarm, err := scanAlarm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Alarm{}, fmt.Errorf("alarm %s: %w", id, storage.ErrNotFound)
	}
	return alarm, err
}

func (s *Store) GetAllAlarms() ([]models.Alarm, error) {
	return s.queryAlarms(`SELECT ` + alarmColumns + ` FROM alarms ORDER BY created_at`)
}

func (s *Store) GetAlarmsForNote(noteID string) ([]models.Alarm, error) {
	return s.queryAlarms(`SELECT `+alarmColumns+` FROM alarms WHERE note_id = ? ORDER BY created_at`, noteID)
}

func (s *Store) GetEnabledAlarms() ([]models.Alarm, error) {
	return s.queryAlarms(`SELECT ` + alarmColumns + ` FROM alarms WHERE enabled = 1 ORDER BY created_at`)
}

func (s *Store) UpdateAlarm(alarm models.Alarm) error {
	res, err := s.db.Exec(`
		UPDATE alarms SET note_id = ?, type = ?, time_of_day = ?, date = ?, weekdays = ?,
		       random_times = ?, enabled = ?, next_fire_at = ?, updated_at = ?
		WHERE id = ?`,
		alarm.NoteID, string(alarm.Type), alarm.TimeOfDay, alarm.Date,
		storage.EncodeWeekdays(alarm.Weekdays), storage.EncodeRandomTimes(alarm.RandomTimes),
		alarm.Enabled, storage.NullMillis(alarm.NextFireAt), utils.ToEpochMillis(alarm.UpdatedAt),
		alarm.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update alarm: %w", err)
	}
	return requireRow(res, "alarm", alarm.ID)
}

func (s *Store) DeleteAlarm(id string) error {
	res, err := s.db.Exec("DELETE FROM alarms WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}
	return requireRow(res, "alarm", id)
}

func (s *Store) queryAlarms(query string, args ...any) ([]models.Alarm, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alarms []models.Alarm
	for rows.Next() {
		alarm, err := scanAlarm(rows)
		if err != nil {
			return nil, err
		}
		alarms = append(alarms, alarm)
	}
	return alarms, rows.Err()
}

func scanAlarm(row scanner) (models.Alarm, error) {
	var a models.Alarm
	var alarmType, weekdays, randomTimes string
	var nextFire sql.NullInt64
	var created, updated int64

	err := row.Scan(
		&a.ID, &a.NoteID, &alarmType, &a.TimeOfDay, &a.Date, &weekdays, &randomTimes,
		&a.Enabled, &nextFire, &created, &updated,
	)
	if err != nil {
		return models.Alarm{}, err
	}

	a.Type = models.AlarmType(alarmType)
	if a.Weekdays, err = storage.DecodeWeekdays(weekdays); err != nil {
		return models.Alarm{}, fmt.Errorf("alarm %s: %w", a.ID, err)
	}
	if a.RandomTimes, err = storage.DecodeRandomTimes(randomTimes); err != nil {
		return models.Alarm{}, fmt.Errorf("alarm %s: %w", a.ID, err)
	}
	a.NextFireAt = storage.TimeFromNullMillis(nextFire)
	a.CreatedAt = utils.FromEpochMillis(created)
	a.UpdatedAt = utils.FromEpochMillis(updated)
	return a, nil
}
