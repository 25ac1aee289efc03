package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/utils"
)

const notificationColumns = `id, alarm_id, note_id, weekday, fire_at, repeat_weekly, title, body, data`

func (s *Store) SaveNotification(req models.NotificationRequest) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO scheduled_notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.AlarmID, req.NoteID, storage.NullWeekday(req.Weekday),
		utils.ToEpochMillis(req.FireAt), req.RepeatWeekly, req.Title, req.Body,
		storage.EncodeData(req.Data),
	)
	return err
}

func (s *Store) DeleteNotification(id string) error {
	_, err := s.db.Exec("DELETE FROM scheduled_notifications WHERE id = ?", id)
	return err
}

func (s *Store) GetPendingNotifications() ([]models.NotificationRequest, error) {
	return s.queryNotifications(`SELECT ` + notificationColumns + ` FROM scheduled_notifications ORDER BY fire_at, id`)
}

func (s *Store) GetDueNotifications(now time.Time) ([]models.NotificationRequest, error) {
	return s.queryNotifications(`SELECT `+notificationColumns+` FROM scheduled_notifications WHERE fire_at <= ? ORDER BY fire_at, id`, utils.ToEpochMillis(now))
}

func (s *Store) queryNotifications(query string, args ...any) ([]models.NotificationRequest, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []models.NotificationRequest
	for rows.Next() {
		req, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func scanNotification(row scanner) (models.NotificationRequest, error) {
	var r models.NotificationRequest
	var weekday sql.NullInt16
	var fireAt int64
	var data string

	if err := row.Scan(&r.ID, &r.AlarmID, &r.NoteID, &weekday, &fireAt, &r.RepeatWeekly, &r.Title, &r.Body, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NotificationRequest{}, storage.ErrNotFound
		}
		return models.NotificationRequest{}, err
	}

	r.Weekday = storage.WeekdayFromNull(weekday)
	r.FireAt = utils.FromEpochMillis(fireAt)
	d, err := storage.DecodeData(data)
	if err != nil {
		return models.NotificationRequest{}, err
	}
	r.Data = d
	return r, nil
}
