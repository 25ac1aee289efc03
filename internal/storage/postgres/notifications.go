package postgres

import (
	"database/sql"
	"time"

	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
	"github.com/julianstephens/alarmnote/internal/utils"
)

const notificationColumns = `id, alarm_id, note_id, weekday, fire_at, repeat_weekly, title, body, data`

func (s *Store) SaveNotification(req models.NotificationRequest) error {
	_, err := s.db.Exec(`
		INSERT INTO scheduled_notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			alarm_id = EXCLUDED.alarm_id, note_id = EXCLUDED.note_id, weekday = EXCLUDED.weekday,
			fire_at = EXCLUDED.fire_at, repeat_weekly = EXCLUDED.repeat_weekly,
			title = EXCLUDED.title, body = EXCLUDED.body, data = EXCLUDED.data`,
		req.ID, req.AlarmID, req.NoteID, storage.NullWeekday(req.Weekday),
		utils.ToEpochMillis(req.FireAt), req.RepeatWeekly, req.Title, req.Body,
		storage.EncodeData(req.Data),
	)
	return err
}

func (s *Store) DeleteNotification(id string) error {
	_, err := s.db.Exec("DELETE FROM scheduled_notifications WHERE id = $1", id)
	return err
}

func (s *Store) GetPendingNotifications() ([]models.NotificationRequest, error) {
	return s.queryNotifications(`SELECT ` + notificationColumns + ` FROM scheduled_notifications ORDER BY fire_at, id`)
}

func (s *Store) GetDueNotifications(now time.Time) ([]models.NotificationRequest, error) {
	return s.queryNotifications(`SELECT `+notificationColumns+` FROM scheduled_notifications WHERE fire_at <= $1 ORDER BY fire_at, id`, utils.ToEpochMillis(now))
}

func (s *Store) queryNotifications(query string, args ...any) ([]models.NotificationRequest, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []models.NotificationRequest
	for rows.Next() {
		var r models.NotificationRequest
		var weekday sql.NullInt16
		var fireAt int64
		var data string
		if err := rows.Scan(&r.ID, &r.AlarmID, &r.NoteID, &weekday, &fireAt, &r.RepeatWeekly, &r.Title, &r.Body, &data); err != nil {
			return nil, err
		}
		r.Weekday = storage.WeekdayFromNull(weekday)
		r.FireAt = utils.FromEpochMillis(fireAt)
		if r.Data, err = storage.DecodeData(data); err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}
