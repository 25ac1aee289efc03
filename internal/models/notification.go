package models

import "time"

// NotificationRequest is one OS-facing notification instance. IDs are
// deterministic so registering the same request twice overwrites it.
type NotificationRequest struct {
	ID           string            `json:"id"`
	AlarmID      string            `json:"alarm_id"`
	NoteID       string            `json:"note_id"`
	Weekday      *time.Weekday     `json:"weekday,omitempty"`
	FireAt       time.Time         `json:"fire_at"`
	RepeatWeekly bool              `json:"repeat_weekly"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Data         map[string]string `json:"data,omitempty"`
}
