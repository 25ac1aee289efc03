package storage

import (
	"time"

	"github.com/julianstephens/alarmnote/internal/migration"
	"github.com/julianstephens/alarmnote/internal/models"
)

// ErrNotFound is returned when a note, alarm or notification does not exist.
var ErrNotFound = models.ErrNotFound

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Preferences
	GetPreferences() (models.Preferences, error)
	SavePreferences(models.Preferences) error

	// Notes
	AddNote(models.Note) error
	GetNote(id string) (models.Note, error)
	GetAllNotes() ([]models.Note, error)
	UpdateNote(models.Note) error
	// DeleteNote removes the note and every alarm attached to it.
	DeleteNote(id string) error

	// Alarms
	AddAlarm(models.Alarm) error
	GetAlarm(id string) (models.Alarm, error)
	GetAllAlarms() ([]models.Alarm, error)
	GetAlarmsForNote(noteID string) ([]models.Alarm, error)
	GetEnabledAlarms() ([]models.Alarm, error)
	UpdateAlarm(models.Alarm) error
	DeleteAlarm(id string) error

	// Notification registry. SaveNotification replaces any request with the
	// same id; DeleteNotification of an unknown id is not an error.
	SaveNotification(models.NotificationRequest) error
	DeleteNotification(id string) error
	GetPendingNotifications() ([]models.NotificationRequest, error)
	// GetDueNotifications returns requests whose fire time is at or before now,
	// ordered by fire time.
	GetDueNotifications(now time.Time) ([]models.NotificationRequest, error)

	// Utils
	GetConfigPath() string
	MigrationStatus() (migration.Status, error)
}
