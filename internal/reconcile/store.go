package reconcile

import "github.com/julianstephens/alarmnote/internal/models"

//go:generate mockgen -source=store.go -destination=store_mock.go -package=reconcile

// AlarmStore is the slice of storage.Provider the controller reads and writes.
type AlarmStore interface {
	GetEnabledAlarms() ([]models.Alarm, error)
	UpdateAlarm(alarm models.Alarm) error
	GetNote(id string) (models.Note, error)
}
