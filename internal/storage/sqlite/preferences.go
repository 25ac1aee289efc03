package sqlite

import (
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
)

const upsertPreference = `INSERT INTO preferences (key, value) VALUES (?, ?)
	ON CONFLICT (key) DO UPDATE SET value = excluded.value`

func (s *Store) GetPreferences() (models.Preferences, error) {
	return storage.ReadPreferences(s.db)
}

func (s *Store) SavePreferences(prefs models.Preferences) error {
	return storage.WritePreferences(s.db, upsertPreference, prefs)
}
