package postgres

import (
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
)

const upsertPreference = `INSERT INTO preferences (key, value) VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

func (s *Store) GetPreferences() (models.Preferences, error) {
	return storage.ReadPreferences(s.db)
}

func (s *Store) SavePreferences(prefs models.Preferences) error {
	return storage.WritePreferences(s.db, upsertPreference, prefs)
}
