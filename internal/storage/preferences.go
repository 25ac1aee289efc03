package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
)

// DefaultPreferences returns the preferences a fresh database starts with
func DefaultPreferences() models.Preferences {
	return models.Preferences{
		SnoozeMinutesDefault: constants.DefaultSnoozeMinutes,
		Timezone:             constants.DefaultTimezone,
		OnboardingCompleted:  false,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
	}
}

// ApplyPreference sets the field named by key from its stored string value.
// Unknown keys are ignored.
func ApplyPreference(p *models.Preferences, key, value string) error {
	switch key {
	case constants.PrefSnoozeMinutesDefault:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		p.SnoozeMinutesDefault = n
	case constants.PrefTimezone:
		p.Timezone = value
	case constants.PrefOnboardingCompleted:
		p.OnboardingCompleted = value == "true"
	case constants.PrefNotificationsEnabled:
		p.NotificationsEnabled = value == "true"
	}
	return nil
}

// PreferencePairs returns the key/value rows stored for p
func PreferencePairs(p models.Preferences) [][2]string {
	return [][2]string{
		{constants.PrefSnoozeMinutesDefault, strconv.Itoa(p.SnoozeMinutesDefault)},
		{constants.PrefTimezone, p.Timezone},
		{constants.PrefOnboardingCompleted, strconv.FormatBool(p.OnboardingCompleted)},
		{constants.PrefNotificationsEnabled, strconv.FormatBool(p.NotificationsEnabled)},
	}
}

// ReadPreferences loads the key/value preferences table over the defaults.
func ReadPreferences(db *sql.DB) (models.Preferences, error) {
	prefs := DefaultPreferences()
	rows, err := db.Query("SELECT key, value FROM preferences")
	if err != nil {
		return prefs, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return prefs, err
		}
		if err := ApplyPreference(&prefs, key, value); err != nil {
			return prefs, err
		}
	}
	return prefs, rows.Err()
}

// WritePreferences upserts every preference row in one transaction. upsert
// takes the key and value as its two parameters.
func WritePreferences(db *sql.DB, upsert string, p models.Preferences) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, kv := range PreferencePairs(p) {
		if _, err := tx.Exec(upsert, kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to save preference %s: %w", kv[0], err)
		}
	}
	return tx.Commit()
}
