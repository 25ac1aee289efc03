// Package storagetest holds a behavioural test suite shared by every
// storage.Provider implementation.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage"
)

// Factory returns an initialized, empty provider. The suite closes it.
type Factory func(t *testing.T) storage.Provider

// Run runs every provider test against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Provider)
	}{
		{"Preferences", testPreferences},
		{"Notes", testNotes},
		{"Alarms", testAlarms},
		{"DeleteNoteCascades", testDeleteNoteCascades},
		{"Notifications", testNotifications},
		{"MigrationStatus", testMigrationStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

// ts truncates to milliseconds, the storage resolution.
func ts(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

func mustAddNote(t *testing.T, s storage.Provider, id string) models.Note {
	t.Helper()
	now := ts(2026, 1, 5, 8, 0)
	note := models.Note{ID: id, Title: "Title " + id, Content: "body", CreatedAt: now, UpdatedAt: now}
	if err := s.AddNote(note); err != nil {
		t.Fatalf("AddNote(%s) error = %v", id, err)
	}
	return note
}

func testPreferences(t *testing.T, s storage.Provider) {
	prefs, err := s.GetPreferences()
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if prefs != storage.DefaultPreferences() {
		t.Errorf("GetPreferences() = %+v, want defaults", prefs)
	}

	prefs.SnoozeMinutesDefault = 25
	prefs.Timezone = "Asia/Tokyo"
	prefs.NotificationsEnabled = false
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}
	got, err := s.GetPreferences()
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if got != prefs {
		t.Errorf("GetPreferences() = %+v, want %+v", got, prefs)
	}
}

func testNotes(t *testing.T, s storage.Provider) {
	note := mustAddNote(t, s, "n1")

	got, err := s.GetNote("n1")
	if err != nil {
		t.Fatalf("GetNote() error = %v", err)
	}
	if got.Title != note.Title || !got.CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("GetNote() = %+v, want %+v", got, note)
	}

	note.Title = "Renamed"
	note.UpdatedAt = note.UpdatedAt.Add(time.Hour)
	if err := s.UpdateNote(note); err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	got, _ = s.GetNote("n1")
	if got.Title != "Renamed" {
		t.Errorf("GetNote() title = %q, want Renamed", got.Title)
	}

	mustAddNote(t, s, "n2")
	all, err := s.GetAllNotes()
	if err != nil {
		t.Fatalf("GetAllNotes() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAllNotes() returned %d notes, want 2", len(all))
	}

	if _, err := s.GetNote("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetNote(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateNote(models.Note{ID: "missing"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateNote(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteNote("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteNote(missing) error = %v, want ErrNotFound", err)
	}
}

func testAlarms(t *testing.T, s storage.Provider) {
	mustAddNote(t, s, "n1")
	next := ts(2026, 1, 7, 21, 0)
	created := ts(2026, 1, 5, 8, 0)

	random := models.Alarm{
		ID: "a-random", NoteID: "n1", Type: constants.AlarmRandom, TimeOfDay: "09:00",
		Weekdays:    []time.Weekday{time.Monday, time.Wednesday},
		RandomTimes: models.RandomTimes{time.Monday: "09:00", time.Wednesday: "21:00"},
		Enabled:     true, NextFireAt: &next, CreatedAt: created, UpdatedAt: created,
	}
	once := models.Alarm{
		ID: "a-once", NoteID: "n1", Type: constants.AlarmOneTime, TimeOfDay: "07:00", Date: "2026-01-04",
		Enabled: false, CreatedAt: created.Add(time.Minute), UpdatedAt: created.Add(time.Minute),
	}
	for _, a := range []models.Alarm{random, once} {
		if err := s.AddAlarm(a); err != nil {
			t.Fatalf("AddAlarm(%s) error = %v", a.ID, err)
		}
	}

	got, err := s.GetAlarm("a-random")
	if err != nil {
		t.Fatalf("GetAlarm() error = %v", err)
	}
	if got.Type != constants.AlarmRandom || len(got.Weekdays) != 2 || got.RandomTimes[time.Wednesday] != "21:00" {
		t.Errorf("GetAlarm() = %+v, want %+v", got, random)
	}
	if got.NextFireAt == nil || !got.NextFireAt.Equal(next) {
		t.Errorf("GetAlarm() NextFireAt = %v, want %v", got.NextFireAt, next)
	}

	gotOnce, err := s.GetAlarm("a-once")
	if err != nil {
		t.Fatalf("GetAlarm() error = %v", err)
	}
	if gotOnce.NextFireAt != nil || gotOnce.Enabled || gotOnce.Weekdays != nil {
		t.Errorf("GetAlarm(once) = %+v, want disabled with nil next fire", gotOnce)
	}

	enabled, err := s.GetEnabledAlarms()
	if err != nil {
		t.Fatalf("GetEnabledAlarms() error = %v", err)
	}
	if len(enabled) != 1 || enabled[0].ID != "a-random" {
		t.Errorf("GetEnabledAlarms() = %v, want only a-random", enabled)
	}

	forNote, err := s.GetAlarmsForNote("n1")
	if err != nil || len(forNote) != 2 {
		t.Errorf("GetAlarmsForNote() = %d alarms, %v, want 2", len(forNote), err)
	}

	got.Enabled = false
	got.NextFireAt = nil
	if err := s.UpdateAlarm(got); err != nil {
		t.Fatalf("UpdateAlarm() error = %v", err)
	}
	got, _ = s.GetAlarm("a-random")
	if got.Enabled || got.NextFireAt != nil {
		t.Errorf("UpdateAlarm() not persisted: %+v", got)
	}

	if err := s.DeleteAlarm("a-once"); err != nil {
		t.Fatalf("DeleteAlarm() error = %v", err)
	}
	if _, err := s.GetAlarm("a-once"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetAlarm(deleted) error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateAlarm(models.Alarm{ID: "missing", NoteID: "n1", Type: constants.AlarmOneTime}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateAlarm(missing) error = %v, want ErrNotFound", err)
	}

	all, err := s.GetAllAlarms()
	if err != nil || len(all) != 1 {
		t.Errorf("GetAllAlarms() = %d, %v, want 1", len(all), err)
	}
}

func testDeleteNoteCascades(t *testing.T, s storage.Provider) {
	mustAddNote(t, s, "n1")
	mustAddNote(t, s, "n2")
	now := ts(2026, 1, 5, 8, 0)
	for _, a := range []models.Alarm{
		{ID: "a1", NoteID: "n1", Type: constants.AlarmRepeating, TimeOfDay: "08:00", Weekdays: []time.Weekday{1}, Enabled: true, CreatedAt: now, UpdatedAt: now},
		{ID: "a2", NoteID: "n2", Type: constants.AlarmRepeating, TimeOfDay: "08:00", Weekdays: []time.Weekday{1}, Enabled: true, CreatedAt: now, UpdatedAt: now},
	} {
		if err := s.AddAlarm(a); err != nil {
			t.Fatalf("AddAlarm() error = %v", err)
		}
	}

	if err := s.DeleteNote("n1"); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}
	if _, err := s.GetAlarm("a1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetAlarm(a1) error = %v, want ErrNotFound after note deletion", err)
	}
	if _, err := s.GetAlarm("a2"); err != nil {
		t.Errorf("GetAlarm(a2) error = %v, want untouched", err)
	}
}

func testNotifications(t *testing.T, s storage.Provider) {
	wd := time.Wednesday
	early := ts(2026, 1, 6, 9, 0)
	late := ts(2026, 1, 7, 21, 0)

	reqs := []models.NotificationRequest{
		{
			ID: "a1:3", AlarmID: "a1", NoteID: "n1", Weekday: &wd, FireAt: late, RepeatWeekly: true,
			Title: "Note", Body: "Random alarm at 21:00",
			Data: map[string]string{constants.PayloadAlarmID: "a1", constants.PayloadNoteID: "n1", constants.PayloadWeekday: "3"},
		},
		{
			ID: "a2", AlarmID: "a2", NoteID: "n1", FireAt: early, Title: "Note", Body: "Alarm at 09:00",
			Data: map[string]string{constants.PayloadAlarmID: "a2", constants.PayloadNoteID: "n1"},
		},
	}
	for _, r := range reqs {
		if err := s.SaveNotification(r); err != nil {
			t.Fatalf("SaveNotification(%s) error = %v", r.ID, err)
		}
	}

	pending, err := s.GetPendingNotifications()
	if err != nil {
		t.Fatalf("GetPendingNotifications() error = %v", err)
	}
	if len(pending) != 2 || pending[0].ID != "a2" {
		t.Fatalf("GetPendingNotifications() = %v, want a2 first", pending)
	}
	weekly := pending[1]
	if weekly.Weekday == nil || *weekly.Weekday != time.Wednesday || !weekly.RepeatWeekly {
		t.Errorf("weekly request = %+v, want Wednesday repeating", weekly)
	}
	if weekly.Data[constants.PayloadWeekday] != "3" {
		t.Errorf("weekly request data = %v", weekly.Data)
	}
	if pending[0].Weekday != nil {
		t.Errorf("one-shot request weekday = %v, want nil", *pending[0].Weekday)
	}

	due, err := s.GetDueNotifications(early)
	if err != nil {
		t.Fatalf("GetDueNotifications() error = %v", err)
	}
	if len(due) != 1 || due[0].ID != "a2" {
		t.Errorf("GetDueNotifications() = %v, want only a2", due)
	}

	// Re-registering an id overwrites it.
	moved := reqs[1]
	moved.FireAt = late.Add(time.Hour)
	if err := s.SaveNotification(moved); err != nil {
		t.Fatalf("SaveNotification() overwrite error = %v", err)
	}
	pending, _ = s.GetPendingNotifications()
	if len(pending) != 2 || pending[1].ID != "a2" || !pending[1].FireAt.Equal(moved.FireAt) {
		t.Errorf("after overwrite pending = %v", pending)
	}

	if err := s.DeleteNotification("a2"); err != nil {
		t.Fatalf("DeleteNotification() error = %v", err)
	}
	if err := s.DeleteNotification("never-registered"); err != nil {
		t.Errorf("DeleteNotification(unknown) error = %v, want nil", err)
	}
	pending, _ = s.GetPendingNotifications()
	if len(pending) != 1 {
		t.Errorf("GetPendingNotifications() = %d, want 1", len(pending))
	}
}

func testMigrationStatus(t *testing.T, s storage.Provider) {
	st, err := s.MigrationStatus()
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if !st.UpToDate() || st.Latest == 0 {
		t.Errorf("MigrationStatus() = %+v, want up to date", st)
	}
}
