package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/backup"
	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)

	ctx := &cli.Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		t.Fatalf("failed to get initial preferences: %v", err)
	}
	prefs.SnoozeMinutesDefault = 30
	if err := ctx.Store.SavePreferences(prefs); err != nil {
		t.Fatalf("failed to save modified preferences: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}
	saved, err := backup.NewManager(dbPath).List()
	if err != nil || len(saved) != 1 {
		t.Errorf("backups after force = %v, %v, want one", saved, err)
	}

	prefs, err = ctx.Store.GetPreferences()
	if err != nil {
		t.Fatalf("failed to get preferences after force: %v", err)
	}
	if prefs.SnoozeMinutesDefault != constants.DefaultSnoozeMinutes {
		t.Errorf("expected default snooze minutes %d, got %d", constants.DefaultSnoozeMinutes, prefs.SnoozeMinutesDefault)
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same, got nil")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.Local)
	fireAt := time.Date(2026, 1, 7, 9, 0, 0, 0, time.Local)

	sourcePath := filepath.Join(t.TempDir(), "source.db")
	source := sqlite.NewStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	prefs, _ := source.GetPreferences()
	prefs.SnoozeMinutesDefault = 7
	if err := source.SavePreferences(prefs); err != nil {
		t.Fatalf("failed to save source preferences: %v", err)
	}
	if err := source.AddNote(models.Note{ID: "n1", Title: "Groceries", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("failed to add note: %v", err)
	}
	alarm := models.Alarm{
		ID: "a1", NoteID: "n1", Type: constants.AlarmRepeating, TimeOfDay: "09:00",
		Weekdays: []time.Weekday{time.Wednesday}, Enabled: true, NextFireAt: &fireAt,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := source.AddAlarm(alarm); err != nil {
		t.Fatalf("failed to add alarm: %v", err)
	}
	wd := time.Wednesday
	req := models.NotificationRequest{ID: "a1:3", AlarmID: "a1", NoteID: "n1", Weekday: &wd, FireAt: fireAt, RepeatWeekly: true, Title: "Groceries", Body: "Alarm at 09:00"}
	if err := source.SaveNotification(req); err != nil {
		t.Fatalf("failed to save notification: %v", err)
	}
	if err := source.Close(); err != nil {
		t.Fatalf("failed to close source: %v", err)
	}

	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	if got, err := ctx.Store.GetPreferences(); err != nil || got.SnoozeMinutesDefault != 7 {
		t.Errorf("preferences = %+v, %v, want snooze 7", got, err)
	}
	if _, err := ctx.Store.GetNote("n1"); err != nil {
		t.Errorf("note not copied: %v", err)
	}
	copied, err := ctx.Store.GetAlarm("a1")
	if err != nil {
		t.Fatalf("alarm not copied: %v", err)
	}
	if copied.NextFireAt == nil || !copied.NextFireAt.Equal(fireAt) {
		t.Errorf("copied NextFireAt = %v, want %v", copied.NextFireAt, fireAt)
	}
	reqs, err := ctx.Store.GetPendingNotifications()
	if err != nil {
		t.Fatalf("failed to get notifications: %v", err)
	}
	if len(reqs) != 1 || reqs[0].ID != "a1:3" {
		t.Errorf("notifications = %+v, want a1:3", reqs)
	}
}
