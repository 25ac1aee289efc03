package system

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/storage/sqlite"
)

func setupTestDebugDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := &cli.Context{
		Store: store,
		Clock: func() time.Time { return now },
	}

	cleanup := func() {
		store.Close()
	}

	return ctx, cleanup
}

func addDebugAlarm(t *testing.T, ctx *cli.Context) models.Alarm {
	t.Helper()
	if err := ctx.Store.AddNote(models.Note{ID: "n1", Title: "Standup", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("failed to add note: %v", err)
	}
	fireAt := time.Date(2026, 1, 7, 9, 0, 0, 0, time.Local)
	alarm := models.Alarm{
		ID: "a1", NoteID: "n1", Type: constants.AlarmRepeating, TimeOfDay: "09:00",
		Weekdays: []time.Weekday{time.Monday, time.Wednesday}, Enabled: true, NextFireAt: &fireAt,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := ctx.Store.AddAlarm(alarm); err != nil {
		t.Fatalf("failed to add alarm: %v", err)
	}
	return alarm
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Errorf("debug db-path command failed: %v", err)
	}
}

func TestDebugDumpNoteCmd(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()
	addDebugAlarm(t, ctx)

	if err := (&DebugDumpNoteCmd{ID: "n1"}).Run(ctx); err != nil {
		t.Errorf("debug dump-note command failed: %v", err)
	}

	err := (&DebugDumpNoteCmd{ID: "missing"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("dump-note of missing note error = %v, want not found", err)
	}
}

func TestDebugDumpAlarmCmd(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()
	addDebugAlarm(t, ctx)

	if err := (&DebugDumpAlarmCmd{ID: "a1"}).Run(ctx); err != nil {
		t.Errorf("debug dump-alarm command failed: %v", err)
	}

	err := (&DebugDumpAlarmCmd{ID: "missing"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("dump-alarm of missing alarm error = %v, want not found", err)
	}
}

func TestDebugDumpAlarmCmd_JSONOutput(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()
	addDebugAlarm(t, ctx)

	alarm, err := ctx.Store.GetAlarm("a1")
	if err != nil {
		t.Fatalf("failed to retrieve alarm: %v", err)
	}
	jsonBytes, err := json.MarshalIndent(alarm, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal alarm to JSON: %v", err)
	}

	jsonStr := string(jsonBytes)
	for _, field := range []string{"id", "note_id", "type", "time_of_day", "weekdays", "next_fire_at"} {
		if !strings.Contains(jsonStr, `"`+field+`"`) {
			t.Errorf("JSON output missing field: %s", field)
		}
	}
}

func TestDebugDumpPrefsCmd(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	if err := (&DebugDumpPrefsCmd{}).Run(ctx); err != nil {
		t.Errorf("debug dump-prefs command failed: %v", err)
	}
}

func TestDebugDumpNotificationsCmd(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	if err := (&DebugDumpNotificationsCmd{}).Run(ctx); err != nil {
		t.Errorf("debug dump-notifications on empty registry failed: %v", err)
	}
	req := models.NotificationRequest{ID: "a1", AlarmID: "a1", NoteID: "n1", FireAt: now.Add(time.Hour), Title: "Standup"}
	if err := ctx.Store.SaveNotification(req); err != nil {
		t.Fatalf("failed to save notification: %v", err)
	}
	if err := (&DebugDumpNotificationsCmd{}).Run(ctx); err != nil {
		t.Errorf("debug dump-notifications command failed: %v", err)
	}
}

func TestDebugMaterializeCmd(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()
	addDebugAlarm(t, ctx)

	if err := (&DebugMaterializeCmd{ID: "a1"}).Run(ctx); err != nil {
		t.Errorf("debug materialize command failed: %v", err)
	}
	// Previewing must not register anything
	reqs, err := ctx.Store.GetPendingNotifications()
	if err != nil {
		t.Fatalf("failed to get notifications: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("materialize registered %d notifications, want 0", len(reqs))
	}

	if err := (&DebugMaterializeCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Error("materialize of missing alarm should fail")
	}
}
