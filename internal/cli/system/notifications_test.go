package system

import (
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/models"
)

func TestNotificationsListCmd(t *testing.T) {
	ctx, _, cleanup := setupTestDeliverDB(t)
	defer cleanup()

	if err := (&NotificationsListCmd{}).Run(ctx); err != nil {
		t.Fatalf("notifications list on empty registry failed: %v", err)
	}

	wd := time.Wednesday
	reqs := []models.NotificationRequest{
		{ID: "a1:3", AlarmID: "a1", NoteID: "n1", Weekday: &wd, FireAt: now.Add(23 * time.Hour), RepeatWeekly: true, Title: "Gym"},
		{ID: "a2", AlarmID: "a2", NoteID: "n2", FireAt: now.Add(-time.Minute), Title: "Dentist"},
	}
	for _, r := range reqs {
		if err := ctx.Store.SaveNotification(r); err != nil {
			t.Fatalf("failed to save notification: %v", err)
		}
	}

	tests := []struct {
		name  string
		alarm string
	}{
		{name: "all"},
		{name: "filtered", alarm: "a1"},
		{name: "no match", alarm: "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := (&NotificationsListCmd{Alarm: tt.alarm}).Run(ctx); err != nil {
				t.Errorf("notifications list failed: %v", err)
			}
		})
	}
}
