package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/alarms"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/notification"
	"github.com/julianstephens/alarmnote/internal/storage/sqlite"
)

func TestForegroundAgainstSQLite(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "alarmnote.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer store.Close()

	clock := time.Date(2026, 1, 6, 10, 0, 0, 0, time.Local)
	note := models.Note{ID: "n1", Title: "Errands", CreatedAt: clock, UpdatedAt: clock}
	if err := store.AddNote(note); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}

	alarms := []models.Alarm{
		{ID: "A", NoteID: "n1", Type: constants.AlarmOneTime, Date: "2026-01-06", TimeOfDay: "11:00", Enabled: true, NextFireAt: at(time.Date(2026, 1, 6, 11, 0, 0, 0, time.Local))},
		{ID: "B", NoteID: "n1", Type: constants.AlarmOneTime, Date: "2026-01-08", TimeOfDay: "09:00", Enabled: true, NextFireAt: at(time.Date(2026, 1, 8, 9, 0, 0, 0, time.Local))},
		{ID: "C", NoteID: "n1", Type: constants.AlarmRepeating, TimeOfDay: "09:00", Weekdays: []time.Weekday{time.Monday, time.Wednesday}, Enabled: true, NextFireAt: at(time.Date(2026, 1, 7, 9, 0, 0, 0, time.Local))},
	}
	for _, a := range alarms {
		a.CreatedAt, a.UpdatedAt = clock, clock
		if err := store.AddAlarm(a); err != nil {
			t.Fatalf("AddAlarm(%s) error = %v", a.ID, err)
		}
	}

	ctx := context.Background()
	registry := notification.NewRegistry(store)
	c := New(store, registry, WithClock(func() time.Time { return clock }))

	if _, err := c.ForceReconcileAll(ctx); err != nil {
		t.Fatalf("ForceReconcileAll() error = %v", err)
	}
	if got, want := registeredIDs(t, registry), []string{"A", "B", "C:1", "C:3"}; !slices.Equal(got, want) {
		t.Fatalf("registered ids = %v, want %v", got, want)
	}

	// A fires at 11:00; the app comes back at noon.
	clock = time.Date(2026, 1, 6, 12, 0, 0, 0, time.Local)
	report, err := c.HandleTransition(ctx, constants.StateBackground, constants.StateActive)
	if err != nil {
		t.Fatalf("HandleTransition() error = %v", err)
	}
	if report.Disabled != 1 || report.Failed != 0 {
		t.Errorf("report = %+v, want one disabled alarm", report)
	}

	a, err := store.GetAlarm("A")
	if err != nil {
		t.Fatalf("GetAlarm(A) error = %v", err)
	}
	if a.Enabled {
		t.Error("alarm A still enabled after foreground pass")
	}

	for _, want := range alarms[1:] {
		got, err := store.GetAlarm(want.ID)
		if err != nil {
			t.Fatalf("GetAlarm(%s) error = %v", want.ID, err)
		}
		if !got.Enabled || !got.NextFireAt.Equal(*want.NextFireAt) || !got.UpdatedAt.Equal(clock.Add(-2*time.Hour)) {
			t.Errorf("alarm %s changed: enabled=%v next=%v updated=%v", got.ID, got.Enabled, got.NextFireAt, got.UpdatedAt)
		}
	}

	if got, want := registeredIDs(t, registry), []string{"B", "C:1", "C:3"}; !slices.Equal(got, want) {
		t.Errorf("registered ids = %v, want %v", got, want)
	}
}

func registeredIDs(t *testing.T, s notification.Scheduler) []string {
	t.Helper()
	reqs, err := s.Pending(context.Background())
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	slices.Sort(ids)
	return ids
}

// flakyScheduler fails every Cancel while failCancel is set.
type flakyScheduler struct {
	notification.Scheduler
	failCancel bool
}

func (f *flakyScheduler) Cancel(ctx context.Context, id string) error {
	if f.failCancel {
		return fmt.Errorf("%w: cancel %s: unavailable", notification.ErrSchedulerIO, id)
	}
	return f.Scheduler.Cancel(ctx, id)
}

func TestRebuildRetriesFailedCancellation(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "alarmnote.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer store.Close()

	clock := time.Date(2026, 1, 6, 10, 0, 0, 0, time.Local)
	if err := store.AddNote(models.Note{ID: "n1", Title: "Gym", CreatedAt: clock, UpdatedAt: clock}); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}

	ctx := context.Background()
	registry := notification.NewRegistry(store)
	flaky := &flakyScheduler{Scheduler: registry}
	svc := alarms.NewService(store, flaky, nil, nil, func() time.Time { return clock })

	create := func(weekdays ...time.Weekday) models.Alarm {
		t.Helper()
		a, err := svc.Create(ctx, alarms.CreateInput{NoteID: "n1", Type: constants.AlarmRepeating, TimeOfDay: "09:00", Weekdays: weekdays})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		return a
	}
	disabled := create(time.Monday, time.Wednesday)
	deleted := create(time.Friday)
	kept := create(time.Tuesday)

	flaky.failCancel = true
	if _, err := svc.SetEnabled(ctx, disabled.ID, false); err != nil {
		t.Fatalf("SetEnabled() error = %v", err)
	}
	if err := svc.Delete(ctx, deleted.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := registeredIDs(t, registry); len(got) != 4 {
		t.Fatalf("registered ids = %v, want the 4 left behind by failed cancels", got)
	}

	flaky.failCancel = false
	c := New(store, flaky, WithClock(func() time.Time { return clock }))
	report, err := c.ForceReconcileAll(ctx)
	if err != nil {
		t.Fatalf("ForceReconcileAll() error = %v", err)
	}
	if report.Orphaned != 2 || report.Failed != 0 {
		t.Errorf("report = %+v, want Orphaned 2, Failed 0", report)
	}
	if got, want := registeredIDs(t, registry), []string{kept.ID + ":2"}; !slices.Equal(got, want) {
		t.Errorf("registered ids = %v, want %v", got, want)
	}
}
