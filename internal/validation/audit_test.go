package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
)

func TestAuditAlarms(t *testing.T) {
	now := time.Date(2026, 1, 6, 10, 0, 0, 0, time.Local)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	alarms := []models.Alarm{
		{
			ID: "ok", NoteID: "n1", Type: constants.AlarmRepeating, TimeOfDay: "09:00",
			Weekdays: []time.Weekday{time.Monday}, Enabled: true, NextFireAt: &future,
		},
		{
			ID: "elapsed", NoteID: "n1", Type: constants.AlarmOneTime, TimeOfDay: "09:00",
			Date: "2026-01-06", Enabled: true, NextFireAt: &past,
		},
		{
			ID: "none", NoteID: "n1", Type: constants.AlarmOneTime, TimeOfDay: "09:00",
			Date: "2026-01-01", Enabled: true,
		},
		{
			ID: "disabled", NoteID: "n1", Type: constants.AlarmOneTime, TimeOfDay: "09:00",
			Date: "2026-01-01", Enabled: false,
		},
		{
			ID: "partial", NoteID: "n1", Type: constants.AlarmRandom,
			Weekdays:    []time.Weekday{time.Monday, time.Tuesday},
			RandomTimes: models.RandomTimes{time.Monday: "09:00"}, Enabled: true, NextFireAt: &future,
		},
		{
			ID: "broken", NoteID: "gone", Type: constants.AlarmRepeating, TimeOfDay: "09:00", Enabled: true,
		},
	}

	v := New()
	result := v.AuditAlarms(alarms, map[string]bool{"n1": true}, now)

	counts := map[IssueType]int{
		IssueElapsedNextFire:   1,
		IssueNoNextFire:        1,
		IssueMissingRandomTime: 1,
		IssueInvalidSpec:       1,
		IssueOrphanedAlarm:     1,
	}
	for typ, want := range counts {
		if got := result.Count(typ); got != want {
			t.Errorf("Count(%s) = %d, want %d", typ, got, want)
		}
	}
	if len(result.Issues) != 5 {
		t.Errorf("len(Issues) = %d, want 5: %+v", len(result.Issues), result.Issues)
	}

	report := result.FormatReport()
	if !strings.Contains(report, "Tuesday") {
		t.Errorf("FormatReport() = %q, want missing Tuesday mentioned", report)
	}
}

func TestAuditAlarmsClean(t *testing.T) {
	v := New()
	result := v.AuditAlarms(nil, nil, time.Now())
	if result.HasIssues() {
		t.Errorf("HasIssues() = true for no alarms")
	}
	if got := result.FormatReport(); got != "No issues detected." {
		t.Errorf("FormatReport() = %q, want %q", got, "No issues detected.")
	}
}
