package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
)

// IssueType represents the kind of problem found in a stored alarm
type IssueType string

const (
	IssueInvalidSpec       IssueType = "invalid_spec"
	IssueMissingRandomTime IssueType = "missing_random_time"
	IssueNoNextFire        IssueType = "no_next_fire"
	IssueElapsedNextFire   IssueType = "elapsed_next_fire"
	IssueOrphanedAlarm     IssueType = "orphaned_alarm"
)

// Issue is a single finding of an audit
type Issue struct {
	Type        IssueType
	AlarmID     string
	Description string
}

// ValidationResult contains all detected issues
type ValidationResult struct {
	Issues []Issue
}

// HasIssues returns true if there are any issues
func (vr *ValidationResult) HasIssues() bool {
	return len(vr.Issues) > 0
}

// Count returns the number of issues of the given type
func (vr *ValidationResult) Count(t IssueType) int {
	n := 0
	for _, is := range vr.Issues {
		if is.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all issues
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasIssues() {
		return "No issues detected."
	}

	report := "Issues detected:\n"
	for _, is := range vr.Issues {
		report += fmt.Sprintf("- %s\n", is.Description)
	}
	return report
}

// Validator audits persisted alarms
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// AuditAlarms checks stored alarms for problems that would make them fire
// late or never. noteIDs is the set of existing notes; pass nil to skip the
// orphan check.
func (v *Validator) AuditAlarms(alarms []models.Alarm, noteIDs map[string]bool, now time.Time) ValidationResult {
	result := ValidationResult{Issues: []Issue{}}

	for _, a := range alarms {
		if noteIDs != nil && !noteIDs[a.NoteID] {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueOrphanedAlarm,
				AlarmID:     a.ID,
				Description: fmt.Sprintf("Alarm %s references missing note %s", a.ID, a.NoteID),
			})
		}

		if err := ValidateAlarmSpec(a); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidSpec,
				AlarmID:     a.ID,
				Description: fmt.Sprintf("Alarm %s is invalid: %v", a.ID, err),
			})
			continue
		}

		if a.Type == constants.AlarmRandom {
			for _, wd := range a.SortedWeekdays() {
				if _, ok := a.RandomTimes.TimeFor(wd); !ok {
					result.Issues = append(result.Issues, Issue{
						Type:        IssueMissingRandomTime,
						AlarmID:     a.ID,
						Description: fmt.Sprintf("Alarm %s has no time for %s and will skip that day", a.ID, wd),
					})
				}
			}
		}

		if !a.Enabled {
			continue
		}
		switch {
		case a.NextFireAt == nil:
			result.Issues = append(result.Issues, Issue{
				Type:        IssueNoNextFire,
				AlarmID:     a.ID,
				Description: fmt.Sprintf("Enabled alarm %s has no upcoming fire time", a.ID),
			})
		case a.IsElapsed(now):
			result.Issues = append(result.Issues, Issue{
				Type:        IssueElapsedNextFire,
				AlarmID:     a.ID,
				Description: fmt.Sprintf("Enabled alarm %s fire time %s has passed; run reconcile", a.ID, a.NextFireAt.Format(constants.DateFormat+" "+constants.TimeFormat)),
			})
		}
	}

	return result
}
