package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/reconcile"
	"github.com/julianstephens/alarmnote/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))

	// WarningStyle highlights non-fatal problems in command output
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

// Table renders rows under headers. Rows for which muted returns true are
// dimmed; muted may be nil.
func Table(headers []string, rows [][]string, muted func(row int) bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case muted != nil && muted(row):
				return mutedStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// FormatInstant formats t for display in the preferred timezone
func FormatInstant(t *time.Time, timezone string) string {
	if t == nil {
		return "-"
	}
	return utils.FormatInTimezone(*t, timezone)
}

// ParseAlarmType accepts the stored type names and the short forms
// once, repeating and random.
func ParseAlarmType(s string) (models.AlarmType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "once", "one-time", "one_time":
		return constants.AlarmOneTime, nil
	case "repeating", "weekly":
		return constants.AlarmRepeating, nil
	case "random":
		return constants.AlarmRandom, nil
	default:
		return "", fmt.Errorf("invalid alarm type: %s (must be once, repeating, or random)", s)
	}
}

// ParseAppState parses a lifecycle state name
func ParseAppState(s string) (constants.AppState, error) {
	switch st := constants.AppState(strings.ToLower(strings.TrimSpace(s))); st {
	case constants.StateActive, constants.StateInactive, constants.StateBackground:
		return st, nil
	default:
		return "", fmt.Errorf("invalid app state: %s (must be active, inactive, or background)", s)
	}
}

// FormatReport summarizes a reconciliation pass for the terminal
func FormatReport(r reconcile.Report) string {
	if r.Pass == reconcile.PassNone {
		return "No reconciliation needed for this transition."
	}

	var b strings.Builder
	mark := "✓"
	if r.Failed > 0 {
		mark = "❌"
	}
	fmt.Fprintf(&b, "%s %s pass: %d of %d alarms reconciled in %s\n",
		mark, r.Pass, r.Succeeded, r.Total, r.Duration.Round(time.Millisecond))
	if r.Disabled > 0 {
		fmt.Fprintf(&b, "  Disabled %d elapsed one-time alarm(s)\n", r.Disabled)
	}
	if r.Recomputed > 0 {
		fmt.Fprintf(&b, "  Recomputed %d fire time(s)\n", r.Recomputed)
	}
	if r.Orphaned > 0 {
		fmt.Fprintf(&b, "  Cleared notifications of %d disabled or deleted alarm(s)\n", r.Orphaned)
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "  Failed %s: %v\n", f.AlarmID, f.Err)
	}
	if r.OverBudget {
		b.WriteString(WarningStyle.Render("  Pass exceeded its time budget") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
