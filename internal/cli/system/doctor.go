package system

import (
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/notification"
	"github.com/julianstephens/alarmnote/internal/notifier"
	"github.com/julianstephens/alarmnote/internal/storage/sqlite"
	"github.com/julianstephens/alarmnote/internal/utils"
	"github.com/julianstephens/alarmnote/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	// warnOnly checks print a warning instead of failing the run
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Preferences", needsDB: true, run: checkPreferences},
	{name: "Alarm validation", needsDB: true, run: checkAlarms},
	{name: "Notification registry", needsDB: true, warnOnly: true, run: checkRegistry},
	{name: "Tray notifier", warnOnly: true, run: func(*cli.Context) error { return notifier.CheckTray() }},
	{name: "Clock/timezone", run: func(ctx *cli.Context) error { return checkClockTimezone(ctx.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, err := ctx.Store.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, err := ctx.Store.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", st.Current, st.Latest)
	}
	return nil
}

func checkPreferences(ctx *cli.Context) error {
	prefs, err := ctx.Store.GetPreferences()
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}
	if prefs.SnoozeMinutesDefault <= 0 {
		return fmt.Errorf("snooze minutes must be positive, got %d", prefs.SnoozeMinutesDefault)
	}
	if !utils.ValidateTimezone(prefs.Timezone) {
		return fmt.Errorf("unknown timezone %q", prefs.Timezone)
	}
	return nil
}

func checkAlarms(ctx *cli.Context) error {
	alarms, err := ctx.Store.GetAllAlarms()
	if err != nil {
		return fmt.Errorf("failed to get alarms: %w", err)
	}
	notes, err := ctx.Store.GetAllNotes()
	if err != nil {
		return fmt.Errorf("failed to get notes: %w", err)
	}
	noteIDs := make(map[string]bool, len(notes))
	for _, n := range notes {
		noteIDs[n.ID] = true
	}

	result := validation.New().AuditAlarms(alarms, noteIDs, ctx.Now())
	if result.HasIssues() {
		return fmt.Errorf("%d issue(s) found\n%s", len(result.Issues), result.FormatReport())
	}
	return nil
}

// checkRegistry looks for registered notifications that no enabled alarm
// would produce. Reconciliation repairs these.
func checkRegistry(ctx *cli.Context) error {
	reqs, err := ctx.Store.GetPendingNotifications()
	if err != nil {
		return fmt.Errorf("failed to get notifications: %w", err)
	}
	alarms, err := ctx.Store.GetEnabledAlarms()
	if err != nil {
		return fmt.Errorf("failed to get alarms: %w", err)
	}
	enabled := make(map[string]bool, len(alarms))
	for _, a := range alarms {
		enabled[a.ID] = true
	}

	stale := 0
	for _, req := range reqs {
		if !enabled[req.AlarmID] || !slices.Contains(notification.CancellationIDs(req.AlarmID), req.ID) {
			stale++
		}
	}
	if stale > 0 {
		return fmt.Errorf("%d stale notification(s) registered - run '%s reconcile'", stale, constants.AppName)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
