// Package reconcile keeps the notification registry in line with the stored
// alarms when the host application changes lifecycle state.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/notification"
	"github.com/julianstephens/alarmnote/internal/scheduler"
)

// Pass names the kind of reconciliation that produced a Report.
type Pass string

const (
	PassNone       Pass = ""
	PassBackground Pass = "background"
	PassForeground Pass = "foreground"
	PassForce      Pass = "force"
)

// Failure records an alarm the pass could not reconcile.
type Failure struct {
	AlarmID string
	Err     error
}

// Report summarizes one reconciliation pass. Total counts the enabled alarms
// examined; Succeeded and Failed count the alarms the pass acted on.
// Recomputed counts stored fire times the pass rewrote. It never includes
// Random alarms: RecomputeAfterFire leaves their fire time alone and only
// their notifications are rebuilt. Orphaned counts disabled or deleted alarms
// whose leftover notifications a rebuild cancelled.
type Report struct {
	Pass       Pass
	Total      int
	Succeeded  int
	Failed     int
	Disabled   int
	Recomputed int
	Orphaned   int
	Duration   time.Duration
	OverBudget bool
	Failures   []Failure
}

func (r *Report) fail(alarmID string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{AlarmID: alarmID, Err: err})
	logger.Warn("Failed to reconcile alarm", "alarm_id", alarmID, "error", err)
}

// Controller runs reconciliation passes. Passes are serialized: a pass that
// starts while another is running waits for it to finish.
type Controller struct {
	store        AlarmStore
	scheduler    notification.Scheduler
	calc         *scheduler.Calculator
	materializer *notification.Materializer
	clock        func() time.Time
	budget       time.Duration

	mu sync.Mutex
}

// Option configures a Controller
type Option func(*Controller)

// WithClock sets the source of the current time
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithBudget sets the soft time limit of a pass. Non-positive values keep the default.
func WithBudget(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.budget = d
		}
	}
}

// WithMaterializer replaces the default materializer
func WithMaterializer(m *notification.Materializer) Option {
	return func(c *Controller) { c.materializer = m }
}

// WithCalculator replaces the default calculator
func WithCalculator(calc *scheduler.Calculator) Option {
	return func(c *Controller) { c.calc = calc }
}

// New creates a Controller over store and sched
func New(store AlarmStore, sched notification.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		store:        store,
		scheduler:    sched,
		calc:         scheduler.New(),
		materializer: notification.NewMaterializer(""),
		clock:        time.Now,
		budget:       constants.DefaultBackgroundBudget,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleTransition runs the pass that belongs to the prev -> next transition.
// Transitions without a pass return an empty Report with Pass set to PassNone.
func (c *Controller) HandleTransition(ctx context.Context, prev, next constants.AppState) (Report, error) {
	logger.Debug("App state transition", "from", prev, "to", next)

	switch {
	case prev == constants.StateActive && next == constants.StateBackground:
		return c.OnEnterBackground(ctx)
	case (prev == constants.StateBackground || prev == constants.StateInactive) && next == constants.StateActive:
		return c.OnEnterForeground(ctx)
	default:
		return Report{}, nil
	}
}

// OnEnterBackground rebuilds the notifications of every enabled alarm.
func (c *Controller) OnEnterBackground(ctx context.Context) (Report, error) {
	return c.rebuildAll(ctx, PassBackground)
}

// ForceReconcileAll runs the background rebuild on demand.
func (c *Controller) ForceReconcileAll(ctx context.Context) (Report, error) {
	return c.rebuildAll(ctx, PassForce)
}

func (c *Controller) rebuildAll(ctx context.Context, pass Pass) (Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.clock()
	report := Report{Pass: pass}

	alarms, err := c.store.GetEnabledAlarms()
	if err != nil {
		return report, fmt.Errorf("failed to list enabled alarms: %w", err)
	}
	report.Total = len(alarms)
	logger.Info("Starting reconciliation", "pass", pass, "alarms", len(alarms))

	c.cancelOrphans(ctx, alarms, &report)

	for _, alarm := range alarms {
		if err := c.rebuild(ctx, alarm, start, false, &report); err != nil {
			report.fail(alarm.ID, err)
			continue
		}
		report.Succeeded++
	}

	c.finish(&report, start)
	return report, nil
}

// OnEnterForeground applies fire-completion to alarms whose next fire time has
// passed. Elapsed one-time alarms are disabled and cancelled. Elapsed weekly
// alarms stay enabled and are rebuilt. Other alarms are left alone.
func (c *Controller) OnEnterForeground(ctx context.Context) (Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.clock()
	report := Report{Pass: PassForeground}

	alarms, err := c.store.GetEnabledAlarms()
	if err != nil {
		return report, fmt.Errorf("failed to list enabled alarms: %w", err)
	}
	report.Total = len(alarms)

	var weekly []models.Alarm
	for _, alarm := range alarms {
		if !alarm.IsElapsed(start) {
			continue
		}
		switch alarm.Type {
		case constants.AlarmOneTime:
			if err := c.complete(ctx, alarm, start); err != nil {
				report.fail(alarm.ID, err)
				continue
			}
			report.Disabled++
			report.Succeeded++
		case constants.AlarmRepeating, constants.AlarmRandom:
			weekly = append(weekly, alarm)
		}
	}

	if len(weekly) > 0 {
		logger.Info("Rebuilding elapsed weekly alarms", "count", len(weekly))
	}
	for _, alarm := range weekly {
		if err := c.rebuild(ctx, alarm, start, true, &report); err != nil {
			report.fail(alarm.ID, err)
			continue
		}
		report.Succeeded++
	}

	c.finish(&report, start)
	return report, nil
}

// cancelOrphans cancels registered notifications whose alarm is no longer
// enabled. A cancel that failed when the alarm was disabled or deleted is
// retried here.
func (c *Controller) cancelOrphans(ctx context.Context, enabled []models.Alarm, report *Report) {
	pending, err := c.scheduler.Pending(ctx)
	if err != nil {
		logger.Warn("Failed to list registered notifications", "error", err)
		return
	}

	keep := make(map[string]bool, len(enabled))
	for _, a := range enabled {
		keep[a.ID] = true
	}
	orphans := make(map[string][]string)
	var order []string
	for _, req := range pending {
		if keep[req.AlarmID] {
			continue
		}
		if _, seen := orphans[req.AlarmID]; !seen {
			order = append(order, req.AlarmID)
		}
		orphans[req.AlarmID] = append(orphans[req.AlarmID], req.ID)
	}

	for _, alarmID := range order {
		if err := c.cancelOrphan(ctx, alarmID, orphans[alarmID]); err != nil {
			report.fail(alarmID, fmt.Errorf("cancel orphaned notifications: %w", err))
			continue
		}
		report.Orphaned++
		logger.Info("Cancelled orphaned notifications", "alarm_id", alarmID, "count", len(orphans[alarmID]))
	}
}

// cancelOrphan cancels every id the alarm could have registered, then any
// registered id outside that set.
func (c *Controller) cancelOrphan(ctx context.Context, alarmID string, registered []string) error {
	if err := notification.CancelAll(ctx, c.scheduler, alarmID); err != nil {
		return err
	}
	known := notification.CancellationIDs(alarmID)
	for _, id := range registered {
		if slices.Contains(known, id) {
			continue
		}
		if err := c.scheduler.Cancel(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// complete disables a fired one-time alarm and removes its notifications.
func (c *Controller) complete(ctx context.Context, alarm models.Alarm, now time.Time) error {
	alarm.Enabled = false
	alarm.UpdatedAt = now
	if err := c.store.UpdateAlarm(alarm); err != nil {
		return fmt.Errorf("disable: %w", err)
	}
	logger.Info("Disabled elapsed one-time alarm", "alarm_id", alarm.ID)
	return notification.CancelAll(ctx, c.scheduler, alarm.ID)
}

// rebuild refreshes the alarm's next fire time when needed, then replaces its
// registered notifications. With elapsed set the fire time is recomputed
// regardless of its current value.
func (c *Controller) rebuild(ctx context.Context, alarm models.Alarm, now time.Time, elapsed bool, report *Report) error {
	if elapsed || c.stale(alarm, now) {
		next, ok, err := c.calc.RecomputeAfterFire(alarm, now)
		if err != nil {
			return fmt.Errorf("recompute: %w", err)
		}
		if ok {
			alarm.NextFireAt = &next
			alarm.UpdatedAt = now
			if err := c.store.UpdateAlarm(alarm); err != nil {
				return fmt.Errorf("persist next fire time: %w", err)
			}
			report.Recomputed++
		}
	}

	reqs := c.materializer.Materialize(alarm, c.noteTitle(alarm), now)
	return notification.Replace(ctx, c.scheduler, alarm.ID, reqs)
}

func (c *Controller) stale(alarm models.Alarm, now time.Time) bool {
	return alarm.Type == constants.AlarmRepeating && (alarm.NextFireAt == nil || !alarm.NextFireAt.After(now))
}

func (c *Controller) noteTitle(alarm models.Alarm) string {
	note, err := c.store.GetNote(alarm.NoteID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			logger.Warn("Failed to load note title", "note_id", alarm.NoteID, "error", err)
		}
		return ""
	}
	return note.Title
}

func (c *Controller) finish(report *Report, start time.Time) {
	report.Duration = c.clock().Sub(start)
	if report.Duration > c.budget {
		report.OverBudget = true
		logger.Warn("Reconciliation exceeded time budget", "pass", report.Pass, "duration", report.Duration, "budget", c.budget)
	}
	logger.Info("Reconciliation finished",
		"pass", report.Pass,
		"total", report.Total,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"disabled", report.Disabled,
		"recomputed", report.Recomputed,
		"orphaned", report.Orphaned,
		"duration", report.Duration,
	)
}
