package system

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/alarmnote/internal/cli"
	"github.com/julianstephens/alarmnote/internal/config"
	"github.com/julianstephens/alarmnote/internal/logger"
)

// DaemonCmd delivers due notifications and reconciles alarms on the
// configured cron schedules until interrupted.
type DaemonCmd struct {
	DeliverSchedule   string `help:"Cron schedule for delivering due notifications. Defaults to the config file value."`
	ReconcileSchedule string `help:"Cron schedule for full reconciliation. Defaults to the config file value."`
}

// cronLogger routes cron's own messages to the application log
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}

func (c *DaemonCmd) Run(ctx *cli.Context) error {
	deliverSpec := firstNonEmpty(c.DeliverSchedule, ctx.Config.DeliverSchedule)
	reconcileSpec := firstNonEmpty(c.ReconcileSchedule, ctx.Config.ReconcileSchedule)

	deliverSchedule, err := config.ParseSchedule(deliverSpec)
	if err != nil {
		return fmt.Errorf("deliver schedule: %w", err)
	}
	reconcileSchedule, err := config.ParseSchedule(reconcileSpec)
	if err != nil {
		return fmt.Errorf("reconcile schedule: %w", err)
	}

	// Start from a consistent registry before waiting on the first tick
	reconcileJob(ctx)

	var log cronLogger
	scheduler := cron.New(
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	scheduler.Schedule(deliverSchedule, cron.FuncJob(func() { deliverJob(ctx) }))
	scheduler.Schedule(reconcileSchedule, cron.FuncJob(func() { reconcileJob(ctx) }))
	scheduler.Start()

	fmt.Printf("Daemon running (deliver: %s, reconcile: %s). Press Ctrl+C to stop.\n", deliverSpec, reconcileSpec)
	logger.Info("Daemon started", "deliver_schedule", deliverSpec, "reconcile_schedule", reconcileSpec)

	<-ctx.Context().Done()

	stopped := scheduler.Stop()
	<-stopped.Done()
	logger.Info("Daemon stopped")
	fmt.Println("Daemon stopped.")
	return nil
}

func deliverJob(ctx *cli.Context) {
	report, err := deliverDue(ctx, false)
	if err != nil {
		logger.Error("Delivery run failed", "error", err)
		return
	}
	if len(report.Deliveries) > 0 {
		logger.Info("Delivered notifications", "sent", report.Sent(), "failed", report.Failed())
	}
}

func reconcileJob(ctx *cli.Context) {
	if _, err := ctx.Controller().ForceReconcileAll(ctx.Context()); err != nil {
		logger.Error("Reconciliation run failed", "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
