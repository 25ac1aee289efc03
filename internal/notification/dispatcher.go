package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/utils"
)

// Sender shows a notification to the user.
type Sender interface {
	Send(ctx context.Context, title, body string) error
}

// DispatchStore is the persistence a Dispatcher needs
type DispatchStore interface {
	GetPreferences() (models.Preferences, error)
	GetDueNotifications(now time.Time) ([]models.NotificationRequest, error)
	SaveNotification(models.NotificationRequest) error
	DeleteNotification(id string) error
}

// Delivery records what happened to one due request.
type Delivery struct {
	Request models.NotificationRequest
	Err     error
	// Rearmed is the next fire time of a weekly request; nil for one-shots.
	Rearmed *time.Time
}

// DeliveryReport summarizes a DeliverDue pass.
type DeliveryReport struct {
	Disabled   bool
	DryRun     bool
	Deliveries []Delivery
}

// Sent returns the number of requests delivered without error
func (r DeliveryReport) Sent() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of requests whose delivery failed
func (r DeliveryReport) Failed() int {
	return len(r.Deliveries) - r.Sent()
}

// Dispatcher hands due registry entries to a Sender.
type Dispatcher struct {
	store  DispatchStore
	sender Sender
	dryRun bool
}

// NewDispatcher creates a Dispatcher. In dry-run mode nothing is sent and the
// registry is left untouched.
func NewDispatcher(store DispatchStore, sender Sender, dryRun bool) *Dispatcher {
	return &Dispatcher{store: store, sender: sender, dryRun: dryRun}
}

// DeliverDue sends every request whose fire time is at or before now. One-shot
// requests are removed after delivery. Weekly requests are moved forward by
// whole weeks until they lie strictly after now, so a missed week is delivered
// once rather than once per missed occurrence. A failed send leaves the request
// in place for the next pass.
func (d *Dispatcher) DeliverDue(ctx context.Context, now time.Time) (DeliveryReport, error) {
	report := DeliveryReport{DryRun: d.dryRun}

	prefs, err := d.store.GetPreferences()
	if err != nil {
		return report, fmt.Errorf("failed to get preferences: %w", err)
	}
	if !prefs.NotificationsEnabled {
		report.Disabled = true
		return report, nil
	}

	due, err := d.store.GetDueNotifications(now)
	if err != nil {
		return report, fmt.Errorf("%w: list due: %v", ErrSchedulerIO, err)
	}

	for _, req := range due {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		delivery := Delivery{Request: req}
		if req.RepeatWeekly {
			next := NextWeeklyFire(req.FireAt, now)
			delivery.Rearmed = &next
		}

		if d.dryRun {
			report.Deliveries = append(report.Deliveries, delivery)
			continue
		}

		if err := d.sender.Send(ctx, req.Title, req.Body); err != nil {
			logger.Warn("Failed to deliver notification", "id", req.ID, "error", err)
			delivery.Err = err
			report.Deliveries = append(report.Deliveries, delivery)
			continue
		}

		if err := d.settle(req, delivery.Rearmed); err != nil {
			delivery.Err = err
		}
		report.Deliveries = append(report.Deliveries, delivery)
	}

	logger.Debug("Delivery pass finished", "due", len(due), "sent", report.Sent(), "dry_run", d.dryRun)
	return report, nil
}

func (d *Dispatcher) settle(req models.NotificationRequest, rearmed *time.Time) error {
	if rearmed == nil {
		if err := d.store.DeleteNotification(req.ID); err != nil {
			return fmt.Errorf("%w: remove %s: %v", ErrSchedulerIO, req.ID, err)
		}
		return nil
	}
	req.FireAt = *rearmed
	if err := d.store.SaveNotification(req); err != nil {
		return fmt.Errorf("%w: rearm %s: %v", ErrSchedulerIO, req.ID, err)
	}
	return nil
}

// NextWeeklyFire advances fireAt by whole calendar weeks until it is strictly
// after now. The wall-clock time is kept across DST changes.
func NextWeeklyFire(fireAt, now time.Time) time.Time {
	next := fireAt
	for !next.After(now) {
		next = utils.AddDays(next, 7)
	}
	return next
}
