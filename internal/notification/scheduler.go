package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/models"
)

// ErrSchedulerIO wraps failures of the notification scheduler boundary.
var ErrSchedulerIO = errors.New("notification scheduler I/O error")

//go:generate mockgen -source=scheduler.go -destination=scheduler_mock.go -package=notification

// Scheduler is the OS notification registry. Scheduling an existing id
// replaces it; cancelling an unknown id is a no-op.
type Scheduler interface {
	Schedule(ctx context.Context, req models.NotificationRequest) error
	Cancel(ctx context.Context, id string) error
	Pending(ctx context.Context) ([]models.NotificationRequest, error)
}

// RegistryStore is the persistence a Registry needs
type RegistryStore interface {
	SaveNotification(req models.NotificationRequest) error
	DeleteNotification(id string) error
	GetPendingNotifications() ([]models.NotificationRequest, error)
}

// Registry is a Scheduler backed by the scheduled_notifications table. The
// Dispatcher delivers what it holds.
type Registry struct {
	store RegistryStore
}

var _ Scheduler = (*Registry)(nil)

// NewRegistry creates a Registry on top of store
func NewRegistry(store RegistryStore) *Registry {
	return &Registry{store: store}
}

func (r *Registry) Schedule(ctx context.Context, req models.NotificationRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.SaveNotification(req); err != nil {
		return fmt.Errorf("%w: schedule %s: %v", ErrSchedulerIO, req.ID, err)
	}
	logger.Debug("Scheduled notification", "id", req.ID, "fire_at", req.FireAt, "repeat_weekly", req.RepeatWeekly)
	return nil
}

func (r *Registry) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.DeleteNotification(id); err != nil {
		return fmt.Errorf("%w: cancel %s: %v", ErrSchedulerIO, id, err)
	}
	return nil
}

func (r *Registry) Pending(ctx context.Context) ([]models.NotificationRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reqs, err := r.store.GetPendingNotifications()
	if err != nil {
		return nil, fmt.Errorf("%w: list pending: %v", ErrSchedulerIO, err)
	}
	return reqs, nil
}

// CancelAll cancels every id in CancellationIDs(alarmID). It attempts all of
// them and returns the joined errors.
func CancelAll(ctx context.Context, s Scheduler, alarmID string) error {
	var errs []error
	for _, id := range CancellationIDs(alarmID) {
		if err := s.Cancel(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Replace cancels every request of the alarm and schedules reqs in its place.
func Replace(ctx context.Context, s Scheduler, alarmID string, reqs []models.NotificationRequest) error {
	if err := CancelAll(ctx, s, alarmID); err != nil {
		return err
	}
	for _, req := range reqs {
		if err := s.Schedule(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
