// Package alarms orchestrates alarm edits: validation, fire-time calculation,
// persistence and notification registration.
package alarms

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/alarmnote/internal/constants"
	"github.com/julianstephens/alarmnote/internal/logger"
	"github.com/julianstephens/alarmnote/internal/models"
	"github.com/julianstephens/alarmnote/internal/notification"
	"github.com/julianstephens/alarmnote/internal/scheduler"
	"github.com/julianstephens/alarmnote/internal/validation"
)

// Store is the persistence the service needs
type Store interface {
	GetPreferences() (models.Preferences, error)
	GetNote(id string) (models.Note, error)
	DeleteNote(id string) error
	AddAlarm(alarm models.Alarm) error
	GetAlarm(id string) (models.Alarm, error)
	GetAlarmsForNote(noteID string) ([]models.Alarm, error)
	UpdateAlarm(alarm models.Alarm) error
	DeleteAlarm(id string) error
}

// CreateInput describes a new alarm
type CreateInput struct {
	NoteID      string
	Type        models.AlarmType
	TimeOfDay   string
	Date        string
	Weekdays    []time.Weekday
	RandomTimes models.RandomTimes
}

// UpdateInput holds the fields to change; nil fields are left as they are.
type UpdateInput struct {
	ID          string
	Type        *models.AlarmType
	TimeOfDay   *string
	Date        *string
	Weekdays    []time.Weekday
	RandomTimes models.RandomTimes
	Enabled     *bool
}

func (in UpdateInput) structural() bool {
	return in.Type != nil || in.TimeOfDay != nil || in.Date != nil || in.Weekdays != nil || in.RandomTimes != nil
}

// Service applies alarm edits and keeps the registry in step with them.
type Service struct {
	store        Store
	scheduler    notification.Scheduler
	calc         *scheduler.Calculator
	materializer *notification.Materializer
	random       *scheduler.RandomTimeGenerator
	clock        func() time.Time
}

// NewService creates a Service. A nil random generator uses the runtime source.
func NewService(store Store, sched notification.Scheduler, materializer *notification.Materializer, random *scheduler.RandomTimeGenerator, clock func() time.Time) *Service {
	if materializer == nil {
		materializer = notification.NewMaterializer("")
	}
	if random == nil {
		random = scheduler.NewRandomTimeGenerator(nil)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		store:        store,
		scheduler:    sched,
		calc:         scheduler.New(),
		materializer: materializer,
		random:       random,
		clock:        clock,
	}
}

// Create validates, schedules and stores a new enabled alarm. Random alarms
// get a generated time for every weekday without one.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.Alarm, error) {
	note, err := s.store.GetNote(in.NoteID)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("failed to get note %s: %w", in.NoteID, err)
	}

	now := s.clock()
	alarm := models.Alarm{
		ID:          uuid.New().String(),
		NoteID:      in.NoteID,
		Type:        in.Type,
		TimeOfDay:   in.TimeOfDay,
		Date:        in.Date,
		Weekdays:    slices.Clone(in.Weekdays),
		RandomTimes: in.RandomTimes.Clone(),
		Enabled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	clearVariantFields(&alarm)
	if err := s.prepare(&alarm, now); err != nil {
		return models.Alarm{}, err
	}

	if err := s.store.AddAlarm(alarm); err != nil {
		return models.Alarm{}, fmt.Errorf("failed to save alarm: %w", err)
	}
	logger.Info("Created alarm", "alarm_id", alarm.ID, "type", alarm.Type, "next_fire_at", alarm.NextFireAt)

	s.register(ctx, alarm, note.Title, now)
	return alarm, nil
}

// Update applies in to the stored alarm. Structural edits recompute the next
// fire time. Disabling cancels registered notifications and keeps the fire
// time; enabling recomputes it when it has already passed.
func (s *Service) Update(ctx context.Context, in UpdateInput) (models.Alarm, error) {
	alarm, err := s.store.GetAlarm(in.ID)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("failed to get alarm %s: %w", in.ID, err)
	}
	if !in.structural() && in.Enabled == nil {
		return alarm, nil
	}

	now := s.clock()
	if in.Type != nil {
		alarm.Type = *in.Type
	}
	if in.TimeOfDay != nil {
		alarm.TimeOfDay = *in.TimeOfDay
	}
	if in.Date != nil {
		alarm.Date = *in.Date
	}
	if in.Weekdays != nil {
		alarm.Weekdays = slices.Clone(in.Weekdays)
	}
	if in.RandomTimes != nil {
		alarm.RandomTimes = in.RandomTimes.Clone()
	}
	if in.Enabled != nil {
		alarm.Enabled = *in.Enabled
	}
	clearVariantFields(&alarm)

	if in.structural() || (alarm.Enabled && (alarm.NextFireAt == nil || !alarm.NextFireAt.After(now))) {
		if err := s.prepare(&alarm, now); err != nil {
			return models.Alarm{}, err
		}
	}
	alarm.UpdatedAt = now

	if err := s.store.UpdateAlarm(alarm); err != nil {
		return models.Alarm{}, fmt.Errorf("failed to update alarm: %w", err)
	}
	logger.Info("Updated alarm", "alarm_id", alarm.ID, "enabled", alarm.Enabled, "next_fire_at", alarm.NextFireAt)

	if !alarm.Enabled {
		if err := notification.CancelAll(ctx, s.scheduler, alarm.ID); err != nil {
			logger.Warn("Failed to cancel notifications", "alarm_id", alarm.ID, "error", err)
		}
		return alarm, nil
	}
	s.register(ctx, alarm, s.noteTitle(alarm.NoteID), now)
	return alarm, nil
}

// SetEnabled toggles an alarm on or off
func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (models.Alarm, error) {
	return s.Update(ctx, UpdateInput{ID: id, Enabled: &enabled})
}

// Delete removes an alarm and its registered notifications
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetAlarm(id); err != nil {
		return fmt.Errorf("failed to get alarm %s: %w", id, err)
	}
	if err := s.store.DeleteAlarm(id); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}
	if err := notification.CancelAll(ctx, s.scheduler, id); err != nil {
		logger.Warn("Failed to cancel notifications", "alarm_id", id, "error", err)
	}
	return nil
}

// DeleteNote removes a note, its alarms and their notifications
func (s *Service) DeleteNote(ctx context.Context, noteID string) error {
	alarms, err := s.store.GetAlarmsForNote(noteID)
	if err != nil {
		return fmt.Errorf("failed to list alarms for note %s: %w", noteID, err)
	}
	if err := s.store.DeleteNote(noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	for _, a := range alarms {
		if err := notification.CancelAll(ctx, s.scheduler, a.ID); err != nil {
			logger.Warn("Failed to cancel notifications", "alarm_id", a.ID, "error", err)
		}
	}
	return nil
}

// RefreshNote re-registers the enabled alarms of a note, so notification
// titles follow a renamed note. Fire times are left as stored.
func (s *Service) RefreshNote(ctx context.Context, noteID string) error {
	note, err := s.store.GetNote(noteID)
	if err != nil {
		return fmt.Errorf("failed to get note %s: %w", noteID, err)
	}
	alarms, err := s.store.GetAlarmsForNote(noteID)
	if err != nil {
		return fmt.Errorf("failed to list alarms for note %s: %w", noteID, err)
	}
	now := s.clock()
	for _, a := range alarms {
		if a.Enabled {
			s.register(ctx, a, note.Title, now)
		}
	}
	return nil
}

// Snooze stores a one-time alarm firing minutes from now on the same note.
// Non-positive minutes use the snooze preference.
func (s *Service) Snooze(ctx context.Context, id string, minutes int) (models.Alarm, error) {
	original, err := s.store.GetAlarm(id)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("failed to get alarm %s: %w", id, err)
	}
	if minutes <= 0 {
		prefs, err := s.store.GetPreferences()
		if err != nil {
			return models.Alarm{}, fmt.Errorf("failed to get preferences: %w", err)
		}
		minutes = prefs.SnoozeMinutesDefault
		if minutes <= 0 {
			minutes = constants.DefaultSnoozeMinutes
		}
	}

	now := s.clock()
	snoozed := scheduler.Snooze(original, minutes, now)
	if err := s.store.AddAlarm(snoozed); err != nil {
		return models.Alarm{}, fmt.Errorf("failed to save snooze alarm: %w", err)
	}
	s.register(ctx, snoozed, s.noteTitle(snoozed.NoteID), now)
	return snoozed, nil
}

// Next returns the next fire time the calculator would store for the alarm
// at the current instant.
func (s *Service) Next(id string) (time.Time, bool, error) {
	alarm, err := s.store.GetAlarm(id)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get alarm %s: %w", id, err)
	}
	return s.calc.NextFireAt(alarm, s.clock())
}

// prepare fills generated fields, validates and computes the next fire time.
func (s *Service) prepare(alarm *models.Alarm, now time.Time) error {
	if alarm.Type == constants.AlarmRandom {
		alarm.RandomTimes = s.random.Fill(alarm.Weekdays, alarm.RandomTimes)
		alarm.TimeOfDay = validation.RepresentativeTime(*alarm)
	}
	if err := validation.ValidateAlarmSpec(*alarm); err != nil {
		return err
	}

	next, ok, err := s.calc.NextFireAt(*alarm, now)
	if err != nil {
		return fmt.Errorf("failed to compute next fire time: %w", err)
	}
	alarm.NextFireAt = nil
	if ok {
		alarm.NextFireAt = &next
	}
	return nil
}

// register replaces the alarm's notifications. Failures are logged; the next
// reconciliation pass repairs the registry.
func (s *Service) register(ctx context.Context, alarm models.Alarm, title string, now time.Time) {
	reqs := s.materializer.Materialize(alarm, title, now)
	if err := notification.Replace(ctx, s.scheduler, alarm.ID, reqs); err != nil {
		logger.Warn("Failed to register notifications", "alarm_id", alarm.ID, "error", err)
	}
}

func (s *Service) noteTitle(noteID string) string {
	note, err := s.store.GetNote(noteID)
	if err != nil {
		return ""
	}
	return note.Title
}

// clearVariantFields drops fields that do not belong to the alarm's type.
func clearVariantFields(a *models.Alarm) {
	switch a.Type {
	case constants.AlarmOneTime:
		a.Weekdays = nil
		a.RandomTimes = nil
	case constants.AlarmRepeating:
		a.Date = ""
		a.RandomTimes = nil
	case constants.AlarmRandom:
		a.Date = ""
	}
}
