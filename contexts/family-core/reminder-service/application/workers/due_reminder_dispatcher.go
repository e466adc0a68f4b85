package workers

import (
	"context"
	"log/slog"
	"time"

	"kinkeep/contexts/family-core/reminder-service/domain/entities"
	"kinkeep/contexts/family-core/reminder-service/ports"
	"kinkeep/internal/shared/events"
	"kinkeep/internal/shared/tenantscope"
)

// TopicReminderDue is the bus topic dispatched reminders are published on.
const TopicReminderDue = "reminder.due"

// ReminderDuePayload is the envelope payload for a dispatched reminder.
type ReminderDuePayload struct {
	ReminderID string    `json:"reminder_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Tone       string    `json:"tone"`
	DueAt      time.Time `json:"due_at"`
}

// DueReminderDispatcher scans for due reminders, composes nag text and
// publishes reminder.due events. Composition is best effort: when the
// composer fails, the reminder's own message goes out instead.
type DueReminderDispatcher struct {
	Reminders ports.ReminderRepository
	Settings  ports.NagSettingsRepository
	Composer  ports.NagComposer
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	BatchSize int
	Interval  time.Duration
	Logger    *slog.Logger
}

func (w DueReminderDispatcher) RunOnce(ctx context.Context) error {
	now := w.now()
	limit := w.BatchSize
	if limit <= 0 {
		limit = 50
	}

	due, err := w.Reminders.ListDue(ctx, now, limit)
	if err != nil {
		w.logger().Error("due reminder scan failed",
			"event", "reminder_due_scan_failed",
			"module", "family-core/reminder-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, reminder := range due {
		nag := w.composeNag(ctx, reminder)

		eventID, err := w.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		envelope := events.Envelope{
			EventID:        eventID,
			EventType:      TopicReminderDue,
			SourceService:  "family-core/reminder-service",
			OccurredAtUTC:  now,
			TenantID:       reminder.TenantID,
			EntityType:     "reminder",
			EntityID:       reminder.ReminderID,
			PayloadVersion: 1,
			Payload: ReminderDuePayload{
				ReminderID: reminder.ReminderID,
				Title:      reminder.Title,
				Message:    nag.Message,
				Tone:       nag.Tone,
				DueAt:      reminder.DueAt,
			},
		}
		if err := w.Publisher.Publish(ctx, TopicReminderDue, envelope); err != nil {
			w.logger().Error("reminder publish failed",
				"event", "reminder_due_publish_failed",
				"module", "family-core/reminder-service",
				"layer", "worker",
				"reminder_id", reminder.ReminderID,
				"error", err.Error(),
			)
			return err
		}
		if err := w.Reminders.MarkDispatched(ctx, reminder.ReminderID, now); err != nil {
			return err
		}
	}
	return nil
}

// Run loops RunOnce until the context is cancelled.
func (w DueReminderDispatcher) Run(ctx context.Context) error {
	interval := w.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Errors are logged inside RunOnce; the loop keeps going.
			_ = w.RunOnce(ctx)
		}
	}
}

func (w DueReminderDispatcher) composeNag(ctx context.Context, reminder entities.Reminder) ports.Nag {
	fallback := ports.Nag{Message: reminder.Message, Tone: entities.ToneGentle}
	if fallback.Message == "" {
		fallback.Message = reminder.Title
	}
	if w.Composer == nil {
		return fallback
	}

	settings, err := w.Settings.GetNagSettings(ctx, tenantscope.ForSystem(reminder.TenantID), reminder.TenantID)
	if err != nil {
		return fallback
	}
	nag, err := w.Composer.Compose(ctx, ports.NagContext{
		ReminderTitle:   reminder.Title,
		ReminderMessage: reminder.Message,
		Tone:            settings.Tone,
		DueAt:           reminder.DueAt,
	})
	if err != nil {
		w.logger().Warn("nag composition failed, using reminder text",
			"event", "reminder_nag_compose_failed",
			"module", "family-core/reminder-service",
			"layer", "worker",
			"reminder_id", reminder.ReminderID,
			"error", err.Error(),
		)
		return fallback
	}
	return nag
}

func (w DueReminderDispatcher) now() time.Time {
	if w.Clock == nil {
		return time.Now().UTC()
	}
	return w.Clock.Now().UTC()
}

func (w DueReminderDispatcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
