package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"kinkeep/contexts/family-core/reminder-service/domain/entities"
	domainerrors "kinkeep/contexts/family-core/reminder-service/domain/errors"
	"kinkeep/contexts/family-core/reminder-service/ports"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"
)

// Service owns reminders and per-tenant nag behavior settings.
type Service struct {
	Reminders ports.ReminderRepository
	Settings  ports.NagSettingsRepository
	Composer  ports.NagComposer
	Guard     ports.AccessGuard
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// CreateReminderInput is the reminder creation payload.
type CreateReminderInput struct {
	Title   string
	Message string
	DueAt   time.Time
}

func (s Service) CreateReminder(ctx context.Context, caller authctx.Principal, input CreateReminderInput) (entities.Reminder, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.Reminder{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.Reminder{}, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || input.DueAt.IsZero() {
		return entities.Reminder{}, domainerrors.ErrInvalidReminder
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Reminder{}, err
	}
	now := s.now()
	reminder := entities.Reminder{
		ReminderID: id,
		TenantID:   tenantID,
		CreatedBy:  caller.PrincipalID,
		Title:      title,
		Message:    strings.TrimSpace(input.Message),
		DueAt:      input.DueAt.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Reminders.CreateReminder(ctx, reminder); err != nil {
		return entities.Reminder{}, err
	}
	return reminder, nil
}

func (s Service) GetReminder(ctx context.Context, caller authctx.Principal, reminderID string) (entities.Reminder, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return entities.Reminder{}, err
	}
	return s.Reminders.GetReminder(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(reminderID))
}

func (s Service) ListReminders(ctx context.Context, caller authctx.Principal) ([]entities.Reminder, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return nil, err
	}
	return s.Reminders.ListReminders(ctx, tenantscope.ForPrincipal(caller))
}

// UpdateReminderInput carries reminder mutations; nil pointers leave the
// current value untouched.
type UpdateReminderInput struct {
	Title   *string
	Message *string
	DueAt   *time.Time
}

func (s Service) UpdateReminder(ctx context.Context, caller authctx.Principal, reminderID string, input UpdateReminderInput) (entities.Reminder, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.Reminder{}, err
	}
	scope := tenantscope.ForPrincipal(caller)
	reminder, err := s.Reminders.GetReminder(ctx, scope, strings.TrimSpace(reminderID))
	if err != nil {
		return entities.Reminder{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return entities.Reminder{}, domainerrors.ErrInvalidReminder
		}
		reminder.Title = title
	}
	if input.Message != nil {
		reminder.Message = strings.TrimSpace(*input.Message)
	}
	if input.DueAt != nil {
		if input.DueAt.IsZero() {
			return entities.Reminder{}, domainerrors.ErrInvalidReminder
		}
		reminder.DueAt = input.DueAt.UTC()
		// Rescheduling revives an already-dispatched reminder.
		reminder.DispatchedAt = nil
	}
	reminder.UpdatedAt = s.now()
	if err := s.Reminders.UpdateReminder(ctx, scope, reminder); err != nil {
		return entities.Reminder{}, err
	}
	return reminder, nil
}

func (s Service) DeleteReminder(ctx context.Context, caller authctx.Principal, reminderID string) error {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return err
	}
	return s.Reminders.DeleteReminder(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(reminderID))
}

// GetNagSettings returns the tenant's nag tuning, defaults included.
// Reading is part of configuring, so it carries the same gate as writing.
func (s Service) GetNagSettings(ctx context.Context, caller authctx.Principal) (entities.NagSettings, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionAIConfigure); err != nil {
		return entities.NagSettings{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.NagSettings{}, err
	}
	return s.Settings.GetNagSettings(ctx, tenantscope.ForPrincipal(caller), tenantID)
}

// UpdateNagSettingsInput carries settings mutations; nil pointers leave
// the current value untouched.
type UpdateNagSettingsInput struct {
	Tone     *string
	DailyCap *int
}

func (s Service) UpdateNagSettings(ctx context.Context, caller authctx.Principal, input UpdateNagSettingsInput) (entities.NagSettings, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionAIConfigure); err != nil {
		return entities.NagSettings{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.NagSettings{}, err
	}
	settings, err := s.Settings.GetNagSettings(ctx, tenantscope.ForPrincipal(caller), tenantID)
	if err != nil {
		return entities.NagSettings{}, err
	}

	if input.Tone != nil {
		if !entities.ValidTone(*input.Tone) {
			return entities.NagSettings{}, domainerrors.ErrInvalidNagSettings
		}
		settings.Tone = *input.Tone
	}
	if input.DailyCap != nil {
		if *input.DailyCap < 1 {
			return entities.NagSettings{}, domainerrors.ErrInvalidNagSettings
		}
		settings.DailyCap = *input.DailyCap
	}
	settings.UpdatedAt = s.now()
	if err := s.Settings.SaveNagSettings(ctx, settings); err != nil {
		return entities.NagSettings{}, err
	}

	resolveLogger(s.Logger).Info("nag settings updated",
		"event", "reminder_nag_settings_updated",
		"module", "family-core/reminder-service",
		"layer", "application",
		"tenant_id", tenantID,
		"tone", settings.Tone,
		"daily_cap", settings.DailyCap,
	)
	return settings, nil
}

// PreviewNag composes nag text for a reminder without dispatching it.
// Gated like settings: previewing is part of tuning the composer.
func (s Service) PreviewNag(ctx context.Context, caller authctx.Principal, reminderID string) (ports.Nag, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionAIConfigure); err != nil {
		return ports.Nag{}, err
	}
	scope := tenantscope.ForPrincipal(caller)
	reminder, err := s.Reminders.GetReminder(ctx, scope, strings.TrimSpace(reminderID))
	if err != nil {
		return ports.Nag{}, err
	}
	settings, err := s.Settings.GetNagSettings(ctx, scope, reminder.TenantID)
	if err != nil {
		return ports.Nag{}, err
	}
	return s.Composer.Compose(ctx, ports.NagContext{
		ReminderTitle:   reminder.Title,
		ReminderMessage: reminder.Message,
		Tone:            settings.Tone,
		DueAt:           reminder.DueAt,
	})
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
