package httpadapter

import (
	"context"
	"log/slog"

	"kinkeep/contexts/family-core/reminder-service/application"
	"kinkeep/contexts/family-core/reminder-service/domain/entities"
	httptransport "kinkeep/contexts/family-core/reminder-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

// Handler maps HTTP DTOs to reminder application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateReminderHandler(ctx context.Context, caller authctx.Principal, request httptransport.CreateReminderRequest) (httptransport.ReminderDTO, error) {
	reminder, err := h.Service.CreateReminder(ctx, caller, application.CreateReminderInput{
		Title:   request.Title,
		Message: request.Message,
		DueAt:   request.DueAt,
	})
	if err != nil {
		return httptransport.ReminderDTO{}, err
	}
	return reminderDTO(reminder), nil
}

func (h Handler) GetReminderHandler(ctx context.Context, caller authctx.Principal, reminderID string) (httptransport.ReminderDTO, error) {
	reminder, err := h.Service.GetReminder(ctx, caller, reminderID)
	if err != nil {
		return httptransport.ReminderDTO{}, err
	}
	return reminderDTO(reminder), nil
}

func (h Handler) ListRemindersHandler(ctx context.Context, caller authctx.Principal) (httptransport.ListRemindersResponse, error) {
	reminders, err := h.Service.ListReminders(ctx, caller)
	if err != nil {
		return httptransport.ListRemindersResponse{}, err
	}
	response := httptransport.ListRemindersResponse{Reminders: make([]httptransport.ReminderDTO, 0, len(reminders))}
	for _, reminder := range reminders {
		response.Reminders = append(response.Reminders, reminderDTO(reminder))
	}
	return response, nil
}

func (h Handler) UpdateReminderHandler(ctx context.Context, caller authctx.Principal, reminderID string, request httptransport.UpdateReminderRequest) (httptransport.ReminderDTO, error) {
	reminder, err := h.Service.UpdateReminder(ctx, caller, reminderID, application.UpdateReminderInput{
		Title:   request.Title,
		Message: request.Message,
		DueAt:   request.DueAt,
	})
	if err != nil {
		return httptransport.ReminderDTO{}, err
	}
	return reminderDTO(reminder), nil
}

func (h Handler) DeleteReminderHandler(ctx context.Context, caller authctx.Principal, reminderID string) error {
	return h.Service.DeleteReminder(ctx, caller, reminderID)
}

func (h Handler) GetNagSettingsHandler(ctx context.Context, caller authctx.Principal) (httptransport.NagSettingsDTO, error) {
	settings, err := h.Service.GetNagSettings(ctx, caller)
	if err != nil {
		return httptransport.NagSettingsDTO{}, err
	}
	return nagSettingsDTO(settings), nil
}

func (h Handler) UpdateNagSettingsHandler(ctx context.Context, caller authctx.Principal, request httptransport.UpdateNagSettingsRequest) (httptransport.NagSettingsDTO, error) {
	settings, err := h.Service.UpdateNagSettings(ctx, caller, application.UpdateNagSettingsInput{
		Tone:     request.Tone,
		DailyCap: request.DailyCap,
	})
	if err != nil {
		return httptransport.NagSettingsDTO{}, err
	}
	return nagSettingsDTO(settings), nil
}

func (h Handler) PreviewNagHandler(ctx context.Context, caller authctx.Principal, reminderID string) (httptransport.NagPreviewResponse, error) {
	nag, err := h.Service.PreviewNag(ctx, caller, reminderID)
	if err != nil {
		return httptransport.NagPreviewResponse{}, err
	}
	return httptransport.NagPreviewResponse{Message: nag.Message, Tone: nag.Tone}, nil
}

func reminderDTO(reminder entities.Reminder) httptransport.ReminderDTO {
	return httptransport.ReminderDTO{
		ReminderID:   reminder.ReminderID,
		CreatedBy:    reminder.CreatedBy,
		Title:        reminder.Title,
		Message:      reminder.Message,
		DueAt:        reminder.DueAt,
		DispatchedAt: reminder.DispatchedAt,
		CreatedAt:    reminder.CreatedAt,
		UpdatedAt:    reminder.UpdatedAt,
	}
}

func nagSettingsDTO(settings entities.NagSettings) httptransport.NagSettingsDTO {
	return httptransport.NagSettingsDTO{Tone: settings.Tone, DailyCap: settings.DailyCap}
}
