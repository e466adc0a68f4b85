package httptransport

import "time"

type ReminderDTO struct {
	ReminderID   string     `json:"reminderId"`
	CreatedBy    string     `json:"createdBy"`
	Title        string     `json:"title"`
	Message      string     `json:"message,omitempty"`
	DueAt        time.Time  `json:"dueAt"`
	DispatchedAt *time.Time `json:"dispatchedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type CreateReminderRequest struct {
	Title   string    `json:"title"`
	Message string    `json:"message,omitempty"`
	DueAt   time.Time `json:"dueAt"`
}

type UpdateReminderRequest struct {
	Title   *string    `json:"title,omitempty"`
	Message *string    `json:"message,omitempty"`
	DueAt   *time.Time `json:"dueAt,omitempty"`
}

type ListRemindersResponse struct {
	Reminders []ReminderDTO `json:"reminders"`
}

type NagSettingsDTO struct {
	Tone     string `json:"tone"`
	DailyCap int    `json:"dailyCap"`
}

type UpdateNagSettingsRequest struct {
	Tone     *string `json:"tone,omitempty"`
	DailyCap *int    `json:"dailyCap,omitempty"`
}

type NagPreviewResponse struct {
	Message string `json:"message"`
	Tone    string `json:"tone"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
