package postgres

import (
	"time"

	"kinkeep/contexts/family-core/reminder-service/domain/entities"
)

type reminderModel struct {
	ReminderID   string    `gorm:"primaryKey;column:reminder_id"`
	TenantID     string    `gorm:"column:tenant_id;index:ix_reminders_tenant"`
	CreatedBy    string    `gorm:"column:created_by"`
	Title        string    `gorm:"column:title"`
	Message      string    `gorm:"column:message"`
	DueAt        time.Time `gorm:"column:due_at;index:ix_reminders_due_at"`
	DispatchedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (reminderModel) TableName() string { return "reminders" }

type nagSettingsModel struct {
	TenantID  string `gorm:"primaryKey;column:tenant_id"`
	Tone      string `gorm:"column:tone"`
	DailyCap  int    `gorm:"column:daily_cap"`
	UpdatedAt time.Time
}

func (nagSettingsModel) TableName() string { return "nag_settings" }

// Models lists the tables this adapter migrates.
func Models() []any {
	return []any{&reminderModel{}, &nagSettingsModel{}}
}

func reminderFromModel(m reminderModel) entities.Reminder {
	return entities.Reminder{
		ReminderID:   m.ReminderID,
		TenantID:     m.TenantID,
		CreatedBy:    m.CreatedBy,
		Title:        m.Title,
		Message:      m.Message,
		DueAt:        m.DueAt,
		DispatchedAt: m.DispatchedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func reminderToModel(reminder entities.Reminder) reminderModel {
	return reminderModel{
		ReminderID:   reminder.ReminderID,
		TenantID:     reminder.TenantID,
		CreatedBy:    reminder.CreatedBy,
		Title:        reminder.Title,
		Message:      reminder.Message,
		DueAt:        reminder.DueAt,
		DispatchedAt: reminder.DispatchedAt,
		CreatedAt:    reminder.CreatedAt,
		UpdatedAt:    reminder.UpdatedAt,
	}
}
