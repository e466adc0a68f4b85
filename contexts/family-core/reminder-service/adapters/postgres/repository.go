package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"kinkeep/contexts/family-core/reminder-service/domain/entities"
	domainerrors "kinkeep/contexts/family-core/reminder-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Repository implements the reminder and nag settings repositories on
// gorm/postgres.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return Repository{DB: db}
}

func (r Repository) GetReminder(ctx context.Context, scope tenantscope.Scope, reminderID string) (entities.Reminder, error) {
	var m reminderModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("reminder_id = ?", reminderID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Reminder{}, domainerrors.ErrReminderNotFound
		}
		return entities.Reminder{}, err
	}
	return reminderFromModel(m), nil
}

func (r Repository) ListReminders(ctx context.Context, scope tenantscope.Scope) ([]entities.Reminder, error) {
	var models []reminderModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Order("due_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Reminder, 0, len(models))
	for _, m := range models {
		items = append(items, reminderFromModel(m))
	}
	return items, nil
}

func (r Repository) CreateReminder(ctx context.Context, reminder entities.Reminder) error {
	m := reminderToModel(reminder)
	return r.DB.WithContext(ctx).Create(&m).Error
}

func (r Repository) UpdateReminder(ctx context.Context, scope tenantscope.Scope, reminder entities.Reminder) error {
	m := reminderToModel(reminder)
	result := scope.Apply(r.DB.WithContext(ctx).Model(&reminderModel{})).
		Where("reminder_id = ?", reminder.ReminderID).
		Select("*").
		Updates(&m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReminderNotFound
	}
	return nil
}

func (r Repository) DeleteReminder(ctx context.Context, scope tenantscope.Scope, reminderID string) error {
	result := scope.Apply(r.DB.WithContext(ctx)).
		Where("reminder_id = ?", reminderID).
		Delete(&reminderModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReminderNotFound
	}
	return nil
}

func (r Repository) ListDue(ctx context.Context, now time.Time, limit int) ([]entities.Reminder, error) {
	var models []reminderModel
	err := r.DB.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Where("due_at <= ?", now).
		Order("due_at asc").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Reminder, 0, len(models))
	for _, m := range models {
		items = append(items, reminderFromModel(m))
	}
	return items, nil
}

func (r Repository) MarkDispatched(ctx context.Context, reminderID string, at time.Time) error {
	result := r.DB.WithContext(ctx).
		Model(&reminderModel{}).
		Where("reminder_id = ?", reminderID).
		Updates(map[string]any{"dispatched_at": at, "updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrReminderNotFound
	}
	return nil
}

func (r Repository) GetNagSettings(ctx context.Context, scope tenantscope.Scope, tenantID string) (entities.NagSettings, error) {
	var m nagSettingsModel
	err := scope.Apply(r.DB.WithContext(ctx)).
		Where("tenant_id = ?", tenantID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DefaultNagSettings(tenantID), nil
		}
		return entities.NagSettings{}, err
	}
	return entities.NagSettings{
		TenantID:  m.TenantID,
		Tone:      m.Tone,
		DailyCap:  m.DailyCap,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r Repository) SaveNagSettings(ctx context.Context, settings entities.NagSettings) error {
	m := nagSettingsModel{
		TenantID:  settings.TenantID,
		Tone:      settings.Tone,
		DailyCap:  settings.DailyCap,
		UpdatedAt: settings.UpdatedAt,
	}
	return r.DB.WithContext(ctx).Save(&m).Error
}
