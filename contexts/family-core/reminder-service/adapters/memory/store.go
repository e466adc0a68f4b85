package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kinkeep/contexts/family-core/reminder-service/domain/entities"
	domainerrors "kinkeep/contexts/family-core/reminder-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Store is an in-memory adapter implementing the reminder and nag
// settings repositories plus clock/id ports.
type Store struct {
	mu sync.RWMutex

	reminders map[string]entities.Reminder
	settings  map[string]entities.NagSettings
}

func NewStore() *Store {
	return &Store{
		reminders: make(map[string]entities.Reminder),
		settings:  make(map[string]entities.NagSettings),
	}
}

// Now implements the Clock port.
func (s *Store) Now() time.Time { return time.Now().UTC() }

// NewID implements the IDGenerator port.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) GetReminder(_ context.Context, scope tenantscope.Scope, reminderID string) (entities.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reminder, ok := s.reminders[reminderID]
	if !ok || !scope.Visible(reminder.TenantID) {
		return entities.Reminder{}, domainerrors.ErrReminderNotFound
	}
	return reminder, nil
}

func (s *Store) ListReminders(_ context.Context, scope tenantscope.Scope) ([]entities.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Reminder, 0)
	for _, reminder := range s.reminders {
		if scope.Visible(reminder.TenantID) {
			items = append(items, reminder)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].DueAt.Before(items[j].DueAt) })
	return items, nil
}

func (s *Store) CreateReminder(_ context.Context, reminder entities.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders[reminder.ReminderID] = reminder
	return nil
}

func (s *Store) UpdateReminder(_ context.Context, scope tenantscope.Scope, reminder entities.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reminders[reminder.ReminderID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrReminderNotFound
	}
	s.reminders[reminder.ReminderID] = reminder
	return nil
}

func (s *Store) DeleteReminder(_ context.Context, scope tenantscope.Scope, reminderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reminders[reminderID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrReminderNotFound
	}
	delete(s.reminders, reminderID)
	return nil
}

func (s *Store) ListDue(_ context.Context, now time.Time, limit int) ([]entities.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	due := make([]entities.Reminder, 0)
	for _, reminder := range s.reminders {
		if reminder.Due(now) {
			due = append(due, reminder)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].DueAt.Before(due[j].DueAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *Store) MarkDispatched(_ context.Context, reminderID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminder, ok := s.reminders[reminderID]
	if !ok {
		return domainerrors.ErrReminderNotFound
	}
	stamp := at
	reminder.DispatchedAt = &stamp
	reminder.UpdatedAt = at
	s.reminders[reminderID] = reminder
	return nil
}

func (s *Store) GetNagSettings(_ context.Context, scope tenantscope.Scope, tenantID string) (entities.NagSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[tenantID]
	if !ok || !scope.Visible(settings.TenantID) {
		return entities.DefaultNagSettings(tenantID), nil
	}
	return settings, nil
}

func (s *Store) SaveNagSettings(_ context.Context, settings entities.NagSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[settings.TenantID] = settings
	return nil
}
