package entities

import "time"

// Reminder is a scheduled nudge owned by a family tenant. Once the
// dispatcher has published it, DispatchedAt is set and the reminder is
// not picked up again.
type Reminder struct {
	ReminderID   string
	TenantID     string
	CreatedBy    string
	Title        string
	Message      string
	DueAt        time.Time
	DispatchedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Due reports whether the reminder should be dispatched at now.
func (r Reminder) Due(now time.Time) bool {
	return r.DispatchedAt == nil && !r.DueAt.After(now)
}
