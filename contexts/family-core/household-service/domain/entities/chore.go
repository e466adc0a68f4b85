package entities

import "time"

// Chore is a recurring or one-off task assigned within a family tenant.
type Chore struct {
	ChoreID    string
	TenantID   string
	Title      string
	Notes      string
	AssigneeID string
	DueDate    *time.Time
	Done       bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
