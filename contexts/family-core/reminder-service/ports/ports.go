package ports

import (
	"context"
	"time"

	"kinkeep/contexts/family-core/reminder-service/domain/entities"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/events"
	"kinkeep/internal/shared/tenantscope"
)

// Actions checked by the reminder service.
const (
	ActionContentView   = "content:view"
	ActionContentManage = "content:manage"
	ActionAIConfigure   = "ai:configure"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces entity identifiers.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AccessGuard gates operations on a capability. Satisfied by the
// authorization module.
type AccessGuard interface {
	RequireAction(principal authctx.Principal, action string) error
}

// ReminderRepository persists reminders. Scoped methods follow the
// shared contract: a reminder outside the scope behaves like a missing
// one. ListDue is worker-facing and deliberately unscoped; it never
// serves caller requests.
type ReminderRepository interface {
	GetReminder(ctx context.Context, scope tenantscope.Scope, reminderID string) (entities.Reminder, error)
	ListReminders(ctx context.Context, scope tenantscope.Scope) ([]entities.Reminder, error)
	CreateReminder(ctx context.Context, reminder entities.Reminder) error
	UpdateReminder(ctx context.Context, scope tenantscope.Scope, reminder entities.Reminder) error
	DeleteReminder(ctx context.Context, scope tenantscope.Scope, reminderID string) error

	ListDue(ctx context.Context, now time.Time, limit int) ([]entities.Reminder, error)
	MarkDispatched(ctx context.Context, reminderID string, at time.Time) error
}

// NagSettingsRepository persists per-tenant nag tuning. Get returns the
// defaults when the tenant never saved anything.
type NagSettingsRepository interface {
	GetNagSettings(ctx context.Context, scope tenantscope.Scope, tenantID string) (entities.NagSettings, error)
	SaveNagSettings(ctx context.Context, settings entities.NagSettings) error
}

// NagContext is everything the composer may use to write the nag.
type NagContext struct {
	ReminderTitle   string
	ReminderMessage string
	Tone            string
	DueAt           time.Time
}

// Nag is composed reminder prose.
type Nag struct {
	Message string
	Tone    string
}

// NagComposer turns a reminder into narrative text.
type NagComposer interface {
	Compose(ctx context.Context, nag NagContext) (Nag, error)
}

// TextGenerator is the raw model behind the composer. Its output is a
// JSON document; the composer owns validating it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// EventPublisher carries dispatched reminders to the rest of the system.
// Satisfied by the platform bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}
