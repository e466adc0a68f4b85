package ports

import (
	"context"
	"time"

	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	"kinkeep/internal/shared/events"
	"kinkeep/internal/shared/tenantscope"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for new records.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PasswordHasher abstracts credential hashing so tests can run with a cheap
// cost factor.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare returns nil when plain matches hash.
	Compare(hash string, plain string) error
}

// ExternalLogin is the transient shape produced by a verified
// identity-provider handshake. It is never persisted as-is.
type ExternalLogin struct {
	Provider  string
	SubjectID string
	Email     string
	Name      string
}

// PrincipalRepository is the write/read boundary for principal records.
// Uniqueness of email (global) and username (per tenant) is enforced at write
// time with the distinct conflict errors from domain/errors.
type PrincipalRepository interface {
	GetPrincipal(ctx context.Context, principalID string) (entities.Principal, error)
	// GetPrincipalByIdentifier matches the identifier case-insensitively
	// against both email and username.
	GetPrincipalByIdentifier(ctx context.Context, identifier string) (entities.Principal, error)
	GetPrincipalByExternalIdentity(ctx context.Context, provider string, subjectID string) (entities.Principal, error)
	ListPrincipals(ctx context.Context, scope tenantscope.Scope) ([]entities.Principal, error)
	CountActivePrincipals(ctx context.Context, tenantID string) (int, error)

	CreatePrincipal(ctx context.Context, principal entities.Principal) error
	UpdatePrincipal(ctx context.Context, principal entities.Principal) error
	SetPrincipalActive(ctx context.Context, principalID string, active bool, now time.Time) error
	// DeletePrincipal hard-deletes only when no dependent records reference
	// the principal; otherwise ErrPrincipalHasDependents.
	DeletePrincipal(ctx context.Context, principalID string) error

	LinkExternalIdentity(ctx context.Context, link entities.ExternalIdentity) error
	// RecordLogin is best-effort bookkeeping; callers must tolerate failure.
	RecordLogin(ctx context.Context, principalID string, at time.Time) error
}

// TenantRepository is the write/read boundary for tenant records.
type TenantRepository interface {
	GetTenant(ctx context.Context, tenantID string) (entities.Tenant, error)
	// GetTenantByDomain matches the routing key case-insensitively.
	GetTenantByDomain(ctx context.Context, domain string) (entities.Tenant, error)
	ListTenants(ctx context.Context) ([]entities.Tenant, error)

	CreateTenant(ctx context.Context, tenant entities.Tenant) error
	UpdateTenant(ctx context.Context, tenant entities.Tenant) error
	SetTenantActive(ctx context.Context, tenantID string, active bool, now time.Time) error
	// DeleteTenant is blocked while active principals remain; deactivate or
	// reassign them first.
	DeleteTenant(ctx context.Context, tenantID string) error
}

// EventPublisher carries identity lifecycle notifications to the rest of
// the system. Satisfied by the platform bus; a nil publisher disables
// notification without affecting the identity outcome.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}
