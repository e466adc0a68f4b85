package ports

import (
	"context"
	"time"

	"kinkeep/internal/shared/authctx"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces opaque keys for pending logins.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// SessionClaims is the identity snapshot carried inside a session token.
// Claims are identity only; authorization state is always reloaded from
// storage when the token is resolved.
type SessionClaims struct {
	PrincipalID string
	Email       string
	Name        string
	Role        authctx.Role
	TenantID    string
	BirthDate   *time.Time
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Issue(claims SessionClaims, ttl time.Duration) (string, error)
	// Verify returns ErrSessionExpired for an expired token and
	// ErrInvalidCredential for anything malformed or tampered.
	Verify(token string) (SessionClaims, error)
}

// PrincipalRecord is the directory's view of a principal.
type PrincipalRecord struct {
	PrincipalID string
	Email       string
	Name        string
	Role        authctx.Role
	TenantID    string
	BirthDate   *time.Time
	Active      bool
}

// Context projects the record into the request-scoped principal.
func (r PrincipalRecord) Context() authctx.Principal {
	return authctx.Principal{
		PrincipalID: r.PrincipalID,
		Email:       r.Email,
		Name:        r.Name,
		Role:        r.Role,
		TenantID:    r.TenantID,
		BirthDate:   r.BirthDate,
	}
}

// TenantRecord is the directory's view of a tenant.
type TenantRecord struct {
	TenantID string
	Domain   string
	Active   bool
}

// ExternalLogin is a provider-verified external identity assertion.
type ExternalLogin struct {
	Provider  string
	SubjectID string
	Email     string
	Name      string
}

// Directory looks up and authenticates principals. Implementations map
// their own not-found and bad-credential conditions onto this context's
// ErrPrincipalUnknown, ErrTenantUnknown and ErrInvalidCredential.
type Directory interface {
	PrincipalByID(ctx context.Context, principalID string) (PrincipalRecord, error)
	VerifyPassword(ctx context.Context, identifier string, password string) (PrincipalRecord, error)
	CompleteExternalLogin(ctx context.Context, login ExternalLogin, targetDomain string) (PrincipalRecord, error)
	TenantByID(ctx context.Context, tenantID string) (TenantRecord, error)
	RecordLogin(ctx context.Context, principalID string, at time.Time)
}

// PendingLogin correlates an in-flight external login round trip. It
// carries no secrets, only where the caller should land afterwards.
type PendingLogin struct {
	Key          string
	TenantDomain string
	Destination  string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// PendingLoginStore holds pending logins between the begin and complete
// steps of an external login.
type PendingLoginStore interface {
	Put(ctx context.Context, pending PendingLogin) error
	// Consume atomically removes and returns the entry. A consumed or
	// absent key yields ErrPendingLoginNotFound; an expired entry is
	// removed and yields ErrPendingLoginExpired.
	Consume(ctx context.Context, key string, now time.Time) (PendingLogin, error)
	// Sweep drops expired entries and reports how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}
