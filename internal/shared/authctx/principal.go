package authctx

import "time"

// Principal is the per-request authorization context produced by the
// authentication resolver. Every field is re-derived from durable storage at
// request time; nothing here is trusted from token payloads.
type Principal struct {
	PrincipalID string
	Email       string
	Name        string
	Role        Role
	// TenantID is empty only for the platform owner.
	TenantID  string
	BirthDate *time.Time
}

// IsPlatformOwner reports whether the principal holds the cross-tenant role.
func (p Principal) IsPlatformOwner() bool {
	return p.Role == RolePlatformOwner
}
