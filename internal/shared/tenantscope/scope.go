// Package tenantscope is the single chokepoint for tenant data isolation.
//
// Repository ports accept a Scope value instead of a raw tenant id. Scopes can
// only be built from a resolved principal, so a non-platform-owner request is
// structurally unable to read or mutate another tenant's rows. Records outside
// the scope surface as not-found, never as forbidden.
package tenantscope

import (
	"errors"

	"gorm.io/gorm"

	"kinkeep/internal/shared/authctx"
)

// ErrNoTenantContext is returned when a platform owner invokes a tenant-scoped
// operation without naming a target tenant. It is a caller-contract violation,
// not a security denial.
var ErrNoTenantContext = errors.New("no tenant context: operation requires a target tenant")

// Scope is an opaque tenant filter. The zero value matches nothing; obtain one
// via ForPrincipal or ForTenant.
type Scope struct {
	tenantID    string
	crossTenant bool
}

// ForPrincipal derives the implicit scope for a request: the principal's own
// tenant, or cross-tenant visibility for the platform owner.
func ForPrincipal(p authctx.Principal) Scope {
	if p.IsPlatformOwner() {
		return Scope{crossTenant: true}
	}
	return Scope{tenantID: p.TenantID}
}

// ForTenant derives a scope with an explicit target tenant. Only the platform
// owner may operate on a tenant other than its own; for everyone else the
// target is ignored and the principal's own tenant applies.
func ForTenant(p authctx.Principal, targetTenantID string) Scope {
	if p.IsPlatformOwner() {
		if targetTenantID == "" {
			return Scope{crossTenant: true}
		}
		return Scope{tenantID: targetTenantID}
	}
	return Scope{tenantID: p.TenantID}
}

// ForSystem returns the scope for one tenant on behalf of a trusted
// background job that runs without a request principal. Never hand this
// to request-serving code paths.
func ForSystem(tenantID string) Scope {
	return Scope{tenantID: tenantID}
}

// TenantID returns the bound tenant id, empty for a cross-tenant scope.
func (s Scope) TenantID() string { return s.tenantID }

// CrossTenant reports whether the scope spans all tenants.
func (s Scope) CrossTenant() bool { return s.crossTenant }

// Visible reports whether a record owned by tenantID falls inside the scope.
// Used by in-memory adapters; postgres adapters use Apply.
func (s Scope) Visible(tenantID string) bool {
	if s.crossTenant {
		return true
	}
	return s.tenantID != "" && s.tenantID == tenantID
}

// Apply attaches the implicit tenant filter to a gorm query.
func (s Scope) Apply(tx *gorm.DB) *gorm.DB {
	if s.crossTenant {
		return tx
	}
	if s.tenantID == "" {
		// Zero-value scope: match nothing rather than leak everything.
		return tx.Where("1 = 0")
	}
	return tx.Where("tenant_id = ?", s.tenantID)
}

// RequireTenant resolves the scope to exactly one tenant id, failing for
// cross-tenant scopes. Writes that always need a concrete tenant go through
// this.
func (s Scope) RequireTenant() (string, error) {
	if s.crossTenant || s.tenantID == "" {
		return "", ErrNoTenantContext
	}
	return s.tenantID, nil
}

// RequireTenantContext resolves the principal's implicit scope to exactly one
// tenant id. Platform owners must use ForTenant with an explicit target
// instead.
func RequireTenantContext(p authctx.Principal) (string, error) {
	return ForPrincipal(p).RequireTenant()
}
