package errors

import "errors"

var (
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrTenantNotFound    = errors.New("tenant not found")

	// ErrInvalidCredentials deliberately covers both unknown identifier and
	// wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailConflict    = errors.New("email is already registered")
	ErrUsernameConflict = errors.New("username is already taken in this tenant")
	ErrDomainConflict   = errors.New("tenant domain is already in use")

	ErrExternalIdentityConflict = errors.New("external identity is already linked")
	ErrTenantDomainRequired     = errors.New("a target tenant domain is required to create a new member")

	ErrInvalidRegistration = errors.New("invalid registration input")
	ErrInvalidProfile      = errors.New("invalid profile input")
	ErrInvalidTenant       = errors.New("invalid tenant input")
	ErrInvalidRole         = errors.New("unknown role")

	// ErrRoleTenantMismatch guards the structural invariant: platform owners
	// have no tenant, every other role has exactly one.
	ErrRoleTenantMismatch = errors.New("role and tenant membership are inconsistent")

	ErrTenantInactive = errors.New("tenant is not active")

	ErrPrincipalHasDependents    = errors.New("principal is referenced by existing records")
	ErrTenantHasActivePrincipals = errors.New("tenant still has active principals")
)
