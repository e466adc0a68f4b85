package authctx

import "strings"

// Role is the closed set of principal roles. There is no dynamic role table:
// authorization rules key off these four values only.
type Role string

const (
	// RolePlatformOwner has unrestricted cross-tenant access and no tenant of its own.
	RolePlatformOwner Role = "platform_owner"
	// RoleTenantOwner administers a single family tenant.
	RoleTenantOwner Role = "tenant_owner"
	// RoleCoOwner shares day-to-day administration of a tenant.
	RoleCoOwner Role = "co_owner"
	// RoleRestrictedMember is an ordinary member, subject to the age-gated billing rule.
	RoleRestrictedMember Role = "restricted_member"
)

// ParseRole normalizes and validates a role string.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.Valid()
}

// Valid reports whether the role is one of the four known values.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformOwner, RoleTenantOwner, RoleCoOwner, RoleRestrictedMember:
		return true
	}
	return false
}

// RequiresTenant reports whether principals with this role must belong to a tenant.
// Only the platform owner lives outside tenant boundaries.
func (r Role) RequiresTenant() bool {
	return r != RolePlatformOwner
}
