package queries

import (
	"time"

	"kinkeep/contexts/identity-access/authorization-service/domain/capability"
	"kinkeep/internal/shared/authctx"
)

// Decision reasons, stable for transports and logs.
const (
	ReasonGranted          = "granted"
	ReasonUnknownAction    = "unknown_action"
	ReasonRoleNotPermitted = "role_not_permitted"
	ReasonAgeRestricted    = "age_restricted"
	ReasonPlatformOverride = "platform_override"
)

// Decision is the outcome of evaluating one action for one principal.
type Decision struct {
	Allowed bool
	Reason  string
}

// Policy carries the tunable knobs of the decision engine.
type Policy struct {
	AssumeAdultWhenBirthDateUnknown bool
}

// Authorize evaluates an action for a principal against the capability
// table. It is a pure function: all state arrives in the arguments.
//
// Order of evaluation:
//  1. platform_owner is granted everything.
//  2. an action outside the table is denied regardless of role.
//  3. the role must appear in the action's allowed set.
//  4. billing actions additionally require restricted members to be adults.
func Authorize(principal authctx.Principal, action capability.Action, now time.Time, policy Policy) Decision {
	if principal.Role == authctx.RolePlatformOwner {
		return Decision{Allowed: true, Reason: ReasonPlatformOverride}
	}
	if !capability.Known(action) {
		return Decision{Reason: ReasonUnknownAction}
	}
	if !capability.Allows(action, principal.Role) {
		return Decision{Reason: ReasonRoleNotPermitted}
	}
	if capability.IsBilling(action) &&
		principal.Role == authctx.RoleRestrictedMember &&
		!capability.IsAdult(principal.BirthDate, now, policy.AssumeAdultWhenBirthDateUnknown) {
		return Decision{Reason: ReasonAgeRestricted}
	}
	return Decision{Allowed: true, Reason: ReasonGranted}
}
