package application

import (
	"log/slog"
	"time"

	"kinkeep/contexts/identity-access/authorization-service/application/queries"
	"kinkeep/contexts/identity-access/authorization-service/domain/capability"
	domainerrors "kinkeep/contexts/identity-access/authorization-service/domain/errors"
	"kinkeep/internal/shared/authctx"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Guard is the imperative face of the decision engine: it turns denials
// into domain errors for callers that gate side effects on a capability.
type Guard struct {
	Clock  Clock
	Policy queries.Policy
	Logger *slog.Logger
}

// Check evaluates an action and returns the raw decision.
func (g Guard) Check(principal authctx.Principal, action capability.Action) queries.Decision {
	return queries.Authorize(principal, action, g.now(), g.Policy)
}

// Require evaluates an action and fails with the matching domain error
// on denial. An unknown action is logged as a defect: actions are a
// closed set, so a miss means a caller passed a string that was never
// registered.
func (g Guard) Require(principal authctx.Principal, action capability.Action) error {
	decision := g.Check(principal, action)
	if decision.Allowed {
		return nil
	}

	switch decision.Reason {
	case queries.ReasonUnknownAction:
		ResolveLogger(g.Logger).Error("unknown action checked",
			"event", "authz_unknown_action",
			"module", "identity-access/authorization-service",
			"layer", "application",
			"action", string(action),
			"principal_id", principal.PrincipalID,
		)
		return domainerrors.ErrUnknownAction
	case queries.ReasonAgeRestricted:
		return domainerrors.ErrAgeRestricted
	default:
		return domainerrors.ErrRoleNotPermitted
	}
}

// RequireAction is Require with an untyped action name. It lets other
// contexts declare a guard port without importing the capability package.
func (g Guard) RequireAction(principal authctx.Principal, action string) error {
	return g.Require(principal, capability.Action(action))
}

func (g Guard) now() time.Time {
	if g.Clock == nil {
		return time.Now().UTC()
	}
	return g.Clock.Now().UTC()
}
