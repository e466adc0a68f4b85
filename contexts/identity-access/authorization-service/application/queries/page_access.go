package queries

import (
	"time"

	"kinkeep/contexts/identity-access/authorization-service/domain/capability"
	"kinkeep/internal/shared/authctx"
)

// pageActions maps navigable pages onto the capability that gates them.
// Page access is always derived from the same table and predicate as
// action checks so the two can never drift apart.
var pageActions = map[string]capability.Action{
	"dashboard": capability.ActionContentView,
	"dates":     capability.ActionContentView,
	"wishlist":  capability.ActionContentView,
	"chores":    capability.ActionContentView,
	"reminders": capability.ActionContentView,
	"members":   capability.ActionPrincipalManage,
	"tenant":    capability.ActionTenantManage,
	"promos":    capability.ActionPromoManage,
	"ai":        capability.ActionAIConfigure,
	"system":    capability.ActionSystemSettings,
	"orders":    capability.ActionBillingView,
	"checkout":  capability.ActionBillingCheckout,
	"billing":   capability.ActionBillingManage,
}

// CanAccessPage reports whether the principal may open a page. An
// unknown page is treated like an unknown action: denied for everyone
// except the platform owner.
func CanAccessPage(principal authctx.Principal, page string, now time.Time, policy Policy) bool {
	action, ok := pageActions[page]
	if !ok {
		return principal.Role == authctx.RolePlatformOwner
	}
	return Authorize(principal, action, now, policy).Allowed
}

// PageAction exposes the page-to-capability mapping for transports.
func PageAction(page string) (capability.Action, bool) {
	action, ok := pageActions[page]
	return action, ok
}
