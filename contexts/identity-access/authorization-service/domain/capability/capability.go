package capability

import (
	"strings"

	"kinkeep/internal/shared/authctx"
)

// Action names a capability checked by the decision engine. Actions are
// a closed set: anything outside the table is denied.
type Action string

const (
	ActionTenantManage    Action = "tenant:manage"
	ActionPrincipalManage Action = "principal:manage"
	ActionContentView     Action = "content:view"
	ActionContentManage   Action = "content:manage"
	ActionOrderView       Action = "order:view"
	ActionOrderManage     Action = "order:manage"
	ActionPromoManage     Action = "promo:manage"
	ActionAIConfigure     Action = "ai:configure"
	ActionSystemSettings  Action = "system:settings"
	ActionBillingView     Action = "billing:view"
	ActionBillingCheckout Action = "billing:checkout"
	ActionBillingManage   Action = "billing:manage"
)

const billingPrefix = "billing:"

// allowedRoles is the static capability table. platform_owner is absent
// on purpose: the engine grants it everything before consulting the
// table, so system:settings stays empty.
var allowedRoles = map[Action][]authctx.Role{
	ActionTenantManage:    {authctx.RoleTenantOwner},
	ActionPrincipalManage: {authctx.RoleTenantOwner, authctx.RoleCoOwner},
	ActionContentView:     {authctx.RoleTenantOwner, authctx.RoleCoOwner, authctx.RoleRestrictedMember},
	ActionContentManage:   {authctx.RoleTenantOwner, authctx.RoleCoOwner, authctx.RoleRestrictedMember},
	ActionOrderView:       {authctx.RoleTenantOwner, authctx.RoleCoOwner, authctx.RoleRestrictedMember},
	ActionOrderManage:     {authctx.RoleTenantOwner, authctx.RoleCoOwner},
	ActionPromoManage:     {authctx.RoleTenantOwner, authctx.RoleCoOwner},
	ActionAIConfigure:     {authctx.RoleTenantOwner, authctx.RoleCoOwner},
	ActionSystemSettings:  {},
	ActionBillingView:     {authctx.RoleTenantOwner, authctx.RoleCoOwner, authctx.RoleRestrictedMember},
	ActionBillingCheckout: {authctx.RoleTenantOwner, authctx.RoleCoOwner, authctx.RoleRestrictedMember},
	ActionBillingManage:   {authctx.RoleTenantOwner, authctx.RoleCoOwner},
}

// Known reports whether the action is in the table.
func Known(action Action) bool {
	_, ok := allowedRoles[action]
	return ok
}

// Allows reports whether the role appears in the action's allowed set.
func Allows(action Action, role authctx.Role) bool {
	for _, allowed := range allowedRoles[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// IsBilling reports whether the action belongs to the billing family,
// which carries the adult-age requirement for restricted members.
func IsBilling(action Action) bool {
	return strings.HasPrefix(string(action), billingPrefix)
}
