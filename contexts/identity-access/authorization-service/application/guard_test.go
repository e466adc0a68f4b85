package application

import (
	"errors"
	"testing"

	"kinkeep/contexts/identity-access/authorization-service/domain/capability"
	domainerrors "kinkeep/contexts/identity-access/authorization-service/domain/errors"
	"kinkeep/internal/shared/authctx"
)

func TestRequireMapsDenialsToDomainErrors(t *testing.T) {
	guard := Guard{}
	member := authctx.Principal{Role: authctx.RoleRestrictedMember, TenantID: "t-1"}

	if err := guard.Require(member, capability.ActionContentView); err != nil {
		t.Fatalf("grant must return nil, got %v", err)
	}
	if err := guard.Require(member, capability.Action("no:such")); !errors.Is(err, domainerrors.ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if err := guard.Require(member, capability.ActionTenantManage); !errors.Is(err, domainerrors.ErrRoleNotPermitted) {
		t.Fatalf("expected ErrRoleNotPermitted, got %v", err)
	}
	if err := guard.Require(member, capability.ActionBillingCheckout); !errors.Is(err, domainerrors.ErrAgeRestricted) {
		t.Fatalf("strict policy minor checkout: expected ErrAgeRestricted, got %v", err)
	}
}
