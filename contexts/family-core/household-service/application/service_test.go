package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"kinkeep/contexts/family-core/household-service/adapters/memory"
	domainerrors "kinkeep/contexts/family-core/household-service/domain/errors"
	authzapp "kinkeep/contexts/identity-access/authorization-service/application"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"
)

func newTestService() Service {
	store := memory.NewStore()
	return Service{
		Chores:   store,
		KeyDates: store,
		Wishlist: store,
		Guard:    authzapp.Guard{},
		Clock:    store,
		IDGen:    store,
	}
}

func memberOf(tenantID string, principalID string) authctx.Principal {
	return authctx.Principal{
		PrincipalID: principalID,
		Role:        authctx.RoleRestrictedMember,
		TenantID:    tenantID,
	}
}

func TestChoresAreInvisibleAcrossTenants(t *testing.T) {
	service := newTestService()
	alice := memberOf("tenant-a", "alice")
	bob := memberOf("tenant-b", "bob")

	chore, err := service.CreateChore(context.Background(), alice, CreateChoreInput{Title: "Take out bins"})
	if err != nil {
		t.Fatalf("create chore failed: %v", err)
	}

	if _, err := service.GetChore(context.Background(), bob, chore.ChoreID); !errors.Is(err, domainerrors.ErrChoreNotFound) {
		t.Fatalf("cross-tenant read must be a plain not-found, got %v", err)
	}
	if _, err := service.UpdateChore(context.Background(), bob, chore.ChoreID, UpdateChoreInput{}); !errors.Is(err, domainerrors.ErrChoreNotFound) {
		t.Fatalf("cross-tenant update must be a plain not-found, got %v", err)
	}
	if err := service.DeleteChore(context.Background(), bob, chore.ChoreID); !errors.Is(err, domainerrors.ErrChoreNotFound) {
		t.Fatalf("cross-tenant delete must be a plain not-found, got %v", err)
	}

	chores, err := service.ListChores(context.Background(), bob)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(chores) != 0 {
		t.Fatalf("tenant-b must see no chores, saw %d", len(chores))
	}
}

func TestPlatformOwnerSeesEveryTenant(t *testing.T) {
	service := newTestService()
	alice := memberOf("tenant-a", "alice")
	bob := memberOf("tenant-b", "bob")
	owner := authctx.Principal{PrincipalID: "root", Role: authctx.RolePlatformOwner}

	if _, err := service.CreateChore(context.Background(), alice, CreateChoreInput{Title: "Water plants"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.CreateChore(context.Background(), bob, CreateChoreInput{Title: "Feed cat"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	chores, err := service.ListChores(context.Background(), owner)
	if err != nil {
		t.Fatalf("platform owner list failed: %v", err)
	}
	if len(chores) != 2 {
		t.Fatalf("platform owner must see both tenants' chores, saw %d", len(chores))
	}
}

func TestCreateRequiresTenantContext(t *testing.T) {
	service := newTestService()
	owner := authctx.Principal{PrincipalID: "root", Role: authctx.RolePlatformOwner}

	_, err := service.CreateChore(context.Background(), owner, CreateChoreInput{Title: "Anything"})
	if !errors.Is(err, tenantscope.ErrNoTenantContext) {
		t.Fatalf("platform owner without target tenant: expected ErrNoTenantContext, got %v", err)
	}
}

func TestKeyDateLifecycle(t *testing.T) {
	service := newTestService()
	alice := memberOf("tenant-a", "alice")

	created, err := service.CreateKeyDate(context.Background(), alice, CreateKeyDateInput{
		Title:  "Grandma's birthday",
		Date:   time.Date(1950, time.May, 2, 0, 0, 0, 0, time.UTC),
		Annual: true,
	})
	if err != nil {
		t.Fatalf("create key date failed: %v", err)
	}

	newTitle := "Grandma Rosa's birthday"
	updated, err := service.UpdateKeyDate(context.Background(), alice, created.KeyDateID, UpdateKeyDateInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("update key date failed: %v", err)
	}
	if updated.Title != newTitle || !updated.Annual {
		t.Fatalf("unexpected key date after update: %+v", updated)
	}

	if err := service.DeleteKeyDate(context.Background(), alice, created.KeyDateID); err != nil {
		t.Fatalf("delete key date failed: %v", err)
	}
	if _, err := service.GetKeyDate(context.Background(), alice, created.KeyDateID); !errors.Is(err, domainerrors.ErrKeyDateNotFound) {
		t.Fatalf("deleted key date must be gone, got %v", err)
	}
}

func TestWishlistClaimIsFirstComeFirstServed(t *testing.T) {
	service := newTestService()
	alice := memberOf("tenant-a", "alice")
	carol := memberOf("tenant-a", "carol")

	item, err := service.CreateWishlistItem(context.Background(), alice, CreateWishlistItemInput{Title: "Lego set", PriceCents: 4999})
	if err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	claimed, err := service.ClaimWishlistItem(context.Background(), carol, item.ItemID)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if !claimed.Claimed || claimed.ClaimedBy != "carol" {
		t.Fatalf("unexpected claim state: %+v", claimed)
	}

	if _, err := service.ClaimWishlistItem(context.Background(), alice, item.ItemID); !errors.Is(err, domainerrors.ErrItemAlreadyClaimed) {
		t.Fatalf("second claim must fail, got %v", err)
	}
}

func TestInvalidContentRejected(t *testing.T) {
	service := newTestService()
	alice := memberOf("tenant-a", "alice")

	if _, err := service.CreateChore(context.Background(), alice, CreateChoreInput{Title: "  "}); !errors.Is(err, domainerrors.ErrInvalidChore) {
		t.Fatalf("blank chore title: expected ErrInvalidChore, got %v", err)
	}
	if _, err := service.CreateKeyDate(context.Background(), alice, CreateKeyDateInput{Title: "No date"}); !errors.Is(err, domainerrors.ErrInvalidKeyDate) {
		t.Fatalf("zero date: expected ErrInvalidKeyDate, got %v", err)
	}
	if _, err := service.CreateWishlistItem(context.Background(), alice, CreateWishlistItemInput{Title: "Negative", PriceCents: -1}); !errors.Is(err, domainerrors.ErrInvalidWishlistItem) {
		t.Fatalf("negative price: expected ErrInvalidWishlistItem, got %v", err)
	}
}
