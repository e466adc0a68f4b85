package memory

import (
	"context"
	"errors"
	"testing"

	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	domainerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
)

func TestUsernameUniqueForPrincipalsWithoutTenant(t *testing.T) {
	store := NewStore()

	if err := store.CreatePrincipal(context.Background(), entities.Principal{
		PrincipalID: "owner-1",
		Email:       "owner1@platform.local",
		Username:    "root",
	}); err != nil {
		t.Fatalf("first platform principal failed: %v", err)
	}

	err := store.CreatePrincipal(context.Background(), entities.Principal{
		PrincipalID: "owner-2",
		Email:       "owner2@platform.local",
		Username:    "Root",
	})
	if !errors.Is(err, domainerrors.ErrUsernameConflict) {
		t.Fatalf("expected ErrUsernameConflict for principals without a tenant, got %v", err)
	}

	if err := store.CreatePrincipal(context.Background(), entities.Principal{
		PrincipalID: "owner-3",
		Email:       "owner3@platform.local",
		Username:    "audit",
	}); err != nil {
		t.Fatalf("distinct username must be allowed: %v", err)
	}
}
