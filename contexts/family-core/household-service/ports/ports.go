package ports

import (
	"context"
	"time"

	"kinkeep/contexts/family-core/household-service/domain/entities"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"
)

// Actions checked before household operations touch a repository.
const (
	ActionContentView   = "content:view"
	ActionContentManage = "content:manage"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator produces entity identifiers.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AccessGuard gates operations on a capability. Satisfied by the
// authorization module.
type AccessGuard interface {
	RequireAction(principal authctx.Principal, action string) error
}

// ChoreRepository persists chores. Every method takes a scope; a chore
// outside the scope behaves exactly like a missing one.
type ChoreRepository interface {
	GetChore(ctx context.Context, scope tenantscope.Scope, choreID string) (entities.Chore, error)
	ListChores(ctx context.Context, scope tenantscope.Scope) ([]entities.Chore, error)
	CreateChore(ctx context.Context, chore entities.Chore) error
	UpdateChore(ctx context.Context, scope tenantscope.Scope, chore entities.Chore) error
	DeleteChore(ctx context.Context, scope tenantscope.Scope, choreID string) error
}

// KeyDateRepository persists key dates under the same scoping contract.
type KeyDateRepository interface {
	GetKeyDate(ctx context.Context, scope tenantscope.Scope, keyDateID string) (entities.KeyDate, error)
	ListKeyDates(ctx context.Context, scope tenantscope.Scope) ([]entities.KeyDate, error)
	CreateKeyDate(ctx context.Context, date entities.KeyDate) error
	UpdateKeyDate(ctx context.Context, scope tenantscope.Scope, date entities.KeyDate) error
	DeleteKeyDate(ctx context.Context, scope tenantscope.Scope, keyDateID string) error
}

// WishlistRepository persists wishlist items under the same scoping
// contract.
type WishlistRepository interface {
	GetWishlistItem(ctx context.Context, scope tenantscope.Scope, itemID string) (entities.WishlistItem, error)
	ListWishlistItems(ctx context.Context, scope tenantscope.Scope) ([]entities.WishlistItem, error)
	CreateWishlistItem(ctx context.Context, item entities.WishlistItem) error
	UpdateWishlistItem(ctx context.Context, scope tenantscope.Scope, item entities.WishlistItem) error
	DeleteWishlistItem(ctx context.Context, scope tenantscope.Scope, itemID string) error
}
