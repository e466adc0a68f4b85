package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"kinkeep/contexts/family-core/household-service/domain/entities"
	domainerrors "kinkeep/contexts/family-core/household-service/domain/errors"
	"kinkeep/contexts/family-core/household-service/ports"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"
)

// Service owns tenant-scoped household content: chores, key dates and
// wishlist items. Every operation checks its capability before touching
// a repository, and every repository call goes through a tenant scope.
type Service struct {
	Chores   ports.ChoreRepository
	KeyDates ports.KeyDateRepository
	Wishlist ports.WishlistRepository
	Guard    ports.AccessGuard
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// CreateChoreInput is the chore creation payload.
type CreateChoreInput struct {
	Title      string
	Notes      string
	AssigneeID string
	DueDate    *time.Time
}

func (s Service) CreateChore(ctx context.Context, caller authctx.Principal, input CreateChoreInput) (entities.Chore, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.Chore{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.Chore{}, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return entities.Chore{}, domainerrors.ErrInvalidChore
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Chore{}, err
	}
	now := s.now()
	chore := entities.Chore{
		ChoreID:    id,
		TenantID:   tenantID,
		Title:      title,
		Notes:      strings.TrimSpace(input.Notes),
		AssigneeID: strings.TrimSpace(input.AssigneeID),
		DueDate:    input.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Chores.CreateChore(ctx, chore); err != nil {
		return entities.Chore{}, err
	}
	return chore, nil
}

func (s Service) GetChore(ctx context.Context, caller authctx.Principal, choreID string) (entities.Chore, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return entities.Chore{}, err
	}
	return s.Chores.GetChore(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(choreID))
}

func (s Service) ListChores(ctx context.Context, caller authctx.Principal) ([]entities.Chore, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return nil, err
	}
	return s.Chores.ListChores(ctx, tenantscope.ForPrincipal(caller))
}

// UpdateChoreInput carries chore mutations; nil pointers leave the
// current value untouched.
type UpdateChoreInput struct {
	Title      *string
	Notes      *string
	AssigneeID *string
	DueDate    *time.Time
	Done       *bool
}

func (s Service) UpdateChore(ctx context.Context, caller authctx.Principal, choreID string, input UpdateChoreInput) (entities.Chore, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.Chore{}, err
	}
	scope := tenantscope.ForPrincipal(caller)
	chore, err := s.Chores.GetChore(ctx, scope, strings.TrimSpace(choreID))
	if err != nil {
		return entities.Chore{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return entities.Chore{}, domainerrors.ErrInvalidChore
		}
		chore.Title = title
	}
	if input.Notes != nil {
		chore.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.AssigneeID != nil {
		chore.AssigneeID = strings.TrimSpace(*input.AssigneeID)
	}
	if input.DueDate != nil {
		due := *input.DueDate
		chore.DueDate = &due
	}
	if input.Done != nil {
		chore.Done = *input.Done
	}
	chore.UpdatedAt = s.now()
	if err := s.Chores.UpdateChore(ctx, scope, chore); err != nil {
		return entities.Chore{}, err
	}
	return chore, nil
}

func (s Service) DeleteChore(ctx context.Context, caller authctx.Principal, choreID string) error {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return err
	}
	return s.Chores.DeleteChore(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(choreID))
}

// CreateKeyDateInput is the key date creation payload.
type CreateKeyDateInput struct {
	Title  string
	Date   time.Time
	Annual bool
	Notes  string
}

func (s Service) CreateKeyDate(ctx context.Context, caller authctx.Principal, input CreateKeyDateInput) (entities.KeyDate, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.KeyDate{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.KeyDate{}, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Date.IsZero() {
		return entities.KeyDate{}, domainerrors.ErrInvalidKeyDate
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.KeyDate{}, err
	}
	now := s.now()
	date := entities.KeyDate{
		KeyDateID: id,
		TenantID:  tenantID,
		Title:     title,
		Date:      input.Date,
		Annual:    input.Annual,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.KeyDates.CreateKeyDate(ctx, date); err != nil {
		return entities.KeyDate{}, err
	}
	return date, nil
}

func (s Service) GetKeyDate(ctx context.Context, caller authctx.Principal, keyDateID string) (entities.KeyDate, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return entities.KeyDate{}, err
	}
	return s.KeyDates.GetKeyDate(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(keyDateID))
}

func (s Service) ListKeyDates(ctx context.Context, caller authctx.Principal) ([]entities.KeyDate, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return nil, err
	}
	return s.KeyDates.ListKeyDates(ctx, tenantscope.ForPrincipal(caller))
}

// UpdateKeyDateInput carries key date mutations; nil pointers leave the
// current value untouched.
type UpdateKeyDateInput struct {
	Title  *string
	Date   *time.Time
	Annual *bool
	Notes  *string
}

func (s Service) UpdateKeyDate(ctx context.Context, caller authctx.Principal, keyDateID string, input UpdateKeyDateInput) (entities.KeyDate, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.KeyDate{}, err
	}
	scope := tenantscope.ForPrincipal(caller)
	date, err := s.KeyDates.GetKeyDate(ctx, scope, strings.TrimSpace(keyDateID))
	if err != nil {
		return entities.KeyDate{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return entities.KeyDate{}, domainerrors.ErrInvalidKeyDate
		}
		date.Title = title
	}
	if input.Date != nil {
		if input.Date.IsZero() {
			return entities.KeyDate{}, domainerrors.ErrInvalidKeyDate
		}
		date.Date = *input.Date
	}
	if input.Annual != nil {
		date.Annual = *input.Annual
	}
	if input.Notes != nil {
		date.Notes = strings.TrimSpace(*input.Notes)
	}
	date.UpdatedAt = s.now()
	if err := s.KeyDates.UpdateKeyDate(ctx, scope, date); err != nil {
		return entities.KeyDate{}, err
	}
	return date, nil
}

func (s Service) DeleteKeyDate(ctx context.Context, caller authctx.Principal, keyDateID string) error {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return err
	}
	return s.KeyDates.DeleteKeyDate(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(keyDateID))
}

// CreateWishlistItemInput is the wishlist creation payload.
type CreateWishlistItemInput struct {
	Title      string
	URL        string
	PriceCents int64
}

func (s Service) CreateWishlistItem(ctx context.Context, caller authctx.Principal, input CreateWishlistItemInput) (entities.WishlistItem, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.WishlistItem{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.WishlistItem{}, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || input.PriceCents < 0 {
		return entities.WishlistItem{}, domainerrors.ErrInvalidWishlistItem
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.WishlistItem{}, err
	}
	now := s.now()
	item := entities.WishlistItem{
		ItemID:     id,
		TenantID:   tenantID,
		OwnerID:    caller.PrincipalID,
		Title:      title,
		URL:        strings.TrimSpace(input.URL),
		PriceCents: input.PriceCents,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Wishlist.CreateWishlistItem(ctx, item); err != nil {
		return entities.WishlistItem{}, err
	}
	return item, nil
}

func (s Service) GetWishlistItem(ctx context.Context, caller authctx.Principal, itemID string) (entities.WishlistItem, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return entities.WishlistItem{}, err
	}
	return s.Wishlist.GetWishlistItem(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(itemID))
}

func (s Service) ListWishlistItems(ctx context.Context, caller authctx.Principal) ([]entities.WishlistItem, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentView); err != nil {
		return nil, err
	}
	return s.Wishlist.ListWishlistItems(ctx, tenantscope.ForPrincipal(caller))
}

// ClaimWishlistItem marks an item as claimed by the caller. A claimed
// item stays claimed; whoever got there first keeps it.
func (s Service) ClaimWishlistItem(ctx context.Context, caller authctx.Principal, itemID string) (entities.WishlistItem, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return entities.WishlistItem{}, err
	}
	scope := tenantscope.ForPrincipal(caller)
	item, err := s.Wishlist.GetWishlistItem(ctx, scope, strings.TrimSpace(itemID))
	if err != nil {
		return entities.WishlistItem{}, err
	}
	if item.Claimed {
		return entities.WishlistItem{}, domainerrors.ErrItemAlreadyClaimed
	}

	item.Claimed = true
	item.ClaimedBy = caller.PrincipalID
	item.UpdatedAt = s.now()
	if err := s.Wishlist.UpdateWishlistItem(ctx, scope, item); err != nil {
		return entities.WishlistItem{}, err
	}

	resolveLogger(s.Logger).Info("wishlist item claimed",
		"event", "household_wishlist_claimed",
		"module", "family-core/household-service",
		"layer", "application",
		"item_id", item.ItemID,
		"claimed_by", caller.PrincipalID,
	)
	return item, nil
}

func (s Service) DeleteWishlistItem(ctx context.Context, caller authctx.Principal, itemID string) error {
	if err := s.Guard.RequireAction(caller, ports.ActionContentManage); err != nil {
		return err
	}
	return s.Wishlist.DeleteWishlistItem(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(itemID))
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
