package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kinkeep/contexts/family-core/household-service/domain/entities"
	domainerrors "kinkeep/contexts/family-core/household-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Store is an in-memory adapter implementing the chore, key date and
// wishlist repositories plus clock/id ports.
type Store struct {
	mu sync.RWMutex

	chores   map[string]entities.Chore
	keyDates map[string]entities.KeyDate
	wishlist map[string]entities.WishlistItem
}

func NewStore() *Store {
	return &Store{
		chores:   make(map[string]entities.Chore),
		keyDates: make(map[string]entities.KeyDate),
		wishlist: make(map[string]entities.WishlistItem),
	}
}

// Now implements the Clock port.
func (s *Store) Now() time.Time { return time.Now().UTC() }

// NewID implements the IDGenerator port.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) GetChore(_ context.Context, scope tenantscope.Scope, choreID string) (entities.Chore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chore, ok := s.chores[choreID]
	if !ok || !scope.Visible(chore.TenantID) {
		return entities.Chore{}, domainerrors.ErrChoreNotFound
	}
	return chore, nil
}

func (s *Store) ListChores(_ context.Context, scope tenantscope.Scope) ([]entities.Chore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Chore, 0)
	for _, chore := range s.chores {
		if scope.Visible(chore.TenantID) {
			items = append(items, chore)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) CreateChore(_ context.Context, chore entities.Chore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chores[chore.ChoreID] = chore
	return nil
}

func (s *Store) UpdateChore(_ context.Context, scope tenantscope.Scope, chore entities.Chore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.chores[chore.ChoreID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrChoreNotFound
	}
	s.chores[chore.ChoreID] = chore
	return nil
}

func (s *Store) DeleteChore(_ context.Context, scope tenantscope.Scope, choreID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.chores[choreID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrChoreNotFound
	}
	delete(s.chores, choreID)
	return nil
}

func (s *Store) GetKeyDate(_ context.Context, scope tenantscope.Scope, keyDateID string) (entities.KeyDate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	date, ok := s.keyDates[keyDateID]
	if !ok || !scope.Visible(date.TenantID) {
		return entities.KeyDate{}, domainerrors.ErrKeyDateNotFound
	}
	return date, nil
}

func (s *Store) ListKeyDates(_ context.Context, scope tenantscope.Scope) ([]entities.KeyDate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.KeyDate, 0)
	for _, date := range s.keyDates {
		if scope.Visible(date.TenantID) {
			items = append(items, date)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func (s *Store) CreateKeyDate(_ context.Context, date entities.KeyDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keyDates[date.KeyDateID] = date
	return nil
}

func (s *Store) UpdateKeyDate(_ context.Context, scope tenantscope.Scope, date entities.KeyDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.keyDates[date.KeyDateID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrKeyDateNotFound
	}
	s.keyDates[date.KeyDateID] = date
	return nil
}

func (s *Store) DeleteKeyDate(_ context.Context, scope tenantscope.Scope, keyDateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.keyDates[keyDateID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrKeyDateNotFound
	}
	delete(s.keyDates, keyDateID)
	return nil
}

func (s *Store) GetWishlistItem(_ context.Context, scope tenantscope.Scope, itemID string) (entities.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.wishlist[itemID]
	if !ok || !scope.Visible(item.TenantID) {
		return entities.WishlistItem{}, domainerrors.ErrWishlistItemNotFound
	}
	return item, nil
}

func (s *Store) ListWishlistItems(_ context.Context, scope tenantscope.Scope) ([]entities.WishlistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.WishlistItem, 0)
	for _, item := range s.wishlist {
		if scope.Visible(item.TenantID) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) CreateWishlistItem(_ context.Context, item entities.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlist[item.ItemID] = item
	return nil
}

func (s *Store) UpdateWishlistItem(_ context.Context, scope tenantscope.Scope, item entities.WishlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.wishlist[item.ItemID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrWishlistItemNotFound
	}
	s.wishlist[item.ItemID] = item
	return nil
}

func (s *Store) DeleteWishlistItem(_ context.Context, scope tenantscope.Scope, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.wishlist[itemID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrWishlistItemNotFound
	}
	delete(s.wishlist, itemID)
	return nil
}
