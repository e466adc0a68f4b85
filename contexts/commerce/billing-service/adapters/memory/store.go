package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kinkeep/contexts/commerce/billing-service/domain/entities"
	domainerrors "kinkeep/contexts/commerce/billing-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Store is an in-memory adapter implementing the order and promotion
// repositories plus clock/id ports.
type Store struct {
	mu sync.RWMutex

	orders     map[string]entities.Order
	promotions map[string]entities.Promotion
}

func NewStore() *Store {
	return &Store{
		orders:     make(map[string]entities.Order),
		promotions: make(map[string]entities.Promotion),
	}
}

// Now implements the Clock port.
func (s *Store) Now() time.Time { return time.Now().UTC() }

// NewID implements the IDGenerator port.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) GetOrder(_ context.Context, scope tenantscope.Scope, orderID string) (entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok || !scope.Visible(order.TenantID) {
		return entities.Order{}, domainerrors.ErrOrderNotFound
	}
	return order, nil
}

func (s *Store) ListOrders(_ context.Context, scope tenantscope.Scope) ([]entities.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Order, 0)
	for _, order := range s.orders {
		if scope.Visible(order.TenantID) {
			items = append(items, order)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *Store) CreateOrder(_ context.Context, order entities.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.OrderID] = order
	return nil
}

func (s *Store) UpdateOrder(_ context.Context, scope tenantscope.Scope, order entities.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.orders[order.OrderID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrOrderNotFound
	}
	s.orders[order.OrderID] = order
	return nil
}

func (s *Store) GetPromotion(_ context.Context, scope tenantscope.Scope, promoID string) (entities.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promotion, ok := s.promotions[promoID]
	if !ok || !scope.Visible(promotion.TenantID) {
		return entities.Promotion{}, domainerrors.ErrPromotionNotFound
	}
	return promotion, nil
}

func (s *Store) GetPromotionByCode(_ context.Context, scope tenantscope.Scope, code string) (entities.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, promotion := range s.promotions {
		if promotion.Code == code && scope.Visible(promotion.TenantID) {
			return promotion, nil
		}
	}
	return entities.Promotion{}, domainerrors.ErrPromotionNotFound
}

func (s *Store) ListPromotions(_ context.Context, scope tenantscope.Scope) ([]entities.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Promotion, 0)
	for _, promotion := range s.promotions {
		if scope.Visible(promotion.TenantID) {
			items = append(items, promotion)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return items, nil
}

func (s *Store) CreatePromotion(_ context.Context, promotion entities.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.promotions[promotion.PromoID] = promotion
	return nil
}

func (s *Store) UpdatePromotion(_ context.Context, scope tenantscope.Scope, promotion entities.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.promotions[promotion.PromoID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrPromotionNotFound
	}
	s.promotions[promotion.PromoID] = promotion
	return nil
}

func (s *Store) DeletePromotion(_ context.Context, scope tenantscope.Scope, promoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.promotions[promoID]
	if !ok || !scope.Visible(existing.TenantID) {
		return domainerrors.ErrPromotionNotFound
	}
	delete(s.promotions, promoID)
	return nil
}
