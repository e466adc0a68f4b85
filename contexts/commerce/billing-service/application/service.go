package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kinkeep/contexts/commerce/billing-service/domain/entities"
	domainerrors "kinkeep/contexts/commerce/billing-service/domain/errors"
	"kinkeep/contexts/commerce/billing-service/ports"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"
)

// Service owns orders and promotions. Checkout is the only path to the
// payment gateway, and the capability check runs before anything else.
type Service struct {
	Orders     ports.OrderRepository
	Promotions ports.PromotionRepository
	Gateway    ports.PaymentGateway
	Guard      ports.AccessGuard
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// CreateOrderInput is the order creation payload.
type CreateOrderInput struct {
	Description string
	AmountCents int64
	Currency    string
	PromoCode   string
}

func (s Service) CreateOrder(ctx context.Context, caller authctx.Principal, input CreateOrderInput) (entities.Order, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionOrderManage); err != nil {
		return entities.Order{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.Order{}, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" || input.AmountCents <= 0 {
		return entities.Order{}, domainerrors.ErrInvalidOrder
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Order{}, err
	}
	now := s.now()
	order := entities.Order{
		OrderID:     id,
		TenantID:    tenantID,
		CreatedBy:   caller.PrincipalID,
		Description: description,
		AmountCents: input.AmountCents,
		Currency:    currency,
		PromoCode:   normalizeCode(input.PromoCode),
		Status:      entities.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return entities.Order{}, err
	}
	return order, nil
}

func (s Service) GetOrder(ctx context.Context, caller authctx.Principal, orderID string) (entities.Order, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionOrderView); err != nil {
		return entities.Order{}, err
	}
	return s.Orders.GetOrder(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(orderID))
}

func (s Service) ListOrders(ctx context.Context, caller authctx.Principal) ([]entities.Order, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionOrderView); err != nil {
		return nil, err
	}
	return s.Orders.ListOrders(ctx, tenantscope.ForPrincipal(caller))
}

// CheckoutOrder charges a pending order. The billing capability is
// checked before the order is even loaded, so a denied caller never
// reaches the gateway.
func (s Service) CheckoutOrder(ctx context.Context, caller authctx.Principal, orderID string) (entities.Order, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionBillingCheckout); err != nil {
		return entities.Order{}, err
	}
	scope := tenantscope.ForPrincipal(caller)
	order, err := s.Orders.GetOrder(ctx, scope, strings.TrimSpace(orderID))
	if err != nil {
		return entities.Order{}, err
	}
	if order.Paid() {
		return entities.Order{}, domainerrors.ErrOrderAlreadyPaid
	}

	amount := order.AmountCents
	if order.PromoCode != "" {
		promotion, err := s.Promotions.GetPromotionByCode(ctx, scope, order.PromoCode)
		if err == nil {
			amount -= promotion.Discount(order.AmountCents)
		} else if !errors.Is(err, domainerrors.ErrPromotionNotFound) {
			return entities.Order{}, err
		}
	}

	receipt, err := s.Gateway.Charge(ctx, ports.ChargeRequest{
		OrderID:     order.OrderID,
		TenantID:    order.TenantID,
		AmountCents: amount,
		Currency:    order.Currency,
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("%w: %v", domainerrors.ErrPaymentDeclined, err)
	}

	now := s.now()
	paidAt := receipt.ChargedAt
	if paidAt.IsZero() {
		paidAt = now
	}
	order.Status = entities.OrderStatusPaid
	order.ReceiptID = receipt.ReceiptID
	order.PaidAt = &paidAt
	order.UpdatedAt = now
	if err := s.Orders.UpdateOrder(ctx, scope, order); err != nil {
		return entities.Order{}, err
	}

	resolveLogger(s.Logger).Info("order paid",
		"event", "billing_order_paid",
		"module", "commerce/billing-service",
		"layer", "application",
		"tenant_id", order.TenantID,
		"order_id", order.OrderID,
		"amount_cents", amount,
	)
	return order, nil
}

// CreatePromotionInput is the promotion creation payload.
type CreatePromotionInput struct {
	Code       string
	PercentOff int
	Active     bool
}

func (s Service) CreatePromotion(ctx context.Context, caller authctx.Principal, input CreatePromotionInput) (entities.Promotion, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionPromoManage); err != nil {
		return entities.Promotion{}, err
	}
	tenantID, err := tenantscope.RequireTenantContext(caller)
	if err != nil {
		return entities.Promotion{}, err
	}
	code := normalizeCode(input.Code)
	if code == "" || input.PercentOff < 1 || input.PercentOff > 100 {
		return entities.Promotion{}, domainerrors.ErrInvalidPromotion
	}
	scope := tenantscope.ForPrincipal(caller)
	if _, err := s.Promotions.GetPromotionByCode(ctx, scope, code); err == nil {
		return entities.Promotion{}, domainerrors.ErrPromoCodeConflict
	} else if !errors.Is(err, domainerrors.ErrPromotionNotFound) {
		return entities.Promotion{}, err
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Promotion{}, err
	}
	now := s.now()
	promotion := entities.Promotion{
		PromoID:    id,
		TenantID:   tenantID,
		Code:       code,
		PercentOff: input.PercentOff,
		Active:     input.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Promotions.CreatePromotion(ctx, promotion); err != nil {
		return entities.Promotion{}, err
	}
	return promotion, nil
}

func (s Service) GetPromotion(ctx context.Context, caller authctx.Principal, promoID string) (entities.Promotion, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionPromoManage); err != nil {
		return entities.Promotion{}, err
	}
	return s.Promotions.GetPromotion(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(promoID))
}

func (s Service) ListPromotions(ctx context.Context, caller authctx.Principal) ([]entities.Promotion, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionPromoManage); err != nil {
		return nil, err
	}
	return s.Promotions.ListPromotions(ctx, tenantscope.ForPrincipal(caller))
}

// UpdatePromotionInput carries promotion mutations; nil pointers leave
// the current value untouched.
type UpdatePromotionInput struct {
	PercentOff *int
	Active     *bool
}

func (s Service) UpdatePromotion(ctx context.Context, caller authctx.Principal, promoID string, input UpdatePromotionInput) (entities.Promotion, error) {
	if err := s.Guard.RequireAction(caller, ports.ActionPromoManage); err != nil {
		return entities.Promotion{}, err
	}
	scope := tenantscope.ForPrincipal(caller)
	promotion, err := s.Promotions.GetPromotion(ctx, scope, strings.TrimSpace(promoID))
	if err != nil {
		return entities.Promotion{}, err
	}

	if input.PercentOff != nil {
		if *input.PercentOff < 1 || *input.PercentOff > 100 {
			return entities.Promotion{}, domainerrors.ErrInvalidPromotion
		}
		promotion.PercentOff = *input.PercentOff
	}
	if input.Active != nil {
		promotion.Active = *input.Active
	}
	promotion.UpdatedAt = s.now()
	if err := s.Promotions.UpdatePromotion(ctx, scope, promotion); err != nil {
		return entities.Promotion{}, err
	}
	return promotion, nil
}

func (s Service) DeletePromotion(ctx context.Context, caller authctx.Principal, promoID string) error {
	if err := s.Guard.RequireAction(caller, ports.ActionPromoManage); err != nil {
		return err
	}
	return s.Promotions.DeletePromotion(ctx, tenantscope.ForPrincipal(caller), strings.TrimSpace(promoID))
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
