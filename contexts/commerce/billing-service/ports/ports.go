package ports

import (
	"context"
	"time"

	"kinkeep/contexts/commerce/billing-service/domain/entities"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"
)

// Actions checked before billing operations touch a repository or the
// payment gateway.
const (
	ActionOrderView       = "order:view"
	ActionOrderManage     = "order:manage"
	ActionBillingCheckout = "billing:checkout"
	ActionPromoManage     = "promo:manage"
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

// OrderRepository persists orders. Every read takes a scope; an order
// outside the scope behaves exactly like a missing one.
type OrderRepository interface {
	GetOrder(ctx context.Context, scope tenantscope.Scope, orderID string) (entities.Order, error)
	ListOrders(ctx context.Context, scope tenantscope.Scope) ([]entities.Order, error)
	CreateOrder(ctx context.Context, order entities.Order) error
	UpdateOrder(ctx context.Context, scope tenantscope.Scope, order entities.Order) error
}

// PromotionRepository persists promo codes under the same scoping
// contract. Codes are unique per tenant.
type PromotionRepository interface {
	GetPromotion(ctx context.Context, scope tenantscope.Scope, promoID string) (entities.Promotion, error)
	GetPromotionByCode(ctx context.Context, scope tenantscope.Scope, code string) (entities.Promotion, error)
	ListPromotions(ctx context.Context, scope tenantscope.Scope) ([]entities.Promotion, error)
	CreatePromotion(ctx context.Context, promotion entities.Promotion) error
	UpdatePromotion(ctx context.Context, scope tenantscope.Scope, promotion entities.Promotion) error
	DeletePromotion(ctx context.Context, scope tenantscope.Scope, promoID string) error
}

// ChargeRequest is what the gateway needs to move money.
type ChargeRequest struct {
	OrderID     string
	TenantID    string
	AmountCents int64
	Currency    string
}

// Receipt is the gateway's proof of a completed charge.
type Receipt struct {
	ReceiptID   string
	AmountCents int64
	ChargedAt   time.Time
}

// PaymentGateway charges an order. The checkout flow never calls it
// before the caller has cleared the billing capability check.
type PaymentGateway interface {
	Charge(ctx context.Context, request ChargeRequest) (Receipt, error)
}
