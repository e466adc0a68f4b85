package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"kinkeep/contexts/commerce/billing-service/adapters/memory"
	domainerrors "kinkeep/contexts/commerce/billing-service/domain/errors"
	authzapp "kinkeep/contexts/identity-access/authorization-service/application"
	authzerrors "kinkeep/contexts/identity-access/authorization-service/domain/errors"
	"kinkeep/internal/shared/authctx"
)

func newTestService() (Service, *memory.Gateway) {
	store := memory.NewStore()
	gateway := memory.NewGateway()
	return Service{
		Orders:     store,
		Promotions: store,
		Gateway:    gateway,
		Guard:      authzapp.Guard{},
		Clock:      store,
		IDGen:      store,
	}, gateway
}

func ownerOf(tenantID string, principalID string) authctx.Principal {
	return authctx.Principal{
		PrincipalID: principalID,
		Role:        authctx.RoleTenantOwner,
		TenantID:    tenantID,
	}
}

func memberOf(tenantID string, principalID string, birthDate *time.Time) authctx.Principal {
	return authctx.Principal{
		PrincipalID: principalID,
		Role:        authctx.RoleRestrictedMember,
		TenantID:    tenantID,
		BirthDate:   birthDate,
	}
}

func yearsAgo(years int) *time.Time {
	t := time.Now().UTC().AddDate(-years, 0, 0)
	return &t
}

func TestCheckoutChargesAndMarksPaid(t *testing.T) {
	service, gateway := newTestService()
	owner := ownerOf("tenant-a", "alice")

	order, err := service.CreateOrder(context.Background(), owner, CreateOrderInput{Description: "Birthday gift", AmountCents: 2500})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Currency != "USD" {
		t.Fatalf("currency must default to USD, got %q", order.Currency)
	}

	paid, err := service.CheckoutOrder(context.Background(), owner, order.OrderID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !paid.Paid() || paid.ReceiptID == "" || paid.PaidAt == nil {
		t.Fatalf("order not marked paid: %+v", paid)
	}

	charges := gateway.Charges()
	if len(charges) != 1 || charges[0].AmountCents != 2500 {
		t.Fatalf("unexpected charges: %+v", charges)
	}

	if _, err := service.CheckoutOrder(context.Background(), owner, order.OrderID); !errors.Is(err, domainerrors.ErrOrderAlreadyPaid) {
		t.Fatalf("second checkout must fail, got %v", err)
	}
	if len(gateway.Charges()) != 1 {
		t.Fatalf("a paid order must not be charged again")
	}
}

func TestMinorCheckoutBlockedBeforeGateway(t *testing.T) {
	service, gateway := newTestService()
	owner := ownerOf("tenant-a", "alice")
	minor := memberOf("tenant-a", "kid", yearsAgo(12))

	order, err := service.CreateOrder(context.Background(), owner, CreateOrderInput{Description: "Sneakers", AmountCents: 8000})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := service.CheckoutOrder(context.Background(), minor, order.OrderID); !errors.Is(err, authzerrors.ErrAgeRestricted) {
		t.Fatalf("minor checkout must be age restricted, got %v", err)
	}
	if len(gateway.Charges()) != 0 {
		t.Fatalf("the gateway must never see a denied checkout")
	}
}

func TestAdultMemberMayCheckout(t *testing.T) {
	service, gateway := newTestService()
	owner := ownerOf("tenant-a", "alice")
	grandparent := memberOf("tenant-a", "gran", yearsAgo(70))

	order, err := service.CreateOrder(context.Background(), owner, CreateOrderInput{Description: "Flowers", AmountCents: 1500})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := service.CheckoutOrder(context.Background(), grandparent, order.OrderID); err != nil {
		t.Fatalf("adult member checkout failed: %v", err)
	}
	if len(gateway.Charges()) != 1 {
		t.Fatalf("expected exactly one charge")
	}
}

func TestCheckoutAppliesActivePromotion(t *testing.T) {
	service, gateway := newTestService()
	owner := ownerOf("tenant-a", "alice")

	if _, err := service.CreatePromotion(context.Background(), owner, CreatePromotionInput{Code: "family10", PercentOff: 10, Active: true}); err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	order, err := service.CreateOrder(context.Background(), owner, CreateOrderInput{Description: "Groceries", AmountCents: 1000, PromoCode: "FAMILY10"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := service.CheckoutOrder(context.Background(), owner, order.OrderID); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	charges := gateway.Charges()
	if len(charges) != 1 || charges[0].AmountCents != 900 {
		t.Fatalf("expected a 10%% discount, got %+v", charges)
	}
}

func TestCheckoutIgnoresUnknownPromoCode(t *testing.T) {
	service, gateway := newTestService()
	owner := ownerOf("tenant-a", "alice")

	order, err := service.CreateOrder(context.Background(), owner, CreateOrderInput{Description: "Books", AmountCents: 1200, PromoCode: "NOPE"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := service.CheckoutOrder(context.Background(), owner, order.OrderID); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if charges := gateway.Charges(); len(charges) != 1 || charges[0].AmountCents != 1200 {
		t.Fatalf("unknown code must charge full price, got %+v", charges)
	}
}

func TestDeclinedChargeLeavesOrderPending(t *testing.T) {
	service, gateway := newTestService()
	owner := ownerOf("tenant-a", "alice")
	gateway.Fail = errors.New("card expired")

	order, err := service.CreateOrder(context.Background(), owner, CreateOrderInput{Description: "Lamp", AmountCents: 3000})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := service.CheckoutOrder(context.Background(), owner, order.OrderID); !errors.Is(err, domainerrors.ErrPaymentDeclined) {
		t.Fatalf("declined charge must surface as payment declined, got %v", err)
	}

	reloaded, err := service.GetOrder(context.Background(), owner, order.OrderID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if reloaded.Paid() {
		t.Fatalf("a declined order must stay pending")
	}
}

func TestOrdersAreInvisibleAcrossTenants(t *testing.T) {
	service, _ := newTestService()
	alice := ownerOf("tenant-a", "alice")
	bob := ownerOf("tenant-b", "bob")

	order, err := service.CreateOrder(context.Background(), alice, CreateOrderInput{Description: "Gift", AmountCents: 500})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := service.GetOrder(context.Background(), bob, order.OrderID); !errors.Is(err, domainerrors.ErrOrderNotFound) {
		t.Fatalf("cross-tenant read must be a plain not-found, got %v", err)
	}
	if _, err := service.CheckoutOrder(context.Background(), bob, order.OrderID); !errors.Is(err, domainerrors.ErrOrderNotFound) {
		t.Fatalf("cross-tenant checkout must be a plain not-found, got %v", err)
	}
	orders, err := service.ListOrders(context.Background(), bob)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("tenant-b must see no orders, saw %d", len(orders))
	}
}

func TestPromotionsGatedToOwners(t *testing.T) {
	service, _ := newTestService()
	owner := ownerOf("tenant-a", "alice")
	member := memberOf("tenant-a", "gran", yearsAgo(70))

	if _, err := service.CreatePromotion(context.Background(), member, CreatePromotionInput{Code: "X", PercentOff: 5}); !errors.Is(err, authzerrors.ErrRoleNotPermitted) {
		t.Fatalf("member must not manage promotions, got %v", err)
	}
	if _, err := service.ListPromotions(context.Background(), member); !errors.Is(err, authzerrors.ErrRoleNotPermitted) {
		t.Fatalf("member must not list promotions, got %v", err)
	}

	promotion, err := service.CreatePromotion(context.Background(), owner, CreatePromotionInput{Code: "spring", PercentOff: 15, Active: true})
	if err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}
	if promotion.Code != "SPRING" {
		t.Fatalf("code must be normalized upper case, got %q", promotion.Code)
	}

	if _, err := service.CreatePromotion(context.Background(), owner, CreatePromotionInput{Code: " Spring ", PercentOff: 20}); !errors.Is(err, domainerrors.ErrPromoCodeConflict) {
		t.Fatalf("duplicate code must conflict, got %v", err)
	}

	active := false
	updated, err := service.UpdatePromotion(context.Background(), owner, promotion.PromoID, UpdatePromotionInput{Active: &active})
	if err != nil {
		t.Fatalf("update promotion failed: %v", err)
	}
	if updated.Active {
		t.Fatalf("promotion must be deactivated")
	}

	if err := service.DeletePromotion(context.Background(), owner, promotion.PromoID); err != nil {
		t.Fatalf("delete promotion failed: %v", err)
	}
	if _, err := service.GetPromotion(context.Background(), owner, promotion.PromoID); !errors.Is(err, domainerrors.ErrPromotionNotFound) {
		t.Fatalf("deleted promotion must be gone, got %v", err)
	}
}

func TestPromotionValidation(t *testing.T) {
	service, _ := newTestService()
	owner := ownerOf("tenant-a", "alice")

	if _, err := service.CreatePromotion(context.Background(), owner, CreatePromotionInput{Code: "", PercentOff: 10}); !errors.Is(err, domainerrors.ErrInvalidPromotion) {
		t.Fatalf("empty code must be rejected, got %v", err)
	}
	if _, err := service.CreatePromotion(context.Background(), owner, CreatePromotionInput{Code: "BIG", PercentOff: 101}); !errors.Is(err, domainerrors.ErrInvalidPromotion) {
		t.Fatalf("over-100 discount must be rejected, got %v", err)
	}
}
