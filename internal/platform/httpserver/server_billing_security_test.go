package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	billinghttp "kinkeep/contexts/commerce/billing-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func TestMinorCheckoutReturnsAgeRestricted(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	seedPrincipal(t, server, tenantID, "kid@family.local", authctx.RoleRestrictedMember, yearsAgo(12))
	ownerSession := login(t, server, "alice@family.local")
	kidSession := login(t, server, "kid@family.local")

	rr := doJSON(server, http.MethodPost, "/api/billing/v1/orders", ownerSession.Token, `{"description":"Sneakers","amountCents":8000}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create order failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var order billinghttp.OrderDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &order); err != nil {
		t.Fatalf("order response not decodable: %v", err)
	}

	rr = doJSON(server, http.MethodPost, "/api/billing/v1/orders/"+order.OrderID+"/checkout", kidSession.Token, "")
	if rr.Code != http.StatusForbidden || errorCode(t, rr) != "age_restricted" {
		t.Fatalf("expected 403 age_restricted, got %d %s", rr.Code, rr.Body.String())
	}
	var denial billinghttp.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &denial); err != nil {
		t.Fatalf("denial body not decodable: %v", err)
	}
	if !strings.Contains(denial.Message, "18 or older") {
		t.Fatalf("age denial must carry the explicit message, got %q", denial.Message)
	}
	if len(server.billing.Gateway.Charges()) != 0 {
		t.Fatalf("the gateway must never see a denied checkout")
	}
}

func TestAdultMemberCheckoutSucceedsOverHTTP(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	seedPrincipal(t, server, tenantID, "gran@family.local", authctx.RoleRestrictedMember, yearsAgo(70))
	ownerSession := login(t, server, "alice@family.local")
	granSession := login(t, server, "gran@family.local")

	rr := doJSON(server, http.MethodPost, "/api/billing/v1/orders", ownerSession.Token, `{"description":"Flowers","amountCents":1500}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create order failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var order billinghttp.OrderDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &order); err != nil {
		t.Fatalf("order response not decodable: %v", err)
	}

	rr = doJSON(server, http.MethodPost, "/api/billing/v1/orders/"+order.OrderID+"/checkout", granSession.Token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("adult member checkout failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var paid billinghttp.OrderDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &paid); err != nil {
		t.Fatalf("checkout response not decodable: %v", err)
	}
	if paid.Status != "paid" || paid.ReceiptID == "" {
		t.Fatalf("order not paid: %+v", paid)
	}
}

func TestMemberCannotManagePromotions(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "gran@family.local", authctx.RoleRestrictedMember, yearsAgo(70))
	session := login(t, server, "gran@family.local")

	rr := doJSON(server, http.MethodPost, "/api/billing/v1/promotions", session.Token, `{"code":"SPRING","percentOff":10,"active":true}`)
	if rr.Code != http.StatusForbidden || errorCode(t, rr) != "role_not_permitted" {
		t.Fatalf("expected 403 role_not_permitted, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestCrossTenantOrderIsNotFound(t *testing.T) {
	server := newTestServer()
	tenantA := seedTenant(t, server, "family-a.local")
	tenantB := seedTenant(t, server, "family-b.local")
	seedPrincipal(t, server, tenantA, "alice@family-a.local", authctx.RoleTenantOwner, nil)
	seedPrincipal(t, server, tenantB, "bob@family-b.local", authctx.RoleTenantOwner, nil)
	aliceSession := login(t, server, "alice@family-a.local")
	bobSession := login(t, server, "bob@family-b.local")

	rr := doJSON(server, http.MethodPost, "/api/billing/v1/orders", aliceSession.Token, `{"description":"Gift","amountCents":500}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create order failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var order billinghttp.OrderDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &order); err != nil {
		t.Fatalf("order response not decodable: %v", err)
	}

	rr = doJSON(server, http.MethodGet, "/api/billing/v1/orders/"+order.OrderID, bobSession.Token, "")
	if rr.Code != http.StatusNotFound || errorCode(t, rr) != "not_found" {
		t.Fatalf("cross-tenant order must be a plain 404, got %d %s", rr.Code, rr.Body.String())
	}
}
