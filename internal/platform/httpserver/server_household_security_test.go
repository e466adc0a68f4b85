package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	householdhttp "kinkeep/contexts/family-core/household-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func TestChoreRoutesRequireAuthentication(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodGet, "/api/household/v1/chores", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCrossTenantChoreIsNotFound(t *testing.T) {
	server := newTestServer()
	tenantA := seedTenant(t, server, "family-a.local")
	tenantB := seedTenant(t, server, "family-b.local")
	seedPrincipal(t, server, tenantA, "alice@family-a.local", authctx.RoleTenantOwner, nil)
	seedPrincipal(t, server, tenantB, "bob@family-b.local", authctx.RoleTenantOwner, nil)
	aliceSession := login(t, server, "alice@family-a.local")
	bobSession := login(t, server, "bob@family-b.local")

	rr := doJSON(server, http.MethodPost, "/api/household/v1/chores", aliceSession.Token, `{"title":"Take out bins"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create chore failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var chore householdhttp.ChoreDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &chore); err != nil {
		t.Fatalf("chore response not decodable: %v", err)
	}

	rr = doJSON(server, http.MethodGet, "/api/household/v1/chores/"+chore.ChoreID, bobSession.Token, "")
	if rr.Code != http.StatusNotFound || errorCode(t, rr) != "not_found" {
		t.Fatalf("cross-tenant chore must be a plain 404, got %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(server, http.MethodDelete, "/api/household/v1/chores/"+chore.ChoreID, bobSession.Token, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant delete must be a plain 404, got %d", rr.Code)
	}
	rr = doJSON(server, http.MethodGet, "/api/household/v1/chores/"+chore.ChoreID, aliceSession.Token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("owner read failed: %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestWishlistClaimConflictSurfacesAs409(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	seedPrincipal(t, server, tenantID, "bob@family.local", authctx.RoleCoOwner, nil)
	aliceSession := login(t, server, "alice@family.local")
	bobSession := login(t, server, "bob@family.local")

	rr := doJSON(server, http.MethodPost, "/api/household/v1/wishlist", aliceSession.Token, `{"title":"Lego set","priceCents":4999}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create wishlist item failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var item householdhttp.WishlistItemDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &item); err != nil {
		t.Fatalf("item response not decodable: %v", err)
	}

	if rr := doJSON(server, http.MethodPost, "/api/household/v1/wishlist/"+item.ItemID+"/claim", bobSession.Token, ""); rr.Code != http.StatusOK {
		t.Fatalf("first claim failed: %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(server, http.MethodPost, "/api/household/v1/wishlist/"+item.ItemID+"/claim", aliceSession.Token, "")
	if rr.Code != http.StatusConflict || errorCode(t, rr) != "already_claimed" {
		t.Fatalf("second claim must conflict, got %d %s", rr.Code, rr.Body.String())
	}
}
