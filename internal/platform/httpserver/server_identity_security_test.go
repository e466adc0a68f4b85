package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	identityhttp "kinkeep/contexts/identity-access/identity-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func TestRegisterThenLoginFlow(t *testing.T) {
	server := newTestServer()
	seedTenant(t, server, "family.local")

	rr := doJSON(server, http.MethodPost, "/api/identity/v1/register", "",
		`{"tenantDomain":"family.local","email":"new@x.com","password":"`+testPassword+`"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register failed: %d body=%s", rr.Code, rr.Body.String())
	}
	var created identityhttp.PrincipalDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("register response not decodable: %v", err)
	}
	if created.Role != string(authctx.RoleRestrictedMember) {
		t.Fatalf("self-registration must grant restricted_member, got %q", created.Role)
	}

	session := login(t, server, "new@x.com")
	rr = doJSON(server, http.MethodGet, "/api/auth/v1/me", session.Token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("me after registration failed: %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterAgainstUnknownDomainFails(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/identity/v1/register", "",
		`{"tenantDomain":"nobody.example","email":"new@x.com","password":"`+testPassword+`"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDuplicateEmailRegistrationConflicts(t *testing.T) {
	server := newTestServer()
	seedTenant(t, server, "family.local")
	seedTenant(t, server, "other.local")

	body := `{"tenantDomain":"family.local","email":"new@x.com","password":"` + testPassword + `"}`
	if rr := doJSON(server, http.MethodPost, "/api/identity/v1/register", "", body); rr.Code != http.StatusCreated {
		t.Fatalf("first registration failed: %d", rr.Code)
	}

	rr := doJSON(server, http.MethodPost, "/api/identity/v1/register", "",
		`{"tenantDomain":"other.local","email":"New@X.com","password":"`+testPassword+`"}`)
	if rr.Code != http.StatusConflict || errorCode(t, rr) != "email_conflict" {
		t.Fatalf("email uniqueness is global: expected 409 email_conflict, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestMemberCannotListPrincipals(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "kid@family.local", authctx.RoleRestrictedMember, nil)
	session := login(t, server, "kid@family.local")

	rr := doJSON(server, http.MethodGet, "/api/identity/v1/principals", session.Token, "")
	if rr.Code != http.StatusForbidden || errorCode(t, rr) != "role_not_permitted" {
		t.Fatalf("expected 403 role_not_permitted, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestForeignTenantLooksMissing(t *testing.T) {
	server := newTestServer()
	tenantA := seedTenant(t, server, "family-a.local")
	tenantB := seedTenant(t, server, "family-b.local")
	seedPrincipal(t, server, tenantB, "bob@family-b.local", authctx.RoleTenantOwner, nil)
	session := login(t, server, "bob@family-b.local")

	rr := doJSON(server, http.MethodGet, "/api/identity/v1/tenants/"+tenantA, session.Token, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("a foreign tenant must look missing, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doJSON(server, http.MethodGet, "/api/identity/v1/tenants/"+tenantB, session.Token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("own tenant must be readable, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestTenantCollectionIsPlatformOnly(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	seedPrincipal(t, server, "", "root@kinkeep.io", authctx.RolePlatformOwner, nil)

	ownerSession := login(t, server, "alice@family.local")
	rr := doJSON(server, http.MethodGet, "/api/identity/v1/tenants", ownerSession.Token, "")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("tenant listing must be platform only, got %d", rr.Code)
	}

	rootSession := login(t, server, "root@kinkeep.io")
	rr = doJSON(server, http.MethodGet, "/api/identity/v1/tenants", rootSession.Token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("platform owner listing failed: %d body=%s", rr.Code, rr.Body.String())
	}
}
