package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	billingservice "kinkeep/contexts/commerce/billing-service"
	householdservice "kinkeep/contexts/family-core/household-service"
	reminderservice "kinkeep/contexts/family-core/reminder-service"
	authservice "kinkeep/contexts/identity-access/auth-service"
	authports "kinkeep/contexts/identity-access/auth-service/ports"
	authhttp "kinkeep/contexts/identity-access/auth-service/transport/http"
	authorizationservice "kinkeep/contexts/identity-access/authorization-service"
	identityservice "kinkeep/contexts/identity-access/identity-service"
	identityapp "kinkeep/contexts/identity-access/identity-service/application"
	"kinkeep/internal/platform/messaging"
	"kinkeep/internal/shared/authctx"
)

const testPassword = "correct-horse-battery"

func newTestServer() *Server {
	logger := slog.Default()
	identity := identityservice.NewInMemoryModule(logger)
	auth := authservice.NewInMemoryModule(identity, "server-test-secret", logger)
	authorization := authorizationservice.NewModule(authorizationservice.Dependencies{Logger: logger})
	household := householdservice.NewInMemoryModule(authorization.Guard, logger)
	reminders := reminderservice.NewInMemoryModule(authorization.Guard, nil, messaging.NewBus(logger), logger)
	billing := billingservice.NewInMemoryModule(authorization.Guard, logger)
	return New(auth, identity, authorization, household, reminders, billing, logger, ":0")
}

func seedTenant(t *testing.T, server *Server, domain string) string {
	t.Helper()
	tenant, err := server.identity.Service.CreateTenant(context.Background(), identityapp.CreateTenantInput{Domain: domain, Name: domain})
	if err != nil {
		t.Fatalf("seed tenant %s failed: %v", domain, err)
	}
	return tenant.TenantID
}

func seedPrincipal(t *testing.T, server *Server, tenantID string, email string, role authctx.Role, birthDate *time.Time) string {
	t.Helper()
	principal, err := server.identity.Service.CreatePrincipal(context.Background(), identityapp.CreatePrincipalInput{
		Email:     email,
		Password:  testPassword,
		Role:      role,
		TenantID:  tenantID,
		BirthDate: birthDate,
	})
	if err != nil {
		t.Fatalf("seed principal %s failed: %v", email, err)
	}
	return principal.PrincipalID
}

func login(t *testing.T, server *Server, email string) authhttp.SessionResponse {
	t.Helper()
	rr := doJSON(server, http.MethodPost, "/api/auth/v1/login", "", `{"identifier":"`+email+`","password":"`+testPassword+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login for %s failed: %d body=%s", email, rr.Code, rr.Body.String())
	}
	var session authhttp.SessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &session); err != nil {
		t.Fatalf("login response not decodable: %v", err)
	}
	return session
}

func doJSON(server *Server, method string, target string, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not decodable: %v body=%s", err, rr.Body.String())
	}
	return body.Code
}

func yearsAgo(years int) *time.Time {
	t := time.Now().UTC().AddDate(-years, 0, 0)
	return &t
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodGet, "/api/auth/v1/me", "", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := errorCode(t, rr); code != "invalid_credential" {
		t.Fatalf("expected invalid_credential, got %q", code)
	}
}

func TestBearerTokenWinsOverCookieAndQuery(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	seedPrincipal(t, server, tenantID, "bob@family.local", authctx.RoleCoOwner, nil)
	aliceSession := login(t, server, "alice@family.local")
	bobSession := login(t, server, "bob@family.local")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/v1/me?session="+bobSession.Token, nil)
	req.Header.Set("Authorization", "Bearer "+aliceSession.Token)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: bobSession.Token})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var me authhttp.PrincipalDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &me); err != nil {
		t.Fatalf("me response not decodable: %v", err)
	}
	if me.Email != "alice@family.local" {
		t.Fatalf("bearer token must win, resolved %q", me.Email)
	}
}

func TestCookieAndQueryCredentialsAccepted(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	session := login(t, server, "alice@family.local")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session.Token})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("cookie credential rejected: %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(server, http.MethodGet, "/api/auth/v1/me?session="+session.Token, "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("query credential rejected: %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestExpiredAndTamperedTokensGetDistinctCodes(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	principalID := seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	session := login(t, server, "alice@family.local")

	expired, err := server.auth.Service.Codec.Issue(authports.SessionClaims{
		PrincipalID: principalID,
		Email:       "alice@family.local",
		Role:        authctx.RoleTenantOwner,
		TenantID:    tenantID,
	}, -time.Second)
	if err != nil {
		t.Fatalf("issuing expired token failed: %v", err)
	}
	rr := doJSON(server, http.MethodGet, "/api/auth/v1/me", expired, "")
	if rr.Code != http.StatusUnauthorized || errorCode(t, rr) != "session_expired" {
		t.Fatalf("expected 401 session_expired, got %d %s", rr.Code, rr.Body.String())
	}

	dot := strings.LastIndex(session.Token, ".")
	altered := []byte(session.Token)
	if altered[dot+1] == 'A' {
		altered[dot+1] = 'B'
	} else {
		altered[dot+1] = 'A'
	}
	rr = doJSON(server, http.MethodGet, "/api/auth/v1/me", string(altered), "")
	if rr.Code != http.StatusUnauthorized || errorCode(t, rr) != "invalid_credential" {
		t.Fatalf("expected 401 invalid_credential, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestDisabledAccountRejectedImmediately(t *testing.T) {
	server := newTestServer()
	tenantID := seedTenant(t, server, "family.local")
	principalID := seedPrincipal(t, server, tenantID, "alice@family.local", authctx.RoleTenantOwner, nil)
	session := login(t, server, "alice@family.local")

	if err := server.identity.Service.SetPrincipalActive(context.Background(), principalID, false); err != nil {
		t.Fatalf("disabling account failed: %v", err)
	}
	rr := doJSON(server, http.MethodGet, "/api/auth/v1/me", session.Token, "")
	if rr.Code != http.StatusUnauthorized || errorCode(t, rr) != "account_disabled" {
		t.Fatalf("expected 401 account_disabled, got %d %s", rr.Code, rr.Body.String())
	}
}
