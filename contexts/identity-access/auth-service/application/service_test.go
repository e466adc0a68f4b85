package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	identityadapter "kinkeep/contexts/identity-access/auth-service/adapters/identity"
	jwtadapter "kinkeep/contexts/identity-access/auth-service/adapters/jwt"
	"kinkeep/contexts/identity-access/auth-service/adapters/memory"
	domainerrors "kinkeep/contexts/identity-access/auth-service/domain/errors"
	"kinkeep/contexts/identity-access/auth-service/ports"
	identityservice "kinkeep/contexts/identity-access/identity-service"
	identityapp "kinkeep/contexts/identity-access/identity-service/application"
	"kinkeep/internal/shared/authctx"
)

const testBootstrapToken = "kinkeep-bootstrap-access"

func newTestService(t *testing.T) (Service, identityapp.Service) {
	t.Helper()
	identity := identityservice.NewInMemoryModule(nil)
	pending := memory.NewPendingLoginStore()
	service := Service{
		Codec:           jwtadapter.NewCodec("test-session-secret", pending),
		Directory:       identityadapter.Directory{Identity: identity.Service},
		Pending:         pending,
		Clock:           pending,
		IDGen:           pending,
		SessionTTL:      time.Hour,
		PendingLoginTTL: 5 * time.Minute,
		BootstrapToken:  testBootstrapToken,
	}
	return service, identity.Service
}

func registerMember(t *testing.T, identity identityapp.Service, email string) string {
	t.Helper()
	if _, err := identity.CreateTenant(context.Background(), identityapp.CreateTenantInput{Domain: "family.local", Name: "Family"}); err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	principal, err := identity.RegisterMember(context.Background(), identityapp.RegisterMemberInput{
		TenantDomain: "family.local",
		Email:        email,
		Password:     "correct-horse",
	})
	if err != nil {
		t.Fatalf("register member failed: %v", err)
	}
	return principal.PrincipalID
}

func TestLoginIssuesResolvableSession(t *testing.T) {
	service, identity := newTestService(t)
	principalID := registerMember(t, identity, "member@x.com")

	session, err := service.Login(context.Background(), "member@x.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected a signed token")
	}

	resolved, err := service.Resolve(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.PrincipalID != principalID {
		t.Fatalf("expected principal %s, got %s", principalID, resolved.PrincipalID)
	}
	if resolved.Role != authctx.RoleRestrictedMember {
		t.Fatalf("unexpected role %s", resolved.Role)
	}
	if resolved.TenantID == "" {
		t.Fatalf("member principal must carry its tenant")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	service, identity := newTestService(t)
	registerMember(t, identity, "member@x.com")

	if _, err := service.Login(context.Background(), "member@x.com", "wrong"); !errors.Is(err, domainerrors.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if _, err := service.Login(context.Background(), "ghost@x.com", "correct-horse"); !errors.Is(err, domainerrors.ErrInvalidCredential) {
		t.Fatalf("unknown identifier must fail identically, got %v", err)
	}
}

func TestExpiredTokenDistinctFromTamperedToken(t *testing.T) {
	service, identity := newTestService(t)
	registerMember(t, identity, "member@x.com")

	expiredIssuer := service
	expiredIssuer.SessionTTL = -time.Second
	expired, err := expiredIssuer.Login(context.Background(), "member@x.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := service.Resolve(context.Background(), expired.Token); !errors.Is(err, domainerrors.ErrSessionExpired) {
		t.Fatalf("expired token: expected ErrSessionExpired, got %v", err)
	}

	session, err := service.Login(context.Background(), "member@x.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := service.Resolve(context.Background(), tamper(session.Token)); !errors.Is(err, domainerrors.ErrInvalidCredential) {
		t.Fatalf("tampered token: expected ErrInvalidCredential, got %v", err)
	}
}

// tamper flips the first character of the token signature.
func tamper(token string) string {
	dot := strings.LastIndex(token, ".")
	flipped := byte('A')
	if token[dot+1] == 'A' {
		flipped = 'B'
	}
	return token[:dot+1] + string(flipped) + token[dot+2:]
}

func TestDisabledAccountRejectedOnNextResolve(t *testing.T) {
	service, identity := newTestService(t)
	principalID := registerMember(t, identity, "member@x.com")

	session, err := service.Login(context.Background(), "member@x.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := identity.SetPrincipalActive(context.Background(), principalID, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := service.Resolve(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestDisabledTenantRejectsExistingSessions(t *testing.T) {
	service, identity := newTestService(t)
	registerMember(t, identity, "member@x.com")

	session, err := service.Login(context.Background(), "member@x.com", "correct-horse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	tenant, err := identity.GetTenantByDomain(context.Background(), "family.local")
	if err != nil {
		t.Fatalf("get tenant failed: %v", err)
	}
	if err := identity.SetTenantActive(context.Background(), tenant.TenantID, false); err != nil {
		t.Fatalf("deactivate tenant failed: %v", err)
	}

	if _, err := service.Resolve(context.Background(), session.Token); !errors.Is(err, domainerrors.ErrTenantDisabled) {
		t.Fatalf("expected ErrTenantDisabled, got %v", err)
	}
}

func TestBootstrapBypassDisabledByDefault(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.Resolve(context.Background(), testBootstrapToken); !errors.Is(err, domainerrors.ErrInvalidCredential) {
		t.Fatalf("disabled bypass must be an ordinary invalid credential, got %v", err)
	}

	service.BootstrapEnabled = true
	principal, err := service.Resolve(context.Background(), testBootstrapToken)
	if err != nil {
		t.Fatalf("enabled bypass failed: %v", err)
	}
	if principal.Role != authctx.RolePlatformOwner {
		t.Fatalf("bypass must resolve to a platform owner, got %s", principal.Role)
	}
	if principal.TenantID != "" {
		t.Fatalf("bypass principal must carry no tenant")
	}
}

func TestExternalLoginRoundTripConsumesKeyOnce(t *testing.T) {
	service, identity := newTestService(t)
	registerMember(t, identity, "member@x.com")

	pending, err := service.BeginExternalLogin(context.Background(), "family.local", "/dates")
	if err != nil {
		t.Fatalf("begin external login failed: %v", err)
	}

	login := ports.ExternalLogin{Provider: "google", SubjectID: "sub-1", Email: "guest@x.com", Name: "Guest"}
	session, err := service.CompleteExternalLogin(context.Background(), pending.Key, login)
	if err != nil {
		t.Fatalf("complete external login failed: %v", err)
	}
	if session.Destination != "/dates" {
		t.Fatalf("expected destination /dates, got %q", session.Destination)
	}
	if session.Principal.Role != authctx.RoleRestrictedMember {
		t.Fatalf("external principal must be a restricted member")
	}

	if _, err := service.CompleteExternalLogin(context.Background(), pending.Key, login); !errors.Is(err, domainerrors.ErrPendingLoginNotFound) {
		t.Fatalf("replayed key must be rejected, got %v", err)
	}
}

func TestResolveRejectsGarbageCredential(t *testing.T) {
	service, _ := newTestService(t)

	for _, credential := range []string{"", "   ", "not-a-token", strings.Repeat("x", 512)} {
		if _, err := service.Resolve(context.Background(), credential); !errors.Is(err, domainerrors.ErrInvalidCredential) {
			t.Fatalf("credential %q: expected ErrInvalidCredential, got %v", credential, err)
		}
	}
}
