package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kinkeep/contexts/identity-access/identity-service/adapters/crypto"
	"kinkeep/contexts/identity-access/identity-service/adapters/memory"
	domainerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
	"kinkeep/contexts/identity-access/identity-service/ports"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/events"
)

func newTestService() (Service, *memory.Store) {
	store := memory.NewStore()
	service := Service{
		Principals: store,
		Tenants:    store,
		Hasher:     crypto.NewBcryptHasher(bcrypt.MinCost),
		Clock:      store,
		IDGen:      store,
	}
	return service, store
}

func mustCreateTenant(t *testing.T, service Service, domain string) string {
	t.Helper()
	tenant, err := service.CreateTenant(context.Background(), CreateTenantInput{Domain: domain, Name: domain})
	if err != nil {
		t.Fatalf("create tenant %s failed: %v", domain, err)
	}
	return tenant.TenantID
}

func TestRegisterMemberAgainstActiveTenant(t *testing.T) {
	service, _ := newTestService()
	tenantID := mustCreateTenant(t, service, "family.local")

	principal, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "Family.LOCAL",
		Email:        "new@x.com",
		Password:     "correct-horse",
		Name:         "New Member",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if principal.Role != authctx.RoleRestrictedMember {
		t.Fatalf("expected restricted_member role, got %s", principal.Role)
	}
	if principal.TenantID != tenantID {
		t.Fatalf("expected tenant %s, got %s", tenantID, principal.TenantID)
	}
	if !principal.Active {
		t.Fatalf("new member must be active")
	}
}

func TestRegisterMemberRejectsInactiveTenant(t *testing.T) {
	service, _ := newTestService()
	tenantID := mustCreateTenant(t, service, "family.local")
	if err := service.SetTenantActive(context.Background(), tenantID, false); err != nil {
		t.Fatalf("deactivate tenant failed: %v", err)
	}

	_, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family.local",
		Email:        "new@x.com",
		Password:     "correct-horse",
	})
	if !errors.Is(err, domainerrors.ErrTenantInactive) {
		t.Fatalf("expected ErrTenantInactive, got %v", err)
	}
}

func TestRegisterMemberEmailConflictIsGlobal(t *testing.T) {
	service, _ := newTestService()
	mustCreateTenant(t, service, "family-a.local")
	mustCreateTenant(t, service, "family-b.local")

	if _, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family-a.local",
		Email:        "dup@x.com",
		Password:     "correct-horse",
	}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family-b.local",
		Email:        "DUP@x.com",
		Password:     "correct-horse",
	})
	if !errors.Is(err, domainerrors.ErrEmailConflict) {
		t.Fatalf("expected ErrEmailConflict across tenants, got %v", err)
	}
}

func TestUsernameConflictIsPerTenant(t *testing.T) {
	service, _ := newTestService()
	mustCreateTenant(t, service, "family-a.local")
	mustCreateTenant(t, service, "family-b.local")

	if _, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family-a.local",
		Email:        "a@x.com",
		Username:     "kiddo",
		Password:     "correct-horse",
	}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family-a.local",
		Email:        "b@x.com",
		Username:     "Kiddo",
		Password:     "correct-horse",
	})
	if !errors.Is(err, domainerrors.ErrUsernameConflict) {
		t.Fatalf("expected ErrUsernameConflict within tenant, got %v", err)
	}

	if _, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family-b.local",
		Email:        "c@x.com",
		Username:     "kiddo",
		Password:     "correct-horse",
	}); err != nil {
		t.Fatalf("same username in another tenant must be allowed, got %v", err)
	}
}

func TestVerifyPasswordCollapsesFailureModes(t *testing.T) {
	service, _ := newTestService()
	mustCreateTenant(t, service, "family.local")
	if _, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family.local",
		Email:        "member@x.com",
		Password:     "correct-horse",
	}); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := service.VerifyPassword(context.Background(), "member@x.com", "wrong"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.VerifyPassword(context.Background(), "ghost@x.com", "correct-horse"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("unknown identifier: expected ErrInvalidCredentials, got %v", err)
	}

	principal, err := service.VerifyPassword(context.Background(), "MEMBER@x.com", "correct-horse")
	if err != nil {
		t.Fatalf("valid login failed: %v", err)
	}
	if principal.Email != "member@x.com" {
		t.Fatalf("unexpected principal %s", principal.Email)
	}
}

func TestCompleteExternalLoginMatchesExistingLink(t *testing.T) {
	service, _ := newTestService()
	mustCreateTenant(t, service, "family.local")

	login := ports.ExternalLogin{Provider: "google", SubjectID: "sub-1", Email: "ext@x.com", Name: "Ext"}
	first, err := service.CompleteExternalLogin(context.Background(), login, "family.local")
	if err != nil {
		t.Fatalf("first external login failed: %v", err)
	}
	if first.Role != authctx.RoleRestrictedMember || first.PasswordHash != "" {
		t.Fatalf("external principal must be a passwordless restricted member")
	}

	second, err := service.CompleteExternalLogin(context.Background(), login, "")
	if err != nil {
		t.Fatalf("repeat external login failed: %v", err)
	}
	if second.PrincipalID != first.PrincipalID {
		t.Fatalf("expected the linked principal, got %s and %s", first.PrincipalID, second.PrincipalID)
	}
}

func TestCompleteExternalLoginLinksByGlobalEmail(t *testing.T) {
	service, _ := newTestService()
	mustCreateTenant(t, service, "family.local")
	registered, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family.local",
		Email:        "linked@x.com",
		Password:     "correct-horse",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	matched, err := service.CompleteExternalLogin(context.Background(), ports.ExternalLogin{
		Provider:  "google",
		SubjectID: "sub-9",
		Email:     "Linked@X.com",
	}, "")
	if err != nil {
		t.Fatalf("external login failed: %v", err)
	}
	if matched.PrincipalID != registered.PrincipalID {
		t.Fatalf("expected email-matched principal")
	}

	again, err := service.CompleteExternalLogin(context.Background(), ports.ExternalLogin{
		Provider:  "google",
		SubjectID: "sub-9",
		Email:     "linked@x.com",
	}, "")
	if err != nil {
		t.Fatalf("linked login failed: %v", err)
	}
	if again.PrincipalID != registered.PrincipalID {
		t.Fatalf("expected identity link to persist")
	}
}

func TestCompleteExternalLoginRequiresTargetDomainForNewPrincipal(t *testing.T) {
	service, _ := newTestService()
	mustCreateTenant(t, service, "family.local")

	_, err := service.CompleteExternalLogin(context.Background(), ports.ExternalLogin{
		Provider:  "google",
		SubjectID: "sub-2",
		Email:     "fresh@x.com",
	}, "")
	if !errors.Is(err, domainerrors.ErrTenantDomainRequired) {
		t.Fatalf("expected ErrTenantDomainRequired, got %v", err)
	}
}

func TestCreatePrincipalEnforcesRoleTenantInvariant(t *testing.T) {
	service, _ := newTestService()
	tenantID := mustCreateTenant(t, service, "family.local")

	_, err := service.CreatePrincipal(context.Background(), CreatePrincipalInput{
		Email:    "root@x.com",
		Role:     authctx.RolePlatformOwner,
		TenantID: tenantID,
	})
	if !errors.Is(err, domainerrors.ErrRoleTenantMismatch) {
		t.Fatalf("platform owner with tenant: expected ErrRoleTenantMismatch, got %v", err)
	}

	_, err = service.CreatePrincipal(context.Background(), CreatePrincipalInput{
		Email: "owner@x.com",
		Role:  authctx.RoleTenantOwner,
	})
	if !errors.Is(err, domainerrors.ErrRoleTenantMismatch) {
		t.Fatalf("tenant owner without tenant: expected ErrRoleTenantMismatch, got %v", err)
	}

	if _, err := service.CreatePrincipal(context.Background(), CreatePrincipalInput{
		Email: "root@x.com",
		Role:  authctx.RolePlatformOwner,
	}); err != nil {
		t.Fatalf("tenantless platform owner must be valid, got %v", err)
	}
}

func TestDeleteTenantBlockedWhileActivePrincipalsRemain(t *testing.T) {
	service, _ := newTestService()
	tenantID := mustCreateTenant(t, service, "family.local")
	principal, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family.local",
		Email:        "member@x.com",
		Password:     "correct-horse",
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if err := service.DeleteTenant(context.Background(), tenantID); !errors.Is(err, domainerrors.ErrTenantHasActivePrincipals) {
		t.Fatalf("expected ErrTenantHasActivePrincipals, got %v", err)
	}

	if err := service.SetPrincipalActive(context.Background(), principal.PrincipalID, false); err != nil {
		t.Fatalf("deactivate principal failed: %v", err)
	}
	if err := service.DeleteTenant(context.Background(), tenantID); err != nil {
		t.Fatalf("delete after deactivation failed: %v", err)
	}
}

func TestUpdateTenantDomainRechecksUniqueness(t *testing.T) {
	service, _ := newTestService()
	mustCreateTenant(t, service, "family-a.local")
	tenantB := mustCreateTenant(t, service, "family-b.local")

	_, err := service.UpdateTenant(context.Background(), tenantB, UpdateTenantInput{Domain: "Family-A.LOCAL"})
	if !errors.Is(err, domainerrors.ErrDomainConflict) {
		t.Fatalf("expected ErrDomainConflict on rename, got %v", err)
	}
}

func TestRecordLoginIsBestEffort(t *testing.T) {
	service, _ := newTestService()
	// Unknown principal: the repository error must be swallowed.
	service.RecordLogin(context.Background(), "ghost", time.Now())
}

type capturingPublisher struct {
	published []events.Envelope
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, event events.Envelope) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func TestRegisterMemberAnnouncesOnBus(t *testing.T) {
	service, _ := newTestService()
	publisher := &capturingPublisher{}
	service.Events = publisher
	tenantID := mustCreateTenant(t, service, "family.local")

	principal, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family.local",
		Email:        "new@x.com",
		Password:     "long-enough-secret",
	})
	if err != nil {
		t.Fatalf("register member failed: %v", err)
	}

	if len(publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.published))
	}
	event := publisher.published[0]
	if event.EventType != TopicPrincipalRegistered {
		t.Fatalf("unexpected event type %q", event.EventType)
	}
	if event.TenantID != tenantID || event.EntityID != principal.PrincipalID {
		t.Fatalf("envelope does not reference the new principal: %+v", event)
	}
	payload, ok := event.Payload.(PrincipalRegisteredPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if payload.Origin != "self_registration" || payload.Email != "new@x.com" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestRegistrationSucceedsWhenAnnounceFails(t *testing.T) {
	service, _ := newTestService()
	service.Events = &capturingPublisher{err: errors.New("bus down")}
	mustCreateTenant(t, service, "family.local")

	if _, err := service.RegisterMember(context.Background(), RegisterMemberInput{
		TenantDomain: "family.local",
		Email:        "new@x.com",
		Password:     "long-enough-secret",
	}); err != nil {
		t.Fatalf("register member failed: %v", err)
	}
}
