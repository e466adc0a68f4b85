package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	domainerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
	"kinkeep/contexts/identity-access/identity-service/ports"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/events"
	"kinkeep/internal/shared/tenantscope"
)

const minPasswordLength = 8

// TopicPrincipalRegistered is the bus topic new memberships are announced on.
const TopicPrincipalRegistered = "principal.registered"

// PrincipalRegisteredPayload is the envelope payload for a new membership.
type PrincipalRegisteredPayload struct {
	PrincipalID string `json:"principal_id"`
	TenantID    string `json:"tenant_id"`
	Email       string `json:"email"`
	Origin      string `json:"origin"`
}

// Service owns principal and tenant lifecycle: registration, external
// identity linking, tenant management and credential verification.
type Service struct {
	Principals ports.PrincipalRepository
	Tenants    ports.TenantRepository
	Hasher     ports.PasswordHasher
	Events     ports.EventPublisher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// RegisterMemberInput is the tenant self-registration payload.
type RegisterMemberInput struct {
	TenantDomain string
	Email        string
	Username     string
	Password     string
	Name         string
	BirthDate    *time.Time
}

// RegisterMember creates a restricted member inside an existing active
// tenant. Email must be unused platform-wide; a supplied username must be
// unused within the tenant.
func (s Service) RegisterMember(ctx context.Context, input RegisterMemberInput) (entities.Principal, error) {
	email := normalizeEmail(input.Email)
	domain := normalizeDomain(input.TenantDomain)
	if email == "" || domain == "" || len(input.Password) < minPasswordLength {
		return entities.Principal{}, domainerrors.ErrInvalidRegistration
	}

	tenant, err := s.Tenants.GetTenantByDomain(ctx, domain)
	if err != nil {
		return entities.Principal{}, err
	}
	if !tenant.Active {
		return entities.Principal{}, domainerrors.ErrTenantInactive
	}

	hash, err := s.Hasher.Hash(input.Password)
	if err != nil {
		return entities.Principal{}, err
	}

	principal := entities.Principal{
		Email:        email,
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         authctx.RoleRestrictedMember,
		TenantID:     tenant.TenantID,
		BirthDate:    input.BirthDate,
		Active:       true,
	}
	created, err := s.createPrincipal(ctx, principal)
	if err != nil {
		return entities.Principal{}, err
	}

	resolveLogger(s.Logger).Info("member registered",
		"event", "identity_member_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"principal_id", created.PrincipalID,
		"tenant_id", created.TenantID,
	)
	s.publishRegistered(ctx, created, "self_registration")
	return created, nil
}

// CreatePrincipalInput is the administrative creation payload.
type CreatePrincipalInput struct {
	Email     string
	Username  string
	Password  string
	Name      string
	Role      authctx.Role
	TenantID  string
	BirthDate *time.Time
}

// CreatePrincipal creates a principal with any role. The role/tenant
// invariant is enforced here and again at the repository boundary.
func (s Service) CreatePrincipal(ctx context.Context, input CreatePrincipalInput) (entities.Principal, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return entities.Principal{}, domainerrors.ErrInvalidRegistration
	}
	if !input.Role.Valid() {
		return entities.Principal{}, domainerrors.ErrInvalidRole
	}

	var hash string
	if input.Password != "" {
		if len(input.Password) < minPasswordLength {
			return entities.Principal{}, domainerrors.ErrInvalidRegistration
		}
		var err error
		hash, err = s.Hasher.Hash(input.Password)
		if err != nil {
			return entities.Principal{}, err
		}
	}

	return s.createPrincipal(ctx, entities.Principal{
		Email:        email,
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		TenantID:     strings.TrimSpace(input.TenantID),
		BirthDate:    input.BirthDate,
		Active:       true,
	})
}

func (s Service) createPrincipal(ctx context.Context, principal entities.Principal) (entities.Principal, error) {
	if err := checkRoleTenant(principal.Role, principal.TenantID); err != nil {
		return entities.Principal{}, err
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Principal{}, err
	}
	now := s.now()
	principal.PrincipalID = id
	principal.CreatedAt = now
	principal.UpdatedAt = now

	if err := s.Principals.CreatePrincipal(ctx, principal); err != nil {
		return entities.Principal{}, err
	}
	return principal, nil
}

// VerifyPassword checks an internal password credential. Unknown identifier,
// wrong password and missing password hash all collapse into
// ErrInvalidCredentials so accounts cannot be enumerated.
func (s Service) VerifyPassword(ctx context.Context, identifier string, password string) (entities.Principal, error) {
	principal, err := s.Principals.GetPrincipalByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, domainerrors.ErrPrincipalNotFound) {
			return entities.Principal{}, domainerrors.ErrInvalidCredentials
		}
		return entities.Principal{}, err
	}
	if principal.PasswordHash == "" {
		return entities.Principal{}, domainerrors.ErrInvalidCredentials
	}
	if err := s.Hasher.Compare(principal.PasswordHash, password); err != nil {
		return entities.Principal{}, domainerrors.ErrInvalidCredentials
	}
	return principal, nil
}

// CompleteExternalLogin lands a verified external identity on a principal:
// an existing link wins, then a global email match gets the identity linked,
// otherwise a new restricted member is created in the target tenant.
func (s Service) CompleteExternalLogin(ctx context.Context, login ports.ExternalLogin, targetDomain string) (entities.Principal, error) {
	provider := strings.ToLower(strings.TrimSpace(login.Provider))
	subject := strings.TrimSpace(login.SubjectID)
	email := normalizeEmail(login.Email)
	if provider == "" || subject == "" || email == "" {
		return entities.Principal{}, domainerrors.ErrInvalidRegistration
	}

	if principal, err := s.Principals.GetPrincipalByExternalIdentity(ctx, provider, subject); err == nil {
		return principal, nil
	} else if !errors.Is(err, domainerrors.ErrPrincipalNotFound) {
		return entities.Principal{}, err
	}

	if principal, err := s.Principals.GetPrincipalByIdentifier(ctx, email); err == nil {
		if err := s.Principals.LinkExternalIdentity(ctx, entities.ExternalIdentity{
			PrincipalID: principal.PrincipalID,
			Provider:    provider,
			SubjectID:   subject,
			LinkedAt:    s.now(),
		}); err != nil {
			return entities.Principal{}, err
		}
		resolveLogger(s.Logger).Info("external identity linked",
			"event", "identity_external_linked",
			"module", "identity-access/identity-service",
			"layer", "application",
			"principal_id", principal.PrincipalID,
			"provider", provider,
		)
		return principal, nil
	} else if !errors.Is(err, domainerrors.ErrPrincipalNotFound) {
		return entities.Principal{}, err
	}

	domain := normalizeDomain(targetDomain)
	if domain == "" {
		return entities.Principal{}, domainerrors.ErrTenantDomainRequired
	}
	tenant, err := s.Tenants.GetTenantByDomain(ctx, domain)
	if err != nil {
		return entities.Principal{}, err
	}
	if !tenant.Active {
		return entities.Principal{}, domainerrors.ErrTenantInactive
	}

	principal, err := s.createPrincipal(ctx, entities.Principal{
		Email:    email,
		Name:     strings.TrimSpace(login.Name),
		Role:     authctx.RoleRestrictedMember,
		TenantID: tenant.TenantID,
		Active:   true,
	})
	if err != nil {
		return entities.Principal{}, err
	}
	if err := s.Principals.LinkExternalIdentity(ctx, entities.ExternalIdentity{
		PrincipalID: principal.PrincipalID,
		Provider:    provider,
		SubjectID:   subject,
		LinkedAt:    s.now(),
	}); err != nil {
		return entities.Principal{}, err
	}
	s.publishRegistered(ctx, principal, "external_login")
	return principal, nil
}

// publishRegistered announces a new membership on the bus. Best effort:
// a failed or absent publisher never affects the registration outcome.
func (s Service) publishRegistered(ctx context.Context, principal entities.Principal, origin string) {
	if s.Events == nil {
		return
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		eventID = principal.PrincipalID
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      TopicPrincipalRegistered,
		SourceService:  "identity-access/identity-service",
		OccurredAtUTC:  s.now(),
		TenantID:       principal.TenantID,
		EntityType:     "principal",
		EntityID:       principal.PrincipalID,
		PayloadVersion: 1,
		Payload: PrincipalRegisteredPayload{
			PrincipalID: principal.PrincipalID,
			TenantID:    principal.TenantID,
			Email:       principal.Email,
			Origin:      origin,
		},
	}
	if err := s.Events.Publish(ctx, TopicPrincipalRegistered, envelope); err != nil {
		resolveLogger(s.Logger).Warn("registration announce failed",
			"event", "identity_registered_publish_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"principal_id", principal.PrincipalID,
			"error", err.Error(),
		)
	}
}

func (s Service) GetPrincipal(ctx context.Context, principalID string) (entities.Principal, error) {
	return s.Principals.GetPrincipal(ctx, strings.TrimSpace(principalID))
}

func (s Service) ListPrincipals(ctx context.Context, scope tenantscope.Scope) ([]entities.Principal, error) {
	return s.Principals.ListPrincipals(ctx, scope)
}

// UpdateProfileInput carries profile mutations; nil pointers leave the
// current value untouched.
type UpdateProfileInput struct {
	Name      *string
	Username  *string
	BirthDate *time.Time
}

func (s Service) UpdateProfile(ctx context.Context, principalID string, input UpdateProfileInput) (entities.Principal, error) {
	principal, err := s.Principals.GetPrincipal(ctx, strings.TrimSpace(principalID))
	if err != nil {
		return entities.Principal{}, err
	}
	if input.Name != nil {
		principal.Name = strings.TrimSpace(*input.Name)
	}
	if input.Username != nil {
		principal.Username = strings.TrimSpace(*input.Username)
	}
	if input.BirthDate != nil {
		birth := *input.BirthDate
		principal.BirthDate = &birth
	}
	principal.UpdatedAt = s.now()
	if err := s.Principals.UpdatePrincipal(ctx, principal); err != nil {
		return entities.Principal{}, err
	}
	return principal, nil
}

func (s Service) ChangePassword(ctx context.Context, principalID string, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return domainerrors.ErrInvalidProfile
	}
	principal, err := s.Principals.GetPrincipal(ctx, strings.TrimSpace(principalID))
	if err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	principal.PasswordHash = hash
	principal.UpdatedAt = s.now()
	return s.Principals.UpdatePrincipal(ctx, principal)
}

// ChangeRole switches a principal's role within the closed set. Moving into
// or out of platform_owner is rejected because it would break the role/tenant
// invariant for an existing record.
func (s Service) ChangeRole(ctx context.Context, principalID string, role authctx.Role) (entities.Principal, error) {
	if !role.Valid() {
		return entities.Principal{}, domainerrors.ErrInvalidRole
	}
	principal, err := s.Principals.GetPrincipal(ctx, strings.TrimSpace(principalID))
	if err != nil {
		return entities.Principal{}, err
	}
	if err := checkRoleTenant(role, principal.TenantID); err != nil {
		return entities.Principal{}, err
	}
	principal.Role = role
	principal.UpdatedAt = s.now()
	if err := s.Principals.UpdatePrincipal(ctx, principal); err != nil {
		return entities.Principal{}, err
	}
	return principal, nil
}

func (s Service) SetPrincipalActive(ctx context.Context, principalID string, active bool) error {
	return s.Principals.SetPrincipalActive(ctx, strings.TrimSpace(principalID), active, s.now())
}

func (s Service) DeletePrincipal(ctx context.Context, principalID string) error {
	return s.Principals.DeletePrincipal(ctx, strings.TrimSpace(principalID))
}

// RecordLogin stamps last-login bookkeeping. Failures are logged and
// swallowed; this must never affect an authentication outcome.
func (s Service) RecordLogin(ctx context.Context, principalID string, at time.Time) {
	if err := s.Principals.RecordLogin(ctx, principalID, at); err != nil {
		resolveLogger(s.Logger).Warn("last-login bookkeeping failed",
			"event", "identity_record_login_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"principal_id", principalID,
			"error", err.Error(),
		)
	}
}

// CreateTenantInput is the tenant creation payload.
type CreateTenantInput struct {
	Domain string
	Name   string
}

func (s Service) CreateTenant(ctx context.Context, input CreateTenantInput) (entities.Tenant, error) {
	domain := normalizeDomain(input.Domain)
	if domain == "" {
		return entities.Tenant{}, domainerrors.ErrInvalidTenant
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Tenant{}, err
	}
	now := s.now()
	tenant := entities.Tenant{
		TenantID:  id,
		Domain:    domain,
		Name:      strings.TrimSpace(input.Name),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Tenants.CreateTenant(ctx, tenant); err != nil {
		return entities.Tenant{}, err
	}
	return tenant, nil
}

func (s Service) GetTenant(ctx context.Context, tenantID string) (entities.Tenant, error) {
	return s.Tenants.GetTenant(ctx, strings.TrimSpace(tenantID))
}

func (s Service) GetTenantByDomain(ctx context.Context, domain string) (entities.Tenant, error) {
	return s.Tenants.GetTenantByDomain(ctx, normalizeDomain(domain))
}

func (s Service) ListTenants(ctx context.Context) ([]entities.Tenant, error) {
	return s.Tenants.ListTenants(ctx)
}

// UpdateTenantInput carries rename/domain-change mutations; empty fields keep
// the current value. A domain change re-checks uniqueness at the repository.
type UpdateTenantInput struct {
	Domain string
	Name   string
}

func (s Service) UpdateTenant(ctx context.Context, tenantID string, input UpdateTenantInput) (entities.Tenant, error) {
	tenant, err := s.Tenants.GetTenant(ctx, strings.TrimSpace(tenantID))
	if err != nil {
		return entities.Tenant{}, err
	}
	if domain := normalizeDomain(input.Domain); domain != "" {
		tenant.Domain = domain
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		tenant.Name = name
	}
	tenant.UpdatedAt = s.now()
	if err := s.Tenants.UpdateTenant(ctx, tenant); err != nil {
		return entities.Tenant{}, err
	}
	return tenant, nil
}

func (s Service) SetTenantActive(ctx context.Context, tenantID string, active bool) error {
	return s.Tenants.SetTenantActive(ctx, strings.TrimSpace(tenantID), active, s.now())
}

// DeleteTenant removes a tenant record. Deletion is blocked while active
// principals remain; they must be deactivated or reassigned first.
func (s Service) DeleteTenant(ctx context.Context, tenantID string) error {
	tenantID = strings.TrimSpace(tenantID)
	count, err := s.Principals.CountActivePrincipals(ctx, tenantID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrTenantHasActivePrincipals
	}
	return s.Tenants.DeleteTenant(ctx, tenantID)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func checkRoleTenant(role authctx.Role, tenantID string) error {
	if !role.Valid() {
		return domainerrors.ErrInvalidRole
	}
	if role.RequiresTenant() == (tenantID == "") {
		return domainerrors.ErrRoleTenantMismatch
	}
	return nil
}

func normalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

func normalizeDomain(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
