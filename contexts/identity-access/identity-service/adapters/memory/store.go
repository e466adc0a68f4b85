package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	domainerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
	"kinkeep/internal/shared/tenantscope"
)

// Store is an in-memory adapter implementing the principal and tenant
// repositories plus clock/id ports. It is intended for tests and local
// development wiring.
type Store struct {
	mu sync.RWMutex

	principals map[string]entities.Principal
	tenants    map[string]entities.Tenant
	externals  map[string]entities.ExternalIdentity // provider|subject -> link
}

func NewStore() *Store {
	return &Store{
		principals: make(map[string]entities.Principal),
		tenants:    make(map[string]entities.Tenant),
		externals:  make(map[string]entities.ExternalIdentity),
	}
}

// Now implements the Clock port.
func (s *Store) Now() time.Time { return time.Now().UTC() }

// NewID implements the IDGenerator port.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) GetPrincipal(_ context.Context, principalID string) (entities.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	principal, ok := s.principals[principalID]
	if !ok {
		return entities.Principal{}, domainerrors.ErrPrincipalNotFound
	}
	return principal, nil
}

func (s *Store) GetPrincipalByIdentifier(_ context.Context, identifier string) (entities.Principal, error) {
	needle := strings.ToLower(strings.TrimSpace(identifier))
	if needle == "" {
		return entities.Principal{}, domainerrors.ErrPrincipalNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, principal := range s.principals {
		if strings.ToLower(principal.Email) == needle {
			return principal, nil
		}
		if principal.Username != "" && strings.ToLower(principal.Username) == needle {
			return principal, nil
		}
	}
	return entities.Principal{}, domainerrors.ErrPrincipalNotFound
}

func (s *Store) GetPrincipalByExternalIdentity(_ context.Context, provider string, subjectID string) (entities.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.externals[externalKey(provider, subjectID)]
	if !ok {
		return entities.Principal{}, domainerrors.ErrPrincipalNotFound
	}
	principal, ok := s.principals[link.PrincipalID]
	if !ok {
		return entities.Principal{}, domainerrors.ErrPrincipalNotFound
	}
	return principal, nil
}

func (s *Store) ListPrincipals(_ context.Context, scope tenantscope.Scope) ([]entities.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Principal, 0)
	for _, principal := range s.principals {
		if !scope.Visible(principal.TenantID) {
			continue
		}
		items = append(items, principal)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
	return items, nil
}

func (s *Store) CountActivePrincipals(_ context.Context, tenantID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, principal := range s.principals {
		if principal.TenantID == tenantID && principal.Active {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreatePrincipal(_ context.Context, principal entities.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPrincipalUniqueness(principal); err != nil {
		return err
	}
	s.principals[principal.PrincipalID] = principal
	return nil
}

func (s *Store) UpdatePrincipal(_ context.Context, principal entities.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.principals[principal.PrincipalID]; !ok {
		return domainerrors.ErrPrincipalNotFound
	}
	if err := s.checkPrincipalUniqueness(principal); err != nil {
		return err
	}
	s.principals[principal.PrincipalID] = principal
	return nil
}

func (s *Store) SetPrincipalActive(_ context.Context, principalID string, active bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	principal, ok := s.principals[principalID]
	if !ok {
		return domainerrors.ErrPrincipalNotFound
	}
	principal.Active = active
	principal.UpdatedAt = now
	s.principals[principalID] = principal
	return nil
}

func (s *Store) DeletePrincipal(_ context.Context, principalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.principals[principalID]; !ok {
		return domainerrors.ErrPrincipalNotFound
	}
	for _, link := range s.externals {
		if link.PrincipalID == principalID {
			return domainerrors.ErrPrincipalHasDependents
		}
	}
	delete(s.principals, principalID)
	return nil
}

func (s *Store) LinkExternalIdentity(_ context.Context, link entities.ExternalIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := externalKey(link.Provider, link.SubjectID)
	if existing, ok := s.externals[key]; ok && existing.PrincipalID != link.PrincipalID {
		return domainerrors.ErrExternalIdentityConflict
	}
	s.externals[key] = link
	return nil
}

func (s *Store) RecordLogin(_ context.Context, principalID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	principal, ok := s.principals[principalID]
	if !ok {
		return domainerrors.ErrPrincipalNotFound
	}
	stamp := at
	principal.LastLoginAt = &stamp
	s.principals[principalID] = principal
	return nil
}

func (s *Store) GetTenant(_ context.Context, tenantID string) (entities.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[tenantID]
	if !ok {
		return entities.Tenant{}, domainerrors.ErrTenantNotFound
	}
	return tenant, nil
}

func (s *Store) GetTenantByDomain(_ context.Context, domain string) (entities.Tenant, error) {
	needle := strings.ToLower(strings.TrimSpace(domain))

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tenant := range s.tenants {
		if strings.ToLower(tenant.Domain) == needle {
			return tenant, nil
		}
	}
	return entities.Tenant{}, domainerrors.ErrTenantNotFound
}

func (s *Store) ListTenants(_ context.Context) ([]entities.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Tenant, 0, len(s.tenants))
	for _, tenant := range s.tenants {
		items = append(items, tenant)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Domain < items[j].Domain })
	return items, nil
}

func (s *Store) CreateTenant(_ context.Context, tenant entities.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.tenants {
		if strings.EqualFold(existing.Domain, tenant.Domain) {
			return domainerrors.ErrDomainConflict
		}
	}
	s.tenants[tenant.TenantID] = tenant
	return nil
}

func (s *Store) UpdateTenant(_ context.Context, tenant entities.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenant.TenantID]; !ok {
		return domainerrors.ErrTenantNotFound
	}
	for id, existing := range s.tenants {
		if id != tenant.TenantID && strings.EqualFold(existing.Domain, tenant.Domain) {
			return domainerrors.ErrDomainConflict
		}
	}
	s.tenants[tenant.TenantID] = tenant
	return nil
}

func (s *Store) SetTenantActive(_ context.Context, tenantID string, active bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tenant, ok := s.tenants[tenantID]
	if !ok {
		return domainerrors.ErrTenantNotFound
	}
	tenant.Active = active
	tenant.UpdatedAt = now
	s.tenants[tenantID] = tenant
	return nil
}

func (s *Store) DeleteTenant(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenantID]; !ok {
		return domainerrors.ErrTenantNotFound
	}
	delete(s.tenants, tenantID)
	return nil
}

// checkPrincipalUniqueness must be called with the write lock held.
func (s *Store) checkPrincipalUniqueness(candidate entities.Principal) error {
	for id, existing := range s.principals {
		if id == candidate.PrincipalID {
			continue
		}
		if strings.EqualFold(existing.Email, candidate.Email) {
			return domainerrors.ErrEmailConflict
		}
		if candidate.Username != "" &&
			existing.TenantID == candidate.TenantID &&
			strings.EqualFold(existing.Username, candidate.Username) {
			return domainerrors.ErrUsernameConflict
		}
	}
	return nil
}

func externalKey(provider string, subjectID string) string {
	return strings.ToLower(strings.TrimSpace(provider)) + "|" + strings.TrimSpace(subjectID)
}
