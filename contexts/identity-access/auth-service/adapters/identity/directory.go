package identity

import (
	"context"
	"errors"
	"time"

	autherrors "kinkeep/contexts/identity-access/auth-service/domain/errors"
	"kinkeep/contexts/identity-access/auth-service/ports"
	"kinkeep/contexts/identity-access/identity-service/application"
	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	identityerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
	identityports "kinkeep/contexts/identity-access/identity-service/ports"
)

// Directory adapts the identity service onto this context's directory
// port, translating identity errors into authentication errors at the
// boundary.
type Directory struct {
	Identity application.Service
}

func (d Directory) PrincipalByID(ctx context.Context, principalID string) (ports.PrincipalRecord, error) {
	principal, err := d.Identity.GetPrincipal(ctx, principalID)
	if err != nil {
		if errors.Is(err, identityerrors.ErrPrincipalNotFound) {
			return ports.PrincipalRecord{}, autherrors.ErrPrincipalUnknown
		}
		return ports.PrincipalRecord{}, err
	}
	return principalRecord(principal), nil
}

func (d Directory) VerifyPassword(ctx context.Context, identifier string, password string) (ports.PrincipalRecord, error) {
	principal, err := d.Identity.VerifyPassword(ctx, identifier, password)
	if err != nil {
		if errors.Is(err, identityerrors.ErrInvalidCredentials) {
			return ports.PrincipalRecord{}, autherrors.ErrInvalidCredential
		}
		return ports.PrincipalRecord{}, err
	}
	return principalRecord(principal), nil
}

func (d Directory) CompleteExternalLogin(ctx context.Context, login ports.ExternalLogin, targetDomain string) (ports.PrincipalRecord, error) {
	principal, err := d.Identity.CompleteExternalLogin(ctx, identityports.ExternalLogin{
		Provider:  login.Provider,
		SubjectID: login.SubjectID,
		Email:     login.Email,
		Name:      login.Name,
	}, targetDomain)
	if err != nil {
		switch {
		case errors.Is(err, identityerrors.ErrTenantNotFound):
			return ports.PrincipalRecord{}, autherrors.ErrTenantUnknown
		case errors.Is(err, identityerrors.ErrTenantInactive):
			return ports.PrincipalRecord{}, autherrors.ErrTenantDisabled
		case errors.Is(err, identityerrors.ErrTenantDomainRequired),
			errors.Is(err, identityerrors.ErrInvalidRegistration):
			return ports.PrincipalRecord{}, autherrors.ErrInvalidCredential
		}
		return ports.PrincipalRecord{}, err
	}
	return principalRecord(principal), nil
}

func (d Directory) TenantByID(ctx context.Context, tenantID string) (ports.TenantRecord, error) {
	tenant, err := d.Identity.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, identityerrors.ErrTenantNotFound) {
			return ports.TenantRecord{}, autherrors.ErrTenantUnknown
		}
		return ports.TenantRecord{}, err
	}
	return ports.TenantRecord{
		TenantID: tenant.TenantID,
		Domain:   tenant.Domain,
		Active:   tenant.Active,
	}, nil
}

func (d Directory) RecordLogin(ctx context.Context, principalID string, at time.Time) {
	d.Identity.RecordLogin(ctx, principalID, at)
}

func principalRecord(principal entities.Principal) ports.PrincipalRecord {
	return ports.PrincipalRecord{
		PrincipalID: principal.PrincipalID,
		Email:       principal.Email,
		Name:        principal.Name,
		Role:        principal.Role,
		TenantID:    principal.TenantID,
		BirthDate:   principal.BirthDate,
		Active:      principal.Active,
	}
}
