package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"kinkeep/contexts/identity-access/identity-service/application"
	"kinkeep/contexts/identity-access/identity-service/domain/entities"
	domainerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
	httptransport "kinkeep/contexts/identity-access/identity-service/transport/http"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"
)

// Handler maps HTTP DTOs to identity application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterMemberHandler(ctx context.Context, request httptransport.RegisterMemberRequest) (httptransport.PrincipalDTO, error) {
	birthDate, err := parseBirthDate(request.BirthDate)
	if err != nil {
		return httptransport.PrincipalDTO{}, domainerrors.ErrInvalidRegistration
	}

	principal, err := h.Service.RegisterMember(ctx, application.RegisterMemberInput{
		TenantDomain: request.TenantDomain,
		Email:        request.Email,
		Username:     request.Username,
		Password:     request.Password,
		Name:         request.Name,
		BirthDate:    birthDate,
	})
	if err != nil {
		h.logger().Debug("member registration rejected",
			"event", "identity_http_register_rejected",
			"module", "identity-access/identity-service",
			"layer", "transport",
			"tenant_domain", request.TenantDomain,
			"error", err.Error(),
		)
		return httptransport.PrincipalDTO{}, err
	}
	return principalDTO(principal), nil
}

func (h Handler) CreatePrincipalHandler(ctx context.Context, request httptransport.CreatePrincipalRequest) (httptransport.PrincipalDTO, error) {
	role, ok := authctx.ParseRole(request.Role)
	if !ok {
		return httptransport.PrincipalDTO{}, domainerrors.ErrInvalidRole
	}
	birthDate, err := parseBirthDate(request.BirthDate)
	if err != nil {
		return httptransport.PrincipalDTO{}, domainerrors.ErrInvalidRegistration
	}

	principal, err := h.Service.CreatePrincipal(ctx, application.CreatePrincipalInput{
		Email:     request.Email,
		Username:  request.Username,
		Password:  request.Password,
		Name:      request.Name,
		Role:      role,
		TenantID:  request.TenantID,
		BirthDate: birthDate,
	})
	if err != nil {
		return httptransport.PrincipalDTO{}, err
	}
	return principalDTO(principal), nil
}

func (h Handler) GetPrincipalHandler(ctx context.Context, caller authctx.Principal, principalID string) (httptransport.PrincipalDTO, error) {
	principal, err := h.Service.GetPrincipal(ctx, principalID)
	if err != nil {
		return httptransport.PrincipalDTO{}, err
	}
	// Principals are tenant-owned records: outside the caller's scope they do
	// not exist.
	if !tenantscope.ForPrincipal(caller).Visible(principal.TenantID) {
		return httptransport.PrincipalDTO{}, domainerrors.ErrPrincipalNotFound
	}
	return principalDTO(principal), nil
}

func (h Handler) ListPrincipalsHandler(ctx context.Context, caller authctx.Principal, targetTenantID string) (httptransport.ListPrincipalsResponse, error) {
	scope := tenantscope.ForTenant(caller, targetTenantID)
	principals, err := h.Service.ListPrincipals(ctx, scope)
	if err != nil {
		return httptransport.ListPrincipalsResponse{}, err
	}

	response := httptransport.ListPrincipalsResponse{Principals: make([]httptransport.PrincipalDTO, 0, len(principals))}
	for _, principal := range principals {
		response.Principals = append(response.Principals, principalDTO(principal))
	}
	return response, nil
}

func (h Handler) UpdateProfileHandler(ctx context.Context, caller authctx.Principal, principalID string, request httptransport.UpdateProfileRequest) (httptransport.PrincipalDTO, error) {
	if _, err := h.GetPrincipalHandler(ctx, caller, principalID); err != nil {
		return httptransport.PrincipalDTO{}, err
	}

	input := application.UpdateProfileInput{
		Name:     request.Name,
		Username: request.Username,
	}
	if request.BirthDate != nil {
		birthDate, err := parseBirthDate(*request.BirthDate)
		if err != nil || birthDate == nil {
			return httptransport.PrincipalDTO{}, domainerrors.ErrInvalidProfile
		}
		input.BirthDate = birthDate
	}

	principal, err := h.Service.UpdateProfile(ctx, principalID, input)
	if err != nil {
		return httptransport.PrincipalDTO{}, err
	}
	return principalDTO(principal), nil
}

func (h Handler) ChangeRoleHandler(ctx context.Context, caller authctx.Principal, principalID string, request httptransport.ChangeRoleRequest) (httptransport.PrincipalDTO, error) {
	if _, err := h.GetPrincipalHandler(ctx, caller, principalID); err != nil {
		return httptransport.PrincipalDTO{}, err
	}
	role, ok := authctx.ParseRole(request.Role)
	if !ok {
		return httptransport.PrincipalDTO{}, domainerrors.ErrInvalidRole
	}

	principal, err := h.Service.ChangeRole(ctx, principalID, role)
	if err != nil {
		return httptransport.PrincipalDTO{}, err
	}
	return principalDTO(principal), nil
}

func (h Handler) SetPrincipalActiveHandler(ctx context.Context, caller authctx.Principal, principalID string, request httptransport.SetActiveRequest) error {
	if _, err := h.GetPrincipalHandler(ctx, caller, principalID); err != nil {
		return err
	}
	return h.Service.SetPrincipalActive(ctx, principalID, request.Active)
}

func (h Handler) DeletePrincipalHandler(ctx context.Context, caller authctx.Principal, principalID string) error {
	if _, err := h.GetPrincipalHandler(ctx, caller, principalID); err != nil {
		return err
	}
	return h.Service.DeletePrincipal(ctx, principalID)
}

func (h Handler) CreateTenantHandler(ctx context.Context, request httptransport.CreateTenantRequest) (httptransport.TenantDTO, error) {
	tenant, err := h.Service.CreateTenant(ctx, application.CreateTenantInput{
		Domain: request.Domain,
		Name:   request.Name,
	})
	if err != nil {
		return httptransport.TenantDTO{}, err
	}
	h.logger().Info("tenant created",
		"event", "identity_http_tenant_created",
		"module", "identity-access/identity-service",
		"layer", "transport",
		"tenant_id", tenant.TenantID,
		"domain", tenant.Domain,
	)
	return tenantDTO(tenant), nil
}

func (h Handler) GetTenantHandler(ctx context.Context, tenantID string) (httptransport.TenantDTO, error) {
	tenant, err := h.Service.GetTenant(ctx, tenantID)
	if err != nil {
		return httptransport.TenantDTO{}, err
	}
	return tenantDTO(tenant), nil
}

func (h Handler) ListTenantsHandler(ctx context.Context) (httptransport.ListTenantsResponse, error) {
	tenants, err := h.Service.ListTenants(ctx)
	if err != nil {
		return httptransport.ListTenantsResponse{}, err
	}

	response := httptransport.ListTenantsResponse{Tenants: make([]httptransport.TenantDTO, 0, len(tenants))}
	for _, tenant := range tenants {
		response.Tenants = append(response.Tenants, tenantDTO(tenant))
	}
	return response, nil
}

func (h Handler) UpdateTenantHandler(ctx context.Context, tenantID string, request httptransport.UpdateTenantRequest) (httptransport.TenantDTO, error) {
	tenant, err := h.Service.UpdateTenant(ctx, tenantID, application.UpdateTenantInput{
		Domain: request.Domain,
		Name:   request.Name,
	})
	if err != nil {
		return httptransport.TenantDTO{}, err
	}
	return tenantDTO(tenant), nil
}

func (h Handler) SetTenantActiveHandler(ctx context.Context, tenantID string, request httptransport.SetActiveRequest) error {
	return h.Service.SetTenantActive(ctx, tenantID, request.Active)
}

func (h Handler) DeleteTenantHandler(ctx context.Context, tenantID string) error {
	return h.Service.DeleteTenant(ctx, tenantID)
}

func (h Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func principalDTO(principal entities.Principal) httptransport.PrincipalDTO {
	dto := httptransport.PrincipalDTO{
		PrincipalID: principal.PrincipalID,
		Email:       principal.Email,
		Username:    principal.Username,
		Name:        principal.Name,
		Role:        string(principal.Role),
		TenantID:    principal.TenantID,
		Active:      principal.Active,
		LastLoginAt: principal.LastLoginAt,
		CreatedAt:   principal.CreatedAt,
	}
	if principal.BirthDate != nil {
		dto.BirthDate = principal.BirthDate.Format(httptransport.BirthDateLayout)
	}
	return dto
}

func tenantDTO(tenant entities.Tenant) httptransport.TenantDTO {
	return httptransport.TenantDTO{
		TenantID:  tenant.TenantID,
		Domain:    tenant.Domain,
		Name:      tenant.Name,
		Active:    tenant.Active,
		CreatedAt: tenant.CreatedAt,
	}
}

func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(httptransport.BirthDateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
