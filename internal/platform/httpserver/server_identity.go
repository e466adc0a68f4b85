package httpserver

import (
	"errors"
	"net/http"

	identityerrors "kinkeep/contexts/identity-access/identity-service/domain/errors"
	identityhttp "kinkeep/contexts/identity-access/identity-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

const (
	actionPrincipalManage = "principal:manage"
	actionTenantManage    = "tenant:manage"
)

func (s *Server) registerIdentityRoutes() {
	// Registration is the one public identity route: a new member joins
	// an existing family by its domain.
	s.mux.HandleFunc("POST /api/identity/v1/register", s.handleRegisterMember)

	s.mux.HandleFunc("GET /api/identity/v1/principals", s.authed(s.handleListPrincipals))
	s.mux.HandleFunc("POST /api/identity/v1/principals", s.authed(s.handleCreatePrincipal))
	s.mux.HandleFunc("GET /api/identity/v1/principals/{principal_id}", s.authed(s.handleGetPrincipal))
	s.mux.HandleFunc("PATCH /api/identity/v1/principals/{principal_id}", s.authed(s.handleUpdateProfile))
	s.mux.HandleFunc("POST /api/identity/v1/principals/{principal_id}/role", s.authed(s.handleChangeRole))
	s.mux.HandleFunc("POST /api/identity/v1/principals/{principal_id}/active", s.authed(s.handleSetPrincipalActive))
	s.mux.HandleFunc("DELETE /api/identity/v1/principals/{principal_id}", s.authed(s.handleDeletePrincipal))

	s.mux.HandleFunc("GET /api/identity/v1/tenants", s.authed(s.handleListTenants))
	s.mux.HandleFunc("POST /api/identity/v1/tenants", s.authed(s.handleCreateTenant))
	s.mux.HandleFunc("GET /api/identity/v1/tenants/{tenant_id}", s.authed(s.handleGetTenant))
	s.mux.HandleFunc("PATCH /api/identity/v1/tenants/{tenant_id}", s.authed(s.handleUpdateTenant))
	s.mux.HandleFunc("POST /api/identity/v1/tenants/{tenant_id}/active", s.authed(s.handleSetTenantActive))
	s.mux.HandleFunc("DELETE /api/identity/v1/tenants/{tenant_id}", s.authed(s.handleDeleteTenant))
}

func (s *Server) handleRegisterMember(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.RegisterMemberRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	resp, err := s.identity.Handler.RegisterMemberHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPrincipals(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !s.requireCapability(w, caller, actionPrincipalManage, writeIdentityError) {
		return
	}
	resp, err := s.identity.Handler.ListPrincipalsHandler(r.Context(), caller, r.URL.Query().Get("tenantId"))
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePrincipal(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !s.requireCapability(w, caller, actionPrincipalManage, writeIdentityError) {
		return
	}
	var req identityhttp.CreatePrincipalRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	// Tenant administrators create members inside their own tenant only.
	if !caller.IsPlatformOwner() {
		req.TenantID = caller.TenantID
	}
	resp, err := s.identity.Handler.CreatePrincipalHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPrincipal(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !s.requireCapability(w, caller, actionPrincipalManage, writeIdentityError) {
		return
	}
	resp, err := s.identity.Handler.GetPrincipalHandler(r.Context(), caller, r.PathValue("principal_id"))
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	principalID := r.PathValue("principal_id")
	// Editing your own profile needs no capability.
	if caller.PrincipalID != principalID {
		if !s.requireCapability(w, caller, actionPrincipalManage, writeIdentityError) {
			return
		}
	}
	var req identityhttp.UpdateProfileRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	resp, err := s.identity.Handler.UpdateProfileHandler(r.Context(), caller, principalID, req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeRole(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !s.requireCapability(w, caller, actionPrincipalManage, writeIdentityError) {
		return
	}
	var req identityhttp.ChangeRoleRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	resp, err := s.identity.Handler.ChangeRoleHandler(r.Context(), caller, r.PathValue("principal_id"), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetPrincipalActive(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !s.requireCapability(w, caller, actionPrincipalManage, writeIdentityError) {
		return
	}
	var req identityhttp.SetActiveRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	if err := s.identity.Handler.SetPrincipalActiveHandler(r.Context(), caller, r.PathValue("principal_id"), req); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePrincipal(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !s.requireCapability(w, caller, actionPrincipalManage, writeIdentityError) {
		return
	}
	if err := s.identity.Handler.DeletePrincipalHandler(r.Context(), caller, r.PathValue("principal_id")); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTenants(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !requirePlatformOwner(w, caller) {
		return
	}
	resp, err := s.identity.Handler.ListTenantsHandler(r.Context())
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTenant(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !requirePlatformOwner(w, caller) {
		return
	}
	var req identityhttp.CreateTenantRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	resp, err := s.identity.Handler.CreateTenantHandler(r.Context(), req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetTenant(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	tenantID, ok := s.resolveTenantRoute(w, r, caller)
	if !ok {
		return
	}
	resp, err := s.identity.Handler.GetTenantHandler(r.Context(), tenantID)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTenant(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	tenantID, ok := s.resolveTenantRoute(w, r, caller)
	if !ok {
		return
	}
	var req identityhttp.UpdateTenantRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	resp, err := s.identity.Handler.UpdateTenantHandler(r.Context(), tenantID, req)
	if err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetTenantActive(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	// Reactivating a disabled tenant cannot be done from inside it, so
	// flipping the switch is a platform concern.
	if !requirePlatformOwner(w, caller) {
		return
	}
	var req identityhttp.SetActiveRequest
	if !s.decodeJSON(w, r, &req, writeIdentityError) {
		return
	}
	if err := s.identity.Handler.SetTenantActiveHandler(r.Context(), r.PathValue("tenant_id"), req); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTenant(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if !requirePlatformOwner(w, caller) {
		return
	}
	if err := s.identity.Handler.DeleteTenantHandler(r.Context(), r.PathValue("tenant_id")); err != nil {
		writeIdentityDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveTenantRoute gates a per-tenant route: tenant owners manage
// their own tenant, the platform owner any. A foreign tenant id is a
// plain not-found.
func (s *Server) resolveTenantRoute(w http.ResponseWriter, r *http.Request, caller authctx.Principal) (string, bool) {
	if !s.requireCapability(w, caller, actionTenantManage, writeIdentityError) {
		return "", false
	}
	tenantID := r.PathValue("tenant_id")
	if !caller.IsPlatformOwner() && tenantID != caller.TenantID {
		writeIdentityError(w, http.StatusNotFound, "not_found", identityerrors.ErrTenantNotFound.Error())
		return "", false
	}
	return tenantID, true
}

func requirePlatformOwner(w http.ResponseWriter, caller authctx.Principal) bool {
	if !caller.IsPlatformOwner() {
		writeIdentityError(w, http.StatusForbidden, "role_not_permitted", "platform owner role is required")
		return false
	}
	return true
}

func writeIdentityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{Code: code, Message: message})
}

func writeIdentityDomainError(w http.ResponseWriter, err error) {
	if writeAccessDeniedError(w, err, writeIdentityError) {
		return
	}
	switch {
	case errors.Is(err, identityerrors.ErrPrincipalNotFound),
		errors.Is(err, identityerrors.ErrTenantNotFound):
		writeIdentityError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, identityerrors.ErrEmailConflict):
		writeIdentityError(w, http.StatusConflict, "email_conflict", err.Error())
	case errors.Is(err, identityerrors.ErrUsernameConflict):
		writeIdentityError(w, http.StatusConflict, "username_conflict", err.Error())
	case errors.Is(err, identityerrors.ErrDomainConflict):
		writeIdentityError(w, http.StatusConflict, "domain_conflict", err.Error())
	case errors.Is(err, identityerrors.ErrExternalIdentityConflict):
		writeIdentityError(w, http.StatusConflict, "external_identity_conflict", err.Error())
	case errors.Is(err, identityerrors.ErrTenantHasActivePrincipals),
		errors.Is(err, identityerrors.ErrPrincipalHasDependents):
		writeIdentityError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, identityerrors.ErrTenantInactive):
		writeIdentityError(w, http.StatusForbidden, "tenant_inactive", err.Error())
	case errors.Is(err, identityerrors.ErrInvalidRegistration),
		errors.Is(err, identityerrors.ErrInvalidProfile),
		errors.Is(err, identityerrors.ErrInvalidTenant),
		errors.Is(err, identityerrors.ErrInvalidRole),
		errors.Is(err, identityerrors.ErrRoleTenantMismatch),
		errors.Is(err, identityerrors.ErrTenantDomainRequired):
		writeIdentityError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
