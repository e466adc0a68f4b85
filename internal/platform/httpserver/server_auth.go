package httpserver

import (
	"errors"
	"net/http"

	autherrors "kinkeep/contexts/identity-access/auth-service/domain/errors"
	authhttp "kinkeep/contexts/identity-access/auth-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func (s *Server) registerAuthRoutes() {
	s.mux.HandleFunc("POST /api/auth/v1/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/v1/external/begin", s.handleBeginExternalLogin)
	s.mux.HandleFunc("POST /api/auth/v1/external/complete", s.handleCompleteExternalLogin)
	s.mux.HandleFunc("GET /api/auth/v1/me", s.authed(s.handleMe))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if !s.decodeJSON(w, r, &req, writeAuthError) {
		return
	}
	resp, err := s.auth.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	setSessionCookie(w, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBeginExternalLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.BeginExternalLoginRequest
	if !s.decodeJSON(w, r, &req, writeAuthError) {
		return
	}
	resp, err := s.auth.Handler.BeginExternalLoginHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteExternalLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.CompleteExternalLoginRequest
	if !s.decodeJSON(w, r, &req, writeAuthError) {
		return
	}
	resp, err := s.auth.Handler.CompleteExternalLoginHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	setSessionCookie(w, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	writeJSON(w, http.StatusOK, s.auth.Handler.MeHandler(r.Context(), caller))
}

func setSessionCookie(w http.ResponseWriter, session authhttp.SessionResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authhttp.ErrorResponse{Code: code, Message: message})
}

func writeAuthDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, autherrors.ErrSessionExpired):
		writeAuthError(w, http.StatusUnauthorized, "session_expired", err.Error())
	case errors.Is(err, autherrors.ErrAccountDisabled):
		writeAuthError(w, http.StatusUnauthorized, "account_disabled", err.Error())
	case errors.Is(err, autherrors.ErrTenantDisabled),
		errors.Is(err, autherrors.ErrTenantUnknown):
		writeAuthError(w, http.StatusUnauthorized, "tenant_disabled", err.Error())
	case errors.Is(err, autherrors.ErrInvalidCredential),
		errors.Is(err, autherrors.ErrPrincipalUnknown),
		errors.Is(err, autherrors.ErrPendingLoginNotFound),
		errors.Is(err, autherrors.ErrPendingLoginExpired):
		// Collapsed on purpose: none of these reveal whether the
		// identifier, password, or pending key was the wrong half.
		writeAuthError(w, http.StatusUnauthorized, "invalid_credential", "invalid credential")
	case errors.Is(err, autherrors.ErrInvalidPendingLogin):
		writeAuthError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAuthError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
