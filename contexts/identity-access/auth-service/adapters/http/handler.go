package httpadapter

import (
	"context"
	"log/slog"

	"kinkeep/contexts/identity-access/auth-service/application"
	"kinkeep/contexts/identity-access/auth-service/ports"
	httptransport "kinkeep/contexts/identity-access/auth-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

// Handler maps HTTP DTOs to authentication application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, request httptransport.LoginRequest) (httptransport.SessionResponse, error) {
	session, err := h.Service.Login(ctx, request.Identifier, request.Password)
	if err != nil {
		h.logger().Debug("login rejected",
			"event", "auth_http_login_rejected",
			"module", "identity-access/auth-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.SessionResponse{}, err
	}
	return sessionResponse(session), nil
}

func (h Handler) BeginExternalLoginHandler(ctx context.Context, request httptransport.BeginExternalLoginRequest) (httptransport.BeginExternalLoginResponse, error) {
	pending, err := h.Service.BeginExternalLogin(ctx, request.TenantDomain, request.Destination)
	if err != nil {
		return httptransport.BeginExternalLoginResponse{}, err
	}
	return httptransport.BeginExternalLoginResponse{
		Key:       pending.Key,
		ExpiresAt: pending.ExpiresAt,
	}, nil
}

func (h Handler) CompleteExternalLoginHandler(ctx context.Context, request httptransport.CompleteExternalLoginRequest) (httptransport.SessionResponse, error) {
	session, err := h.Service.CompleteExternalLogin(ctx, request.Key, ports.ExternalLogin{
		Provider:  request.Provider,
		SubjectID: request.SubjectID,
		Email:     request.Email,
		Name:      request.Name,
	})
	if err != nil {
		h.logger().Debug("external login rejected",
			"event", "auth_http_external_rejected",
			"module", "identity-access/auth-service",
			"layer", "transport",
			"provider", request.Provider,
			"error", err.Error(),
		)
		return httptransport.SessionResponse{}, err
	}
	return sessionResponse(session), nil
}

// MeHandler echoes the already-resolved caller.
func (h Handler) MeHandler(_ context.Context, caller authctx.Principal) httptransport.PrincipalDTO {
	return principalDTO(caller)
}

func (h Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func sessionResponse(session application.Session) httptransport.SessionResponse {
	return httptransport.SessionResponse{
		Token:       session.Token,
		ExpiresAt:   session.ExpiresAt,
		Destination: session.Destination,
		Principal:   principalDTO(session.Principal),
	}
}

func principalDTO(principal authctx.Principal) httptransport.PrincipalDTO {
	dto := httptransport.PrincipalDTO{
		PrincipalID: principal.PrincipalID,
		Email:       principal.Email,
		Name:        principal.Name,
		Role:        string(principal.Role),
		TenantID:    principal.TenantID,
	}
	if principal.BirthDate != nil {
		dto.BirthDate = principal.BirthDate.Format(httptransport.BirthDateLayout)
	}
	return dto
}
