package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "kinkeep/contexts/identity-access/auth-service/domain/errors"
	"kinkeep/contexts/identity-access/auth-service/ports"
	"kinkeep/internal/shared/authctx"
)

// BootstrapPrincipalID identifies the synthetic principal resolved from
// the bootstrap bypass credential.
const BootstrapPrincipalID = "bootstrap"

// Service authenticates principals and resolves session credentials into
// request-scoped principals. Tokens carry identity only; account and
// tenant state is reloaded from the directory on every resolve.
type Service struct {
	Codec     ports.TokenCodec
	Directory ports.Directory
	Pending   ports.PendingLoginStore
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger

	SessionTTL      time.Duration
	PendingLoginTTL time.Duration

	BootstrapEnabled bool
	BootstrapToken   string
}

// Session is an issued session: the signed token plus the principal it
// was issued for.
type Session struct {
	Token       string
	ExpiresAt   time.Time
	Destination string
	Principal   authctx.Principal
}

// Login authenticates a password credential and issues a session token.
// Account and tenant state is checked before issuing so a deactivated
// account never receives a fresh token.
func (s Service) Login(ctx context.Context, identifier string, password string) (Session, error) {
	record, err := s.Directory.VerifyPassword(ctx, identifier, password)
	if err != nil {
		return Session{}, err
	}
	if err := s.checkAccountState(ctx, record); err != nil {
		return Session{}, err
	}

	session, err := s.issue(record)
	if err != nil {
		return Session{}, err
	}
	s.Directory.RecordLogin(ctx, record.PrincipalID, s.now())

	resolveLogger(s.Logger).Info("session issued",
		"event", "auth_session_issued",
		"module", "identity-access/auth-service",
		"layer", "application",
		"principal_id", record.PrincipalID,
		"tenant_id", record.TenantID,
	)
	return session, nil
}

// Resolve turns a presented credential into a request-scoped principal.
// The returned principal is rebuilt from the directory, never from the
// token claims.
func (s Service) Resolve(ctx context.Context, credential string) (authctx.Principal, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return authctx.Principal{}, domainerrors.ErrInvalidCredential
	}

	if s.BootstrapEnabled && credential == s.BootstrapToken {
		resolveLogger(s.Logger).Warn("bootstrap bypass credential used",
			"event", "auth_bootstrap_token_used",
			"module", "identity-access/auth-service",
			"layer", "application",
		)
		return authctx.Principal{
			PrincipalID: BootstrapPrincipalID,
			Name:        "Bootstrap Access",
			Role:        authctx.RolePlatformOwner,
		}, nil
	}

	claims, err := s.Codec.Verify(credential)
	if err != nil {
		return authctx.Principal{}, err
	}

	record, err := s.Directory.PrincipalByID(ctx, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPrincipalUnknown) {
			return authctx.Principal{}, domainerrors.ErrAccountDisabled
		}
		return authctx.Principal{}, err
	}
	if err := s.checkAccountState(ctx, record); err != nil {
		return authctx.Principal{}, err
	}

	s.Directory.RecordLogin(ctx, record.PrincipalID, s.now())
	return record.Context(), nil
}

// BeginExternalLogin stores a correlation entry for an external login
// round trip and returns its opaque key.
func (s Service) BeginExternalLogin(ctx context.Context, tenantDomain string, destination string) (ports.PendingLogin, error) {
	key, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ports.PendingLogin{}, err
	}
	now := s.now()
	pending := ports.PendingLogin{
		Key:          key,
		TenantDomain: strings.ToLower(strings.TrimSpace(tenantDomain)),
		Destination:  strings.TrimSpace(destination),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.PendingLoginTTL),
	}
	if err := s.Pending.Put(ctx, pending); err != nil {
		return ports.PendingLogin{}, err
	}
	return pending, nil
}

// CompleteExternalLogin consumes a pending login key, lands the verified
// external identity on a principal and issues a session. The key is
// single use: a replay fails even when the first attempt failed later on.
func (s Service) CompleteExternalLogin(ctx context.Context, key string, login ports.ExternalLogin) (Session, error) {
	pending, err := s.Pending.Consume(ctx, strings.TrimSpace(key), s.now())
	if err != nil {
		return Session{}, err
	}

	record, err := s.Directory.CompleteExternalLogin(ctx, login, pending.TenantDomain)
	if err != nil {
		return Session{}, err
	}
	if err := s.checkAccountState(ctx, record); err != nil {
		return Session{}, err
	}

	session, err := s.issue(record)
	if err != nil {
		return Session{}, err
	}
	session.Destination = pending.Destination
	s.Directory.RecordLogin(ctx, record.PrincipalID, s.now())

	resolveLogger(s.Logger).Info("external session issued",
		"event", "auth_external_session_issued",
		"module", "identity-access/auth-service",
		"layer", "application",
		"principal_id", record.PrincipalID,
		"provider", login.Provider,
	)
	return session, nil
}

func (s Service) issue(record ports.PrincipalRecord) (Session, error) {
	token, err := s.Codec.Issue(ports.SessionClaims{
		PrincipalID: record.PrincipalID,
		Email:       record.Email,
		Name:        record.Name,
		Role:        record.Role,
		TenantID:    record.TenantID,
		BirthDate:   record.BirthDate,
	}, s.SessionTTL)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		ExpiresAt: s.now().Add(s.SessionTTL),
		Principal: record.Context(),
	}, nil
}

func (s Service) checkAccountState(ctx context.Context, record ports.PrincipalRecord) error {
	if !record.Active {
		return domainerrors.ErrAccountDisabled
	}
	if record.Role == authctx.RolePlatformOwner {
		return nil
	}
	tenant, err := s.Directory.TenantByID(ctx, record.TenantID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrTenantUnknown) {
			return domainerrors.ErrTenantDisabled
		}
		return err
	}
	if !tenant.Active {
		return domainerrors.ErrTenantDisabled
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
