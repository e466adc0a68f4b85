package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	billingservice "kinkeep/contexts/commerce/billing-service"
	householdservice "kinkeep/contexts/family-core/household-service"
	reminderservice "kinkeep/contexts/family-core/reminder-service"
	authservice "kinkeep/contexts/identity-access/auth-service"
	authorizationservice "kinkeep/contexts/identity-access/authorization-service"
	authzerrors "kinkeep/contexts/identity-access/authorization-service/domain/errors"
	identityservice "kinkeep/contexts/identity-access/identity-service"
	"kinkeep/internal/shared/authctx"
	"kinkeep/internal/shared/tenantscope"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "kinkeep/internal/platform/httpserver/docs"
)

// sessionCookieName carries the session token for browser clients.
const sessionCookieName = "kinkeep_session"

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	auth          authservice.Module
	identity      identityservice.Module
	authorization authorizationservice.Module
	household     householdservice.Module
	reminders     reminderservice.Module
	billing       billingservice.Module
}

func New(
	auth authservice.Module,
	identity identityservice.Module,
	authorizationModule authorizationservice.Module,
	household householdservice.Module,
	reminders reminderservice.Module,
	billing billingservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		auth:          auth,
		identity:      identity,
		authorization: authorizationModule,
		household:     household,
		reminders:     reminders,
		billing:       billing,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.registerAuthRoutes()
	s.registerIdentityRoutes()
	s.registerAuthzRoutes()
	s.registerHouseholdRoutes()
	s.registerReminderRoutes()
	s.registerBillingRoutes()
}

type authedHandler func(w http.ResponseWriter, r *http.Request, caller authctx.Principal)

// authed wraps a handler behind credential resolution. The principal is
// re-derived from durable storage on every request, so disabling an
// account or tenant takes effect immediately.
func (s *Server) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		credential := extractCredential(r)
		if credential == "" {
			writeAuthError(w, http.StatusUnauthorized, "invalid_credential", "a session credential is required")
			return
		}
		caller, err := s.auth.Service.Resolve(r.Context(), credential)
		if err != nil {
			writeAuthDomainError(w, err)
			return
		}
		next(w, r.WithContext(authctx.WithPrincipal(r.Context(), caller)), caller)
	}
}

// extractCredential resolves the session token in priority order:
// Authorization bearer, then session cookie, then query parameter.
func extractCredential(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token
		}
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if token := strings.TrimSpace(cookie.Value); token != "" {
			return token
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("session"))
}

// requireCapability runs the shared decision engine for a route. It
// reports false after writing the denial response.
func (s *Server) requireCapability(w http.ResponseWriter, caller authctx.Principal, action string, writeError func(http.ResponseWriter, int, string, string)) bool {
	if err := s.authorization.Guard.RequireAction(caller, action); err != nil {
		writeAccessDeniedError(w, err, writeError)
		return false
	}
	return true
}

// writeAccessDeniedError maps the denial errors shared by every guarded
// route. It reports whether the error was one of them.
func writeAccessDeniedError(w http.ResponseWriter, err error, writeError func(http.ResponseWriter, int, string, string)) bool {
	switch {
	case errors.Is(err, authzerrors.ErrAgeRestricted):
		writeError(w, http.StatusForbidden, "age_restricted", err.Error())
	case errors.Is(err, authzerrors.ErrRoleNotPermitted):
		writeError(w, http.StatusForbidden, "role_not_permitted", err.Error())
	case errors.Is(err, authzerrors.ErrUnknownAction):
		writeError(w, http.StatusForbidden, "unknown_action", err.Error())
	case errors.Is(err, tenantscope.ErrNoTenantContext):
		writeError(w, http.StatusBadRequest, "no_tenant_context", err.Error())
	default:
		return false
	}
	return true
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any, writeError func(http.ResponseWriter, int, string, string)) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
