package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"kinkeep/contexts/identity-access/authorization-service/application"
	"kinkeep/contexts/identity-access/authorization-service/application/queries"
	"kinkeep/contexts/identity-access/authorization-service/domain/capability"
	httptransport "kinkeep/contexts/identity-access/authorization-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

// Handler maps HTTP DTOs to decision engine queries.
type Handler struct {
	Guard  application.Guard
	Logger *slog.Logger
}

// CheckActionHandler evaluates one action for the caller. Denials are a
// normal response here, not an error: the endpoint exists so clients can
// shape their UI around what the caller may do.
func (h Handler) CheckActionHandler(_ context.Context, caller authctx.Principal, request httptransport.CheckActionRequest) httptransport.CheckActionResponse {
	decision := h.Guard.Check(caller, capability.Action(request.Action))

	application.ResolveLogger(h.Logger).Debug("action checked",
		"event", "authz_http_action_checked",
		"module", "identity-access/authorization-service",
		"layer", "transport",
		"principal_id", caller.PrincipalID,
		"action", request.Action,
		"allowed", decision.Allowed,
		"reason", decision.Reason,
	)
	return httptransport.CheckActionResponse{
		Action:  request.Action,
		Allowed: decision.Allowed,
		Reason:  decision.Reason,
	}
}

// PageAccessHandler reports whether the caller may open a page.
func (h Handler) PageAccessHandler(_ context.Context, caller authctx.Principal, page string) httptransport.PageAccessResponse {
	allowed := queries.CanAccessPage(caller, page, h.now(), h.Guard.Policy)
	return httptransport.PageAccessResponse{Page: page, Allowed: allowed}
}

func (h Handler) now() time.Time {
	if h.Guard.Clock == nil {
		return time.Now().UTC()
	}
	return h.Guard.Clock.Now().UTC()
}
