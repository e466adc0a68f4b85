package httpserver

import (
	"net/http"

	authzhttp "kinkeep/contexts/identity-access/authorization-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func (s *Server) registerAuthzRoutes() {
	s.mux.HandleFunc("POST /api/authz/v1/check", s.authed(s.handleAuthzCheck))
	s.mux.HandleFunc("GET /api/authz/v1/pages/{page}", s.authed(s.handleAuthzPageAccess))
}

// handleAuthzCheck evaluates an action for the caller. A denial is a
// normal 200 response; the decision payload carries the reason.
func (s *Server) handleAuthzCheck(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req authzhttp.CheckActionRequest
	if !s.decodeJSON(w, r, &req, writeAuthzError) {
		return
	}
	writeJSON(w, http.StatusOK, s.authorization.Handler.CheckActionHandler(r.Context(), caller, req))
}

func (s *Server) handleAuthzPageAccess(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	writeJSON(w, http.StatusOK, s.authorization.Handler.PageAccessHandler(r.Context(), caller, r.PathValue("page")))
}

func writeAuthzError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{Code: code, Message: message})
}
