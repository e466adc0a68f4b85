package httpserver

import (
	"errors"
	"net/http"

	householderrors "kinkeep/contexts/family-core/household-service/domain/errors"
	householdhttp "kinkeep/contexts/family-core/household-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func (s *Server) registerHouseholdRoutes() {
	s.mux.HandleFunc("GET /api/household/v1/chores", s.authed(s.handleListChores))
	s.mux.HandleFunc("POST /api/household/v1/chores", s.authed(s.handleCreateChore))
	s.mux.HandleFunc("GET /api/household/v1/chores/{chore_id}", s.authed(s.handleGetChore))
	s.mux.HandleFunc("PATCH /api/household/v1/chores/{chore_id}", s.authed(s.handleUpdateChore))
	s.mux.HandleFunc("DELETE /api/household/v1/chores/{chore_id}", s.authed(s.handleDeleteChore))

	s.mux.HandleFunc("GET /api/household/v1/dates", s.authed(s.handleListKeyDates))
	s.mux.HandleFunc("POST /api/household/v1/dates", s.authed(s.handleCreateKeyDate))
	s.mux.HandleFunc("GET /api/household/v1/dates/{key_date_id}", s.authed(s.handleGetKeyDate))
	s.mux.HandleFunc("PATCH /api/household/v1/dates/{key_date_id}", s.authed(s.handleUpdateKeyDate))
	s.mux.HandleFunc("DELETE /api/household/v1/dates/{key_date_id}", s.authed(s.handleDeleteKeyDate))

	s.mux.HandleFunc("GET /api/household/v1/wishlist", s.authed(s.handleListWishlist))
	s.mux.HandleFunc("POST /api/household/v1/wishlist", s.authed(s.handleCreateWishlistItem))
	s.mux.HandleFunc("GET /api/household/v1/wishlist/{item_id}", s.authed(s.handleGetWishlistItem))
	s.mux.HandleFunc("POST /api/household/v1/wishlist/{item_id}/claim", s.authed(s.handleClaimWishlistItem))
	s.mux.HandleFunc("DELETE /api/household/v1/wishlist/{item_id}", s.authed(s.handleDeleteWishlistItem))
}

func (s *Server) handleListChores(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.household.Handler.ListChoresHandler(r.Context(), caller)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateChore(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req householdhttp.CreateChoreRequest
	if !s.decodeJSON(w, r, &req, writeHouseholdError) {
		return
	}
	resp, err := s.household.Handler.CreateChoreHandler(r.Context(), caller, req)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetChore(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.household.Handler.GetChoreHandler(r.Context(), caller, r.PathValue("chore_id"))
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateChore(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req householdhttp.UpdateChoreRequest
	if !s.decodeJSON(w, r, &req, writeHouseholdError) {
		return
	}
	resp, err := s.household.Handler.UpdateChoreHandler(r.Context(), caller, r.PathValue("chore_id"), req)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteChore(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if err := s.household.Handler.DeleteChoreHandler(r.Context(), caller, r.PathValue("chore_id")); err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListKeyDates(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.household.Handler.ListKeyDatesHandler(r.Context(), caller)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateKeyDate(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req householdhttp.CreateKeyDateRequest
	if !s.decodeJSON(w, r, &req, writeHouseholdError) {
		return
	}
	resp, err := s.household.Handler.CreateKeyDateHandler(r.Context(), caller, req)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetKeyDate(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.household.Handler.GetKeyDateHandler(r.Context(), caller, r.PathValue("key_date_id"))
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateKeyDate(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req householdhttp.UpdateKeyDateRequest
	if !s.decodeJSON(w, r, &req, writeHouseholdError) {
		return
	}
	resp, err := s.household.Handler.UpdateKeyDateHandler(r.Context(), caller, r.PathValue("key_date_id"), req)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteKeyDate(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if err := s.household.Handler.DeleteKeyDateHandler(r.Context(), caller, r.PathValue("key_date_id")); err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListWishlist(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.household.Handler.ListWishlistHandler(r.Context(), caller)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateWishlistItem(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req householdhttp.CreateWishlistItemRequest
	if !s.decodeJSON(w, r, &req, writeHouseholdError) {
		return
	}
	resp, err := s.household.Handler.CreateWishlistItemHandler(r.Context(), caller, req)
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetWishlistItem(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.household.Handler.GetWishlistItemHandler(r.Context(), caller, r.PathValue("item_id"))
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimWishlistItem(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.household.Handler.ClaimWishlistItemHandler(r.Context(), caller, r.PathValue("item_id"))
	if err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteWishlistItem(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if err := s.household.Handler.DeleteWishlistItemHandler(r.Context(), caller, r.PathValue("item_id")); err != nil {
		writeHouseholdDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeHouseholdError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, householdhttp.ErrorResponse{Code: code, Message: message})
}

func writeHouseholdDomainError(w http.ResponseWriter, err error) {
	if writeAccessDeniedError(w, err, writeHouseholdError) {
		return
	}
	switch {
	case errors.Is(err, householderrors.ErrChoreNotFound),
		errors.Is(err, householderrors.ErrKeyDateNotFound),
		errors.Is(err, householderrors.ErrWishlistItemNotFound):
		writeHouseholdError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, householderrors.ErrItemAlreadyClaimed):
		writeHouseholdError(w, http.StatusConflict, "already_claimed", err.Error())
	case errors.Is(err, householderrors.ErrInvalidChore),
		errors.Is(err, householderrors.ErrInvalidKeyDate),
		errors.Is(err, householderrors.ErrInvalidWishlistItem):
		writeHouseholdError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeHouseholdError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
