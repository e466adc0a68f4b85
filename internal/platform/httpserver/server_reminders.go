package httpserver

import (
	"errors"
	"net/http"

	remindererrors "kinkeep/contexts/family-core/reminder-service/domain/errors"
	reminderhttp "kinkeep/contexts/family-core/reminder-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func (s *Server) registerReminderRoutes() {
	s.mux.HandleFunc("GET /api/reminders/v1/reminders", s.authed(s.handleListReminders))
	s.mux.HandleFunc("POST /api/reminders/v1/reminders", s.authed(s.handleCreateReminder))
	s.mux.HandleFunc("GET /api/reminders/v1/reminders/{reminder_id}", s.authed(s.handleGetReminder))
	s.mux.HandleFunc("PATCH /api/reminders/v1/reminders/{reminder_id}", s.authed(s.handleUpdateReminder))
	s.mux.HandleFunc("DELETE /api/reminders/v1/reminders/{reminder_id}", s.authed(s.handleDeleteReminder))
	s.mux.HandleFunc("GET /api/reminders/v1/reminders/{reminder_id}/nag-preview", s.authed(s.handlePreviewNag))

	s.mux.HandleFunc("GET /api/reminders/v1/nag-settings", s.authed(s.handleGetNagSettings))
	s.mux.HandleFunc("PATCH /api/reminders/v1/nag-settings", s.authed(s.handleUpdateNagSettings))
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.reminders.Handler.ListRemindersHandler(r.Context(), caller)
	if err != nil {
		writeReminderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req reminderhttp.CreateReminderRequest
	if !s.decodeJSON(w, r, &req, writeReminderError) {
		return
	}
	resp, err := s.reminders.Handler.CreateReminderHandler(r.Context(), caller, req)
	if err != nil {
		writeReminderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetReminder(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.reminders.Handler.GetReminderHandler(r.Context(), caller, r.PathValue("reminder_id"))
	if err != nil {
		writeReminderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req reminderhttp.UpdateReminderRequest
	if !s.decodeJSON(w, r, &req, writeReminderError) {
		return
	}
	resp, err := s.reminders.Handler.UpdateReminderHandler(r.Context(), caller, r.PathValue("reminder_id"), req)
	if err != nil {
		writeReminderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if err := s.reminders.Handler.DeleteReminderHandler(r.Context(), caller, r.PathValue("reminder_id")); err != nil {
		writeReminderDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreviewNag(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.reminders.Handler.PreviewNagHandler(r.Context(), caller, r.PathValue("reminder_id"))
	if err != nil {
		writeReminderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetNagSettings(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.reminders.Handler.GetNagSettingsHandler(r.Context(), caller)
	if err != nil {
		writeReminderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateNagSettings(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req reminderhttp.UpdateNagSettingsRequest
	if !s.decodeJSON(w, r, &req, writeReminderError) {
		return
	}
	resp, err := s.reminders.Handler.UpdateNagSettingsHandler(r.Context(), caller, req)
	if err != nil {
		writeReminderDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeReminderError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reminderhttp.ErrorResponse{Code: code, Message: message})
}

func writeReminderDomainError(w http.ResponseWriter, err error) {
	if writeAccessDeniedError(w, err, writeReminderError) {
		return
	}
	switch {
	case errors.Is(err, remindererrors.ErrReminderNotFound):
		writeReminderError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, remindererrors.ErrInvalidReminder),
		errors.Is(err, remindererrors.ErrInvalidNagSettings):
		writeReminderError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, remindererrors.ErrNagComposeFailed):
		writeReminderError(w, http.StatusBadGateway, "compose_failed", err.Error())
	default:
		writeReminderError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
