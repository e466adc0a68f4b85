package httpserver

import (
	"errors"
	"net/http"

	billingerrors "kinkeep/contexts/commerce/billing-service/domain/errors"
	billinghttp "kinkeep/contexts/commerce/billing-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

func (s *Server) registerBillingRoutes() {
	s.mux.HandleFunc("GET /api/billing/v1/orders", s.authed(s.handleListOrders))
	s.mux.HandleFunc("POST /api/billing/v1/orders", s.authed(s.handleCreateOrder))
	s.mux.HandleFunc("GET /api/billing/v1/orders/{order_id}", s.authed(s.handleGetOrder))
	s.mux.HandleFunc("POST /api/billing/v1/orders/{order_id}/checkout", s.authed(s.handleCheckoutOrder))

	s.mux.HandleFunc("GET /api/billing/v1/promotions", s.authed(s.handleListPromotions))
	s.mux.HandleFunc("POST /api/billing/v1/promotions", s.authed(s.handleCreatePromotion))
	s.mux.HandleFunc("GET /api/billing/v1/promotions/{promo_id}", s.authed(s.handleGetPromotion))
	s.mux.HandleFunc("PATCH /api/billing/v1/promotions/{promo_id}", s.authed(s.handleUpdatePromotion))
	s.mux.HandleFunc("DELETE /api/billing/v1/promotions/{promo_id}", s.authed(s.handleDeletePromotion))
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.billing.Handler.ListOrdersHandler(r.Context(), caller)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req billinghttp.CreateOrderRequest
	if !s.decodeJSON(w, r, &req, writeBillingError) {
		return
	}
	resp, err := s.billing.Handler.CreateOrderHandler(r.Context(), caller, req)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.billing.Handler.GetOrderHandler(r.Context(), caller, r.PathValue("order_id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCheckoutOrder(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.billing.Handler.CheckoutOrderHandler(r.Context(), caller, r.PathValue("order_id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPromotions(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.billing.Handler.ListPromotionsHandler(r.Context(), caller)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePromotion(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req billinghttp.CreatePromotionRequest
	if !s.decodeJSON(w, r, &req, writeBillingError) {
		return
	}
	resp, err := s.billing.Handler.CreatePromotionHandler(r.Context(), caller, req)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetPromotion(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	resp, err := s.billing.Handler.GetPromotionHandler(r.Context(), caller, r.PathValue("promo_id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdatePromotion(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	var req billinghttp.UpdatePromotionRequest
	if !s.decodeJSON(w, r, &req, writeBillingError) {
		return
	}
	resp, err := s.billing.Handler.UpdatePromotionHandler(r.Context(), caller, r.PathValue("promo_id"), req)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePromotion(w http.ResponseWriter, r *http.Request, caller authctx.Principal) {
	if err := s.billing.Handler.DeletePromotionHandler(r.Context(), caller, r.PathValue("promo_id")); err != nil {
		writeBillingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeBillingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, billinghttp.ErrorResponse{Code: code, Message: message})
}

func writeBillingDomainError(w http.ResponseWriter, err error) {
	if writeAccessDeniedError(w, err, writeBillingError) {
		return
	}
	switch {
	case errors.Is(err, billingerrors.ErrOrderNotFound),
		errors.Is(err, billingerrors.ErrPromotionNotFound):
		writeBillingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, billingerrors.ErrOrderAlreadyPaid),
		errors.Is(err, billingerrors.ErrPromoCodeConflict):
		writeBillingError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, billingerrors.ErrPaymentDeclined):
		writeBillingError(w, http.StatusPaymentRequired, "payment_declined", err.Error())
	case errors.Is(err, billingerrors.ErrInvalidOrder),
		errors.Is(err, billingerrors.ErrInvalidPromotion):
		writeBillingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeBillingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
