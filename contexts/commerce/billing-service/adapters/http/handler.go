package httpadapter

import (
	"context"
	"log/slog"

	"kinkeep/contexts/commerce/billing-service/application"
	"kinkeep/contexts/commerce/billing-service/domain/entities"
	httptransport "kinkeep/contexts/commerce/billing-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

// Handler maps HTTP DTOs to billing application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateOrderHandler(ctx context.Context, caller authctx.Principal, request httptransport.CreateOrderRequest) (httptransport.OrderDTO, error) {
	order, err := h.Service.CreateOrder(ctx, caller, application.CreateOrderInput{
		Description: request.Description,
		AmountCents: request.AmountCents,
		Currency:    request.Currency,
		PromoCode:   request.PromoCode,
	})
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return orderDTO(order), nil
}

func (h Handler) GetOrderHandler(ctx context.Context, caller authctx.Principal, orderID string) (httptransport.OrderDTO, error) {
	order, err := h.Service.GetOrder(ctx, caller, orderID)
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return orderDTO(order), nil
}

func (h Handler) ListOrdersHandler(ctx context.Context, caller authctx.Principal) (httptransport.ListOrdersResponse, error) {
	orders, err := h.Service.ListOrders(ctx, caller)
	if err != nil {
		return httptransport.ListOrdersResponse{}, err
	}
	response := httptransport.ListOrdersResponse{Orders: make([]httptransport.OrderDTO, 0, len(orders))}
	for _, order := range orders {
		response.Orders = append(response.Orders, orderDTO(order))
	}
	return response, nil
}

func (h Handler) CheckoutOrderHandler(ctx context.Context, caller authctx.Principal, orderID string) (httptransport.OrderDTO, error) {
	order, err := h.Service.CheckoutOrder(ctx, caller, orderID)
	if err != nil {
		return httptransport.OrderDTO{}, err
	}
	return orderDTO(order), nil
}

func (h Handler) CreatePromotionHandler(ctx context.Context, caller authctx.Principal, request httptransport.CreatePromotionRequest) (httptransport.PromotionDTO, error) {
	promotion, err := h.Service.CreatePromotion(ctx, caller, application.CreatePromotionInput{
		Code:       request.Code,
		PercentOff: request.PercentOff,
		Active:     request.Active,
	})
	if err != nil {
		return httptransport.PromotionDTO{}, err
	}
	return promotionDTO(promotion), nil
}

func (h Handler) GetPromotionHandler(ctx context.Context, caller authctx.Principal, promoID string) (httptransport.PromotionDTO, error) {
	promotion, err := h.Service.GetPromotion(ctx, caller, promoID)
	if err != nil {
		return httptransport.PromotionDTO{}, err
	}
	return promotionDTO(promotion), nil
}

func (h Handler) ListPromotionsHandler(ctx context.Context, caller authctx.Principal) (httptransport.ListPromotionsResponse, error) {
	promotions, err := h.Service.ListPromotions(ctx, caller)
	if err != nil {
		return httptransport.ListPromotionsResponse{}, err
	}
	response := httptransport.ListPromotionsResponse{Promotions: make([]httptransport.PromotionDTO, 0, len(promotions))}
	for _, promotion := range promotions {
		response.Promotions = append(response.Promotions, promotionDTO(promotion))
	}
	return response, nil
}

func (h Handler) UpdatePromotionHandler(ctx context.Context, caller authctx.Principal, promoID string, request httptransport.UpdatePromotionRequest) (httptransport.PromotionDTO, error) {
	promotion, err := h.Service.UpdatePromotion(ctx, caller, promoID, application.UpdatePromotionInput{
		PercentOff: request.PercentOff,
		Active:     request.Active,
	})
	if err != nil {
		return httptransport.PromotionDTO{}, err
	}
	return promotionDTO(promotion), nil
}

func (h Handler) DeletePromotionHandler(ctx context.Context, caller authctx.Principal, promoID string) error {
	return h.Service.DeletePromotion(ctx, caller, promoID)
}

func orderDTO(order entities.Order) httptransport.OrderDTO {
	return httptransport.OrderDTO{
		OrderID:     order.OrderID,
		Description: order.Description,
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		PromoCode:   order.PromoCode,
		Status:      order.Status,
		ReceiptID:   order.ReceiptID,
		PaidAt:      order.PaidAt,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func promotionDTO(promotion entities.Promotion) httptransport.PromotionDTO {
	return httptransport.PromotionDTO{
		PromoID:    promotion.PromoID,
		Code:       promotion.Code,
		PercentOff: promotion.PercentOff,
		Active:     promotion.Active,
		CreatedAt:  promotion.CreatedAt,
		UpdatedAt:  promotion.UpdatedAt,
	}
}
