package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"kinkeep/contexts/family-core/household-service/application"
	"kinkeep/contexts/family-core/household-service/domain/entities"
	domainerrors "kinkeep/contexts/family-core/household-service/domain/errors"
	httptransport "kinkeep/contexts/family-core/household-service/transport/http"
	"kinkeep/internal/shared/authctx"
)

// Handler maps HTTP DTOs to household application operations.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateChoreHandler(ctx context.Context, caller authctx.Principal, request httptransport.CreateChoreRequest) (httptransport.ChoreDTO, error) {
	dueDate, err := parseDate(request.DueDate)
	if err != nil {
		return httptransport.ChoreDTO{}, domainerrors.ErrInvalidChore
	}
	chore, err := h.Service.CreateChore(ctx, caller, application.CreateChoreInput{
		Title:      request.Title,
		Notes:      request.Notes,
		AssigneeID: request.AssigneeID,
		DueDate:    dueDate,
	})
	if err != nil {
		return httptransport.ChoreDTO{}, err
	}
	return choreDTO(chore), nil
}

func (h Handler) GetChoreHandler(ctx context.Context, caller authctx.Principal, choreID string) (httptransport.ChoreDTO, error) {
	chore, err := h.Service.GetChore(ctx, caller, choreID)
	if err != nil {
		return httptransport.ChoreDTO{}, err
	}
	return choreDTO(chore), nil
}

func (h Handler) ListChoresHandler(ctx context.Context, caller authctx.Principal) (httptransport.ListChoresResponse, error) {
	chores, err := h.Service.ListChores(ctx, caller)
	if err != nil {
		return httptransport.ListChoresResponse{}, err
	}
	response := httptransport.ListChoresResponse{Chores: make([]httptransport.ChoreDTO, 0, len(chores))}
	for _, chore := range chores {
		response.Chores = append(response.Chores, choreDTO(chore))
	}
	return response, nil
}

func (h Handler) UpdateChoreHandler(ctx context.Context, caller authctx.Principal, choreID string, request httptransport.UpdateChoreRequest) (httptransport.ChoreDTO, error) {
	input := application.UpdateChoreInput{
		Title:      request.Title,
		Notes:      request.Notes,
		AssigneeID: request.AssigneeID,
		Done:       request.Done,
	}
	if request.DueDate != nil {
		dueDate, err := parseDate(*request.DueDate)
		if err != nil {
			return httptransport.ChoreDTO{}, domainerrors.ErrInvalidChore
		}
		input.DueDate = dueDate
	}
	chore, err := h.Service.UpdateChore(ctx, caller, choreID, input)
	if err != nil {
		return httptransport.ChoreDTO{}, err
	}
	return choreDTO(chore), nil
}

func (h Handler) DeleteChoreHandler(ctx context.Context, caller authctx.Principal, choreID string) error {
	return h.Service.DeleteChore(ctx, caller, choreID)
}

func (h Handler) CreateKeyDateHandler(ctx context.Context, caller authctx.Principal, request httptransport.CreateKeyDateRequest) (httptransport.KeyDateDTO, error) {
	date, err := time.Parse(httptransport.DateLayout, request.Date)
	if err != nil {
		return httptransport.KeyDateDTO{}, domainerrors.ErrInvalidKeyDate
	}
	keyDate, err := h.Service.CreateKeyDate(ctx, caller, application.CreateKeyDateInput{
		Title:  request.Title,
		Date:   date,
		Annual: request.Annual,
		Notes:  request.Notes,
	})
	if err != nil {
		return httptransport.KeyDateDTO{}, err
	}
	return keyDateDTO(keyDate), nil
}

func (h Handler) GetKeyDateHandler(ctx context.Context, caller authctx.Principal, keyDateID string) (httptransport.KeyDateDTO, error) {
	keyDate, err := h.Service.GetKeyDate(ctx, caller, keyDateID)
	if err != nil {
		return httptransport.KeyDateDTO{}, err
	}
	return keyDateDTO(keyDate), nil
}

func (h Handler) ListKeyDatesHandler(ctx context.Context, caller authctx.Principal) (httptransport.ListKeyDatesResponse, error) {
	keyDates, err := h.Service.ListKeyDates(ctx, caller)
	if err != nil {
		return httptransport.ListKeyDatesResponse{}, err
	}
	response := httptransport.ListKeyDatesResponse{KeyDates: make([]httptransport.KeyDateDTO, 0, len(keyDates))}
	for _, keyDate := range keyDates {
		response.KeyDates = append(response.KeyDates, keyDateDTO(keyDate))
	}
	return response, nil
}

func (h Handler) UpdateKeyDateHandler(ctx context.Context, caller authctx.Principal, keyDateID string, request httptransport.UpdateKeyDateRequest) (httptransport.KeyDateDTO, error) {
	input := application.UpdateKeyDateInput{
		Title:  request.Title,
		Annual: request.Annual,
		Notes:  request.Notes,
	}
	if request.Date != nil {
		date, err := time.Parse(httptransport.DateLayout, *request.Date)
		if err != nil {
			return httptransport.KeyDateDTO{}, domainerrors.ErrInvalidKeyDate
		}
		input.Date = &date
	}
	keyDate, err := h.Service.UpdateKeyDate(ctx, caller, keyDateID, input)
	if err != nil {
		return httptransport.KeyDateDTO{}, err
	}
	return keyDateDTO(keyDate), nil
}

func (h Handler) DeleteKeyDateHandler(ctx context.Context, caller authctx.Principal, keyDateID string) error {
	return h.Service.DeleteKeyDate(ctx, caller, keyDateID)
}

func (h Handler) CreateWishlistItemHandler(ctx context.Context, caller authctx.Principal, request httptransport.CreateWishlistItemRequest) (httptransport.WishlistItemDTO, error) {
	item, err := h.Service.CreateWishlistItem(ctx, caller, application.CreateWishlistItemInput{
		Title:      request.Title,
		URL:        request.URL,
		PriceCents: request.PriceCents,
	})
	if err != nil {
		return httptransport.WishlistItemDTO{}, err
	}
	return wishlistItemDTO(item), nil
}

func (h Handler) GetWishlistItemHandler(ctx context.Context, caller authctx.Principal, itemID string) (httptransport.WishlistItemDTO, error) {
	item, err := h.Service.GetWishlistItem(ctx, caller, itemID)
	if err != nil {
		return httptransport.WishlistItemDTO{}, err
	}
	return wishlistItemDTO(item), nil
}

func (h Handler) ListWishlistHandler(ctx context.Context, caller authctx.Principal) (httptransport.ListWishlistResponse, error) {
	items, err := h.Service.ListWishlistItems(ctx, caller)
	if err != nil {
		return httptransport.ListWishlistResponse{}, err
	}
	response := httptransport.ListWishlistResponse{Items: make([]httptransport.WishlistItemDTO, 0, len(items))}
	for _, item := range items {
		response.Items = append(response.Items, wishlistItemDTO(item))
	}
	return response, nil
}

func (h Handler) ClaimWishlistItemHandler(ctx context.Context, caller authctx.Principal, itemID string) (httptransport.WishlistItemDTO, error) {
	item, err := h.Service.ClaimWishlistItem(ctx, caller, itemID)
	if err != nil {
		return httptransport.WishlistItemDTO{}, err
	}
	return wishlistItemDTO(item), nil
}

func (h Handler) DeleteWishlistItemHandler(ctx context.Context, caller authctx.Principal, itemID string) error {
	return h.Service.DeleteWishlistItem(ctx, caller, itemID)
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(httptransport.DateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func choreDTO(chore entities.Chore) httptransport.ChoreDTO {
	dto := httptransport.ChoreDTO{
		ChoreID:    chore.ChoreID,
		Title:      chore.Title,
		Notes:      chore.Notes,
		AssigneeID: chore.AssigneeID,
		Done:       chore.Done,
		CreatedAt:  chore.CreatedAt,
		UpdatedAt:  chore.UpdatedAt,
	}
	if chore.DueDate != nil {
		dto.DueDate = chore.DueDate.Format(httptransport.DateLayout)
	}
	return dto
}

func keyDateDTO(keyDate entities.KeyDate) httptransport.KeyDateDTO {
	return httptransport.KeyDateDTO{
		KeyDateID: keyDate.KeyDateID,
		Title:     keyDate.Title,
		Date:      keyDate.Date.Format(httptransport.DateLayout),
		Annual:    keyDate.Annual,
		Notes:     keyDate.Notes,
		CreatedAt: keyDate.CreatedAt,
		UpdatedAt: keyDate.UpdatedAt,
	}
}

func wishlistItemDTO(item entities.WishlistItem) httptransport.WishlistItemDTO {
	return httptransport.WishlistItemDTO{
		ItemID:     item.ItemID,
		OwnerID:    item.OwnerID,
		Title:      item.Title,
		URL:        item.URL,
		PriceCents: item.PriceCents,
		Claimed:    item.Claimed,
		ClaimedBy:  item.ClaimedBy,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
