package httptransport

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type ChoreDTO struct {
	ChoreID    string    `json:"choreId"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes,omitempty"`
	AssigneeID string    `json:"assigneeId,omitempty"`
	DueDate    string    `json:"dueDate,omitempty"`
	Done       bool      `json:"done"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateChoreRequest struct {
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	AssigneeID string `json:"assigneeId,omitempty"`
	DueDate    string `json:"dueDate,omitempty"`
}

type UpdateChoreRequest struct {
	Title      *string `json:"title,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	AssigneeID *string `json:"assigneeId,omitempty"`
	DueDate    *string `json:"dueDate,omitempty"`
	Done       *bool   `json:"done,omitempty"`
}

type ListChoresResponse struct {
	Chores []ChoreDTO `json:"chores"`
}

type KeyDateDTO struct {
	KeyDateID string    `json:"keyDateId"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Annual    bool      `json:"annual"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateKeyDateRequest struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Annual bool   `json:"annual"`
	Notes  string `json:"notes,omitempty"`
}

type UpdateKeyDateRequest struct {
	Title  *string `json:"title,omitempty"`
	Date   *string `json:"date,omitempty"`
	Annual *bool   `json:"annual,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type ListKeyDatesResponse struct {
	KeyDates []KeyDateDTO `json:"keyDates"`
}

type WishlistItemDTO struct {
	ItemID     string    `json:"itemId"`
	OwnerID    string    `json:"ownerId"`
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	PriceCents int64     `json:"priceCents"`
	Claimed    bool      `json:"claimed"`
	ClaimedBy  string    `json:"claimedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateWishlistItemRequest struct {
	Title      string `json:"title"`
	URL        string `json:"url,omitempty"`
	PriceCents int64  `json:"priceCents"`
}

type ListWishlistResponse struct {
	Items []WishlistItemDTO `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
