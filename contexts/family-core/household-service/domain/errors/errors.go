package errors

import "errors"

// Not-found errors double as the answer for records outside the caller's
// tenant scope: an invisible record and a missing record are the same
// thing to the caller.
var (
	ErrChoreNotFound        = errors.New("chore not found")
	ErrKeyDateNotFound      = errors.New("key date not found")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")

	ErrInvalidChore        = errors.New("invalid chore")
	ErrInvalidKeyDate      = errors.New("invalid key date")
	ErrInvalidWishlistItem = errors.New("invalid wishlist item")
	ErrItemAlreadyClaimed  = errors.New("wishlist item already claimed")
)
