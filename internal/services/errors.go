package services

import "errors"

// Typed failure causes surfaced to handlers. Each maps to a distinct HTTP
// answer instead of collapsing into one generic message.
var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrProductNotFound       = errors.New("product not found")
	ErrCartItemNotFound      = errors.New("cart item not found")
	ErrWishlistItemNotFound  = errors.New("wishlist item not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrCannotCancel          = errors.New("order can no longer be cancelled")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrInvalidTransition     = errors.New("order status cannot move backwards")
	ErrSellerProfileNotFound = errors.New("seller profile not found")
	ErrBrandNotFound         = errors.New("brand not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrAlreadyReviewed       = errors.New("product already reviewed by this user")
)
