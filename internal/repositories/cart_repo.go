package repositories

import (
	"duka/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	// Upsert adds a cart line for (user, product) or atomically increments
	// the quantity of the existing line.
	Upsert(userID, productID string, quantity int) error
	UpdateQuantity(id, userID string, quantity int) error
	// Delete removes a line scoped to the user. Deleting a line that does
	// not exist is not an error.
	Delete(id, userID string) error
	ClearUser(userID string) error
	Count(userID string) (int64, error)
}

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	GetByUser(userID string) ([]models.WishlistItem, error)
	// Add creates an entry for (user, product). Returns false when the
	// product was already in the wishlist.
	Add(userID, productID string) (bool, error)
	Delete(id, userID string) (int64, error)
	DeleteByIDs(userID string, ids []string) (int64, error)
	ClearUser(userID string) (int64, error)
	// MoveToCart atomically upserts a cart line for each entry's product and
	// deletes the entry. Ids not owned by the user are skipped. Returns how
	// many entries were moved.
	MoveToCart(userID string, ids ...string) (int, error)
	Count(userID string) (int64, error)
}
