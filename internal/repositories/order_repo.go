package repositories

import (
	"duka/internal/models"
)

// OrderRepository defines the interface for order data access.
// Lookups return (nil, nil) when no row matches.
type OrderRepository interface {
	// CreateWithItems persists the order together with its items and clears
	// the user's cart lines in a single transaction.
	CreateWithItems(order *models.Order, clearCartUserID string) error
	GetByUser(userID string, status models.OrderStatus) ([]models.Order, error)
	GetByID(id, userID string) (*models.Order, error)
	// GetBySeller lists orders that contain at least one of the seller's
	// products.
	GetBySeller(sellerID string, status models.OrderStatus) ([]models.Order, error)
	SellerHasOrder(orderID, sellerID string) (bool, error)
	UpdateStatus(id string, status models.OrderStatus) error
	RecentDelivered(userID string, limit int) ([]models.Order, error)
	// SellerRevenue sums the seller's item totals over delivered orders.
	SellerRevenue(sellerID string) (float64, error)
	SellerOrderCount(sellerID string, status models.OrderStatus) (int64, error)
}
