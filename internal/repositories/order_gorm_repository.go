package repositories

import (
	"fmt"

	"duka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateWithItems persists the order with its items and deletes the user's
// cart lines. The whole conversion is one transaction: a failure at any step
// rolls everything back, so a cart state converts into an order at most once.
func (r *GORMOrderRepository) CreateWithItems(order *models.Order, clearCartUserID string) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if clearCartUserID != "" {
			if err := tx.Where("user_id = ?", clearCartUserID).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByUser retrieves a user's orders, newest first, optionally filtered by
// status.
func (r *GORMOrderRepository) GetByUser(userID string, status models.OrderStatus) ([]models.Order, error) {
	query := r.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order. When userID is non-empty the lookup is
// scoped to that owner, so a foreign order reads as not found.
func (r *GORMOrderRepository) GetByID(id, userID string) (*models.Order, error) {
	query := r.db.Preload("Items").Preload("Items.Product").Where("id = ?", id)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var order models.Order
	if err := query.First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return &order, nil
}

// GetBySeller lists orders containing at least one of the seller's products.
func (r *GORMOrderRepository) GetBySeller(sellerID string, status models.OrderStatus) ([]models.Order, error) {
	query := r.db.Preload("Items").Preload("Items.Product").
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID).
		Distinct("orders.*").
		Order("orders.created_at DESC")
	if status != "" {
		query = query.Where("orders.status = ?", status)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for seller %s: %w", sellerID, err)
	}
	return orders, nil
}

// SellerHasOrder reports whether the order contains any of the seller's
// products.
func (r *GORMOrderRepository) SellerHasOrder(orderID, sellerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.seller_id = ?", orderID, sellerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check seller order %s: %w", orderID, err)
	}
	return count > 0, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecentDelivered retrieves the user's most recent delivered orders.
func (r *GORMOrderRepository) RecentDelivered(userID string, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ? AND status = ?", userID, models.OrderStatusDelivered).
		Order("created_at DESC").Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get delivered orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// SellerRevenue sums the seller's item totals over delivered orders.
func (r *GORMOrderRepository) SellerRevenue(sellerID string) (float64, error) {
	var revenue float64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("products.seller_id = ? AND orders.status = ?", sellerID, models.OrderStatusDelivered).
		Select("COALESCE(SUM(order_items.price * order_items.quantity), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute revenue for seller %s: %w", sellerID, err)
	}
	return revenue, nil
}

// SellerOrderCount counts distinct orders containing the seller's products,
// optionally filtered by status.
func (r *GORMOrderRepository) SellerOrderCount(sellerID string, status models.OrderStatus) (int64, error) {
	query := r.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID)
	if status != "" {
		query = query.Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.status = ?", status)
	}
	var count int64
	if err := query.Distinct("order_items.order_id").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders for seller %s: %w", sellerID, err)
	}
	return count, nil
}
