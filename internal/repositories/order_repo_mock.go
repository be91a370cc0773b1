package repositories

import (
	"sync"
	"time"

	"duka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	// ClearedCarts records the user ids whose carts were cleared as part of
	// CreateWithItems, in call order.
	ClearedCarts []string
	mu           sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// CreateWithItems adds a new order. A duplicate order number fails with
// gorm.ErrDuplicatedKey, mirroring the unique index on the real table.
func (r *MockOrderRepository) CreateWithItems(order *models.Order, clearCartUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.orders {
		if existing.OrderNumber == order.OrderNumber {
			return gorm.ErrDuplicatedKey
		}
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order

	if clearCartUserID != "" {
		r.ClearedCarts = append(r.ClearedCarts, clearCartUserID)
	}
	return nil
}

// GetByUser returns a user's orders, optionally filtered by status.
func (r *MockOrderRepository) GetByUser(userID string, status models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// GetByID returns an order by its ID, scoped to the user when userID is set.
func (r *MockOrderRepository) GetByID(id, userID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	if userID != "" && order.UserID != userID {
		return nil, nil
	}
	return &order, nil
}

// GetBySeller returns orders containing any item owned by the seller.
func (r *MockOrderRepository) GetBySeller(sellerID string, status models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if status != "" && order.Status != status {
			continue
		}
		for _, item := range order.Items {
			if item.Product.SellerID == sellerID {
				orders = append(orders, order)
				break
			}
		}
	}
	return orders, nil
}

// SellerHasOrder reports whether the order contains any of the seller's items.
func (r *MockOrderRepository) SellerHasOrder(orderID, sellerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return false, nil
	}
	for _, item := range order.Items {
		if item.Product.SellerID == sellerID {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// RecentDelivered returns the user's delivered orders up to the limit.
func (r *MockOrderRepository) RecentDelivered(userID string, limit int) ([]models.Order, error) {
	orders, err := r.GetByUser(userID, models.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

// SellerRevenue sums the seller's item totals over delivered orders.
func (r *MockOrderRepository) SellerRevenue(sellerID string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var revenue float64
	for _, order := range r.orders {
		if order.Status != models.OrderStatusDelivered {
			continue
		}
		for _, item := range order.Items {
			if item.Product.SellerID == sellerID {
				revenue += item.Price * float64(item.Quantity)
			}
		}
	}
	return revenue, nil
}

// SellerOrderCount counts orders containing the seller's items.
func (r *MockOrderRepository) SellerOrderCount(sellerID string, status models.OrderStatus) (int64, error) {
	orders, err := r.GetBySeller(sellerID, status)
	if err != nil {
		return 0, err
	}
	return int64(len(orders)), nil
}
