package repositories

import (
	"fmt"

	"duka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves all cart lines for a user with their products.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

// Upsert inserts a cart line or increments the existing one. The increment
// runs inside the database so concurrent adds cannot lose updates.
func (r *GORMCartRepository) Upsert(userID, productID string, quantity int) error {
	item := models.CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of an owned cart line.
func (r *GORMCartRepository) UpdateQuantity(id, userID string, quantity int) error {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes an owned cart line. Missing lines are ignored.
func (r *GORMCartRepository) Delete(id, userID string) error {
	err := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", id, err)
	}
	return nil
}

// ClearUser removes all cart lines for a user.
func (r *GORMCartRepository) ClearUser(userID string) error {
	err := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

// Count returns the number of cart lines for a user.
func (r *GORMCartRepository) Count(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CartItem{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}
