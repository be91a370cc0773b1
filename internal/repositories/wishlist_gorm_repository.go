package repositories

import (
	"fmt"

	"duka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// GetByUser retrieves all wishlist entries for a user, newest first.
func (r *GORMWishlistRepository) GetByUser(userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Preload("Product").Preload("Product.Category").Preload("Product.Brand").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist for user %s: %w", userID, err)
	}
	return items, nil
}

// Add creates a wishlist entry for (user, product). Returns false when the
// entry already existed.
func (r *GORMWishlistRepository) Add(userID, productID string) (bool, error) {
	item := models.WishlistItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
	}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&item)
	if res.Error != nil {
		return false, fmt.Errorf("failed to add wishlist item: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes an owned wishlist entry and reports how many rows matched.
func (r *GORMWishlistRepository) Delete(id, userID string) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete wishlist item %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByIDs removes the owned subset of the given entry ids.
func (r *GORMWishlistRepository) DeleteByIDs(userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete wishlist items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ClearUser removes all wishlist entries for a user.
func (r *GORMWishlistRepository) ClearUser(userID string) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.WishlistItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear wishlist for user %s: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

// MoveToCart moves the owned subset of the given entries into the cart. Each
// move runs in one transaction so an entry can never end up in both or
// neither container.
func (r *GORMWishlistRepository) MoveToCart(userID string, ids ...string) (int, error) {
	moved := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			var entry models.WishlistItem
			if err := tx.First(&entry, "id = ? AND user_id = ?", id, userID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					continue // unknown or foreign id, skip silently
				}
				return err
			}

			cartItem := models.CartItem{
				ID:        uuid.New().String(),
				UserID:    userID,
				ProductID: entry.ProductID,
				Quantity:  1,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": gorm.Expr("quantity + ?", 1),
				}),
			}).Create(&cartItem).Error
			if err != nil {
				return err
			}

			if err := tx.Delete(&entry).Error; err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to move wishlist items to cart: %w", err)
	}
	return moved, nil
}

// Count returns the number of wishlist entries for a user.
func (r *GORMWishlistRepository) Count(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}
	return count, nil
}
