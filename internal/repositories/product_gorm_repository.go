package repositories

import (
	"fmt"

	"duka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves products matching the filter.
func (r *GORMProductRepository) GetAll(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).Preload("Category").Preload("Brand")

	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.SellerID != "" {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.DiscountOnly {
		query = query.Where("discount_price IS NOT NULL")
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	switch filter.Sort {
	case "price_low":
		query = query.Order("price ASC")
	case "price_high":
		query = query.Order("price DESC")
	case "discount":
		query = query.Where("discount_price IS NOT NULL").Order("discount_price DESC")
	default: // newest
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID. Returns (nil, nil) when the
// product does not exist.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Brand").Preload("Images").
		First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *GORMProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").Preload("Brand").Preload("Images").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by slug %s: %w", slug, err)
	}
	return &product, nil
}

// Related retrieves active products in the same category, excluding the
// product itself.
func (r *GORMProductRepository) Related(product *models.Product, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("category_id = ? AND is_active = ? AND id <> ?",
		product.CategoryID, true, product.ID).
		Limit(limit).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get related products: %w", err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	return nil
}

// SetActiveOwned flips is_active on the subset of ids owned by the seller.
func (r *GORMProductRepository) SetActiveOwned(sellerID string, ids []string, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&models.Product{}).
		Where("seller_id = ? AND id IN ?", sellerID, ids).
		Update("is_active", active)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update product status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteOwned deletes the subset of ids owned by the seller.
func (r *GORMProductRepository) DeleteOwned(sellerID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Where("seller_id = ? AND id IN ?", sellerID, ids).
		Delete(&models.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// CountBySeller counts a seller's products, optionally only active ones.
func (r *GORMProductRepository) CountBySeller(sellerID string, activeOnly bool) (int64, error) {
	query := r.db.Model(&models.Product{}).Where("seller_id = ?", sellerID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products for seller %s: %w", sellerID, err)
	}
	return count, nil
}

// CountLowStock counts a seller's active products at or below the threshold.
func (r *GORMProductRepository) CountLowStock(sellerID string, threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).
		Where("seller_id = ? AND is_active = ? AND stock <= ? AND stock > 0",
			sellerID, true, threshold).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock products: %w", err)
	}
	return count, nil
}
