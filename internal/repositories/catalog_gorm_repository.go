package repositories

import (
	"fmt"

	"duka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository defines data access for the read-mostly reference data:
// categories, brands and reviews.
type CatalogRepository interface {
	ListCategories() ([]models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	CreateCategory(category *models.Category) error
	ListBrands(activeOnly bool) ([]models.Brand, error)
	GetBrandBySlug(slug string) (*models.Brand, error)
	CreateBrand(brand *models.Brand) error
	ListReviews(productID string) ([]models.Review, error)
	CreateReview(review *models.Review) error
}

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// ListCategories retrieves all categories ordered by name.
func (r *GORMCatalogRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug retrieves a category by slug. Returns (nil, nil) when missing.
func (r *GORMCatalogRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// CreateCategory creates a new category.
func (r *GORMCatalogRepository) CreateCategory(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListBrands retrieves brands ordered by name.
func (r *GORMCatalogRepository) ListBrands(activeOnly bool) ([]models.Brand, error) {
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var brands []models.Brand
	if err := query.Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

// GetBrandBySlug retrieves a brand by slug. Returns (nil, nil) when missing.
func (r *GORMCatalogRepository) GetBrandBySlug(slug string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brand by slug %s: %w", slug, err)
	}
	return &brand, nil
}

// CreateBrand creates a new brand.
func (r *GORMCatalogRepository) CreateBrand(brand *models.Brand) error {
	if brand.ID == "" {
		brand.ID = uuid.New().String()
	}
	if err := r.db.Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// ListReviews retrieves a product's reviews, newest first.
func (r *GORMCatalogRepository) ListReviews(productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// CreateReview creates a new review. The unique (product, user) index rejects
// a second review from the same user.
func (r *GORMCatalogRepository) CreateReview(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}
