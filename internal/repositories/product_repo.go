package repositories

import (
	"duka/internal/models"
)

// ProductFilter narrows and orders a product listing. Zero values mean
// "don't filter on this".
type ProductFilter struct {
	IDs          []string
	CategoryID   string
	BrandID      string
	Gender       string
	MinPrice     *float64
	MaxPrice     *float64
	DiscountOnly bool
	Query        string // matches name or description
	SellerID     string
	ActiveOnly   bool
	Sort         string // newest (default), price_low, price_high, discount
	Limit        int
	Offset       int
}

// ProductRepository defines the interface for product data access.
// Lookups return (nil, nil) when no row matches.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Related(product *models.Product, limit int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// SetActiveOwned and DeleteOwned apply only to rows the seller owns and
	// report how many rows were actually touched.
	SetActiveOwned(sellerID string, ids []string, active bool) (int64, error)
	DeleteOwned(sellerID string, ids []string) (int64, error)
	CountBySeller(sellerID string, activeOnly bool) (int64, error)
	CountLowStock(sellerID string, threshold int) (int64, error)
}
