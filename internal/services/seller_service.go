package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"duka/internal/models"
	"duka/internal/repositories"

	"github.com/google/uuid"
)

const lowStockThreshold = 10

// DashboardStats summarises a seller's store.
type DashboardStats struct {
	Profile        *models.SellerProfile `json:"profile"`
	TotalProducts  int64                 `json:"total_products"`
	ActiveProducts int64                 `json:"active_products"`
	TotalOrders    int64                 `json:"total_orders"`
	PendingOrders  int64                 `json:"pending_orders"`
	TotalRevenue   float64               `json:"total_revenue"`
	LowStockCount  int64                 `json:"low_stock_count"`
}

// ProductCacheInvalidator drops cached product detail pages after a seller
// write, so stale copies never outlive an edit, deactivation or delete.
type ProductCacheInvalidator interface {
	InvalidateProducts(ctx context.Context, slugs ...string)
}

// SellerService handles the seller-facing operations. Every query and
// mutation is scoped to the caller's own profile: authorization is the
// ownership filter itself, ids outside it are simply not visible.
type SellerService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	cache       ProductCacheInvalidator
}

// NewSellerService creates a new SellerService.
func NewSellerService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository) *SellerService {
	return &SellerService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// SetCacheInvalidator hooks product cache invalidation into the write
// paths. The service works without it.
func (s *SellerService) SetCacheInvalidator(cache ProductCacheInvalidator) {
	s.cache = cache
}

// Profile retrieves the caller's seller profile.
func (s *SellerService) Profile(userID string) (*models.SellerProfile, error) {
	profile, err := s.userRepo.GetSellerProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrSellerProfileNotFound
	}
	return profile, nil
}

// UpdateProfile saves store settings on the caller's profile.
func (s *SellerService) UpdateProfile(userID, storeName, description string) (*models.SellerProfile, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	if storeName != "" {
		profile.StoreName = storeName
	}
	if description != "" {
		profile.Description = description
	}
	if err := s.userRepo.UpdateSellerProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Dashboard computes the caller's store statistics.
func (s *SellerService) Dashboard(userID string) (*DashboardStats, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Profile: profile}
	if stats.TotalProducts, err = s.productRepo.CountBySeller(profile.ID, false); err != nil {
		return nil, err
	}
	if stats.ActiveProducts, err = s.productRepo.CountBySeller(profile.ID, true); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.SellerOrderCount(profile.ID, ""); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.orderRepo.SellerOrderCount(profile.ID, models.OrderStatusPending); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.orderRepo.SellerRevenue(profile.ID); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountLowStock(profile.ID, lowStockThreshold); err != nil {
		return nil, err
	}
	return stats, nil
}

// ListProducts retrieves the caller's products, active or not.
func (s *SellerService) ListProducts(userID string) ([]models.Product, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetAll(repositories.ProductFilter{SellerID: profile.ID})
}

// CreateProduct creates a product owned by the caller. The slug is derived
// from the name with a random suffix to keep it unique.
func (s *SellerService) CreateProduct(userID string, product *models.Product) error {
	profile, err := s.Profile(userID)
	if err != nil {
		return err
	}
	product.ID = uuid.New().String()
	product.SellerID = profile.ID
	if product.Slug == "" {
		product.Slug = slugify(product.Name) + "-" + product.ID[:8]
	}
	return s.productRepo.Create(product)
}

// UpdateProduct saves changes to one of the caller's products. Foreign
// products read as not found.
func (s *SellerService) UpdateProduct(userID string, product *models.Product) error {
	profile, err := s.Profile(userID)
	if err != nil {
		return err
	}
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.SellerID != profile.ID {
		return ErrProductNotFound
	}
	product.SellerID = profile.ID
	if product.Slug == "" {
		product.Slug = existing.Slug
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	// Both slugs: an edit may have renamed the detail page.
	s.invalidate(existing.Slug, product.Slug)
	return nil
}

// SetProductsActive bulk-activates or deactivates the caller's products.
// Ids the ownership filter does not prove are dropped without error; the
// count of rows actually updated is returned.
func (s *SellerService) SetProductsActive(userID string, productIDs []string, active bool) (int64, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return 0, err
	}
	slugs := s.ownedSlugs(profile.ID, productIDs)
	count, err := s.productRepo.SetActiveOwned(profile.ID, productIDs, active)
	if err != nil {
		return 0, err
	}
	s.invalidate(slugs...)
	return count, nil
}

// DeleteProducts bulk-deletes the owned subset of the given products and
// reports the count actually deleted.
func (s *SellerService) DeleteProducts(userID string, productIDs []string) (int64, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return 0, err
	}
	// Slugs must be read before the delete removes the rows.
	slugs := s.ownedSlugs(profile.ID, productIDs)
	count, err := s.productRepo.DeleteOwned(profile.ID, productIDs)
	if err != nil {
		return 0, err
	}
	s.invalidate(slugs...)
	return count, nil
}

// Orders lists orders that contain the caller's products.
func (s *SellerService) Orders(userID string, status models.OrderStatus) ([]models.Order, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.orderRepo.GetBySeller(profile.ID, status)
}

// UpdateOrderStatus moves an order containing the caller's products forward
// in its lifecycle. Orders without any of the caller's items read as not
// found.
func (s *SellerService) UpdateOrderStatus(userID, orderID string, status models.OrderStatus) error {
	profile, err := s.Profile(userID)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	owns, err := s.orderRepo.SellerHasOrder(orderID, profile.ID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(orderID, "")
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if !order.Status.CanTransitionTo(status) {
		return ErrInvalidTransition
	}
	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", orderID, err)
	}
	return nil
}

func (s *SellerService) invalidate(slugs ...string) {
	if s.cache == nil || len(slugs) == 0 {
		return
	}
	s.cache.InvalidateProducts(context.Background(), slugs...)
}

// ownedSlugs resolves the slugs of the caller-owned subset of ids. A read
// failure only costs cache freshness, so it is logged and swallowed.
func (s *SellerService) ownedSlugs(sellerID string, ids []string) []string {
	if s.cache == nil || len(ids) == 0 {
		return nil
	}
	products, err := s.productRepo.GetAll(repositories.ProductFilter{SellerID: sellerID, IDs: ids})
	if err != nil {
		log.Printf("Failed to resolve slugs for cache invalidation: %v", err)
		return nil
	}
	slugs := make([]string, 0, len(products))
	for _, p := range products {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

// slugify lowercases the name and keeps letters, digits and dashes.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
