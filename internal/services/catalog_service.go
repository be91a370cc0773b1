package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"duka/internal/models"
	"duka/internal/repositories"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const productCacheTTL = 5 * time.Minute

// CatalogService handles product browsing: listings, search, detail pages,
// categories and brands.
type CatalogService struct {
	productRepo repositories.ProductRepository
	catalogRepo repositories.CatalogRepository
	redisClient *redis.Client
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, catalogRepo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
	}
}

// SetRedisClient enables read-through caching of product detail lookups.
// The service works without it.
func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// ListProducts retrieves active products matching the filter.
func (s *CatalogService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	filter.ActiveOnly = true
	return s.productRepo.GetAll(filter)
}

// SearchProducts retrieves active products whose name or description match
// the query.
func (s *CatalogService) SearchProducts(query string, limit, offset int) ([]models.Product, error) {
	return s.ListProducts(repositories.ProductFilter{
		Query:  query,
		Limit:  limit,
		Offset: offset,
	})
}

func productCacheKey(slug string) string {
	return fmt.Sprintf("product:slug:%s", slug)
}

// InvalidateProducts drops the cached detail pages for the given slugs.
// Seller write paths call it so edits, deactivations and deletes are
// visible immediately instead of after the TTL.
func (s *CatalogService) InvalidateProducts(ctx context.Context, slugs ...string) {
	if s.redisClient == nil || len(slugs) == 0 {
		return
	}
	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = productCacheKey(slug)
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate product cache for %v: %v", slugs, err)
	}
}

// GetProductBySlug retrieves an active product for its detail page. Results
// are cached for a few minutes when Redis is configured.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	cacheKey := productCacheKey(slug)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return product, nil
}

// RelatedProducts retrieves active products from the same category.
func (s *CatalogService) RelatedProducts(product *models.Product, limit int) ([]models.Product, error) {
	return s.productRepo.Related(product, limit)
}

// ListCategories retrieves all categories.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.catalogRepo.ListCategories()
}

// ListBrands retrieves all active brands.
func (s *CatalogService) ListBrands() ([]models.Brand, error) {
	return s.catalogRepo.ListBrands(true)
}

// BrandProducts retrieves a brand by slug together with its active products.
func (s *CatalogService) BrandProducts(slug string, limit, offset int) (*models.Brand, []models.Product, error) {
	brand, err := s.catalogRepo.GetBrandBySlug(slug)
	if err != nil {
		return nil, nil, err
	}
	if brand == nil || !brand.IsActive {
		return nil, nil, ErrBrandNotFound
	}
	products, err := s.ListProducts(repositories.ProductFilter{
		BrandID: brand.ID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, nil, err
	}
	return brand, products, nil
}

// ListReviews retrieves a product's reviews.
func (s *CatalogService) ListReviews(productID string) ([]models.Review, error) {
	return s.catalogRepo.ListReviews(productID)
}

// AddReview records a customer review for a product. The unique index keeps
// one review per (product, user).
func (s *CatalogService) AddReview(userID, productID string, rating int, comment string) (*models.Review, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.catalogRepo.CreateReview(review); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}
