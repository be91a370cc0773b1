package handlers

import (
	"errors"
	"log"
	"strconv"

	"duka/internal/middleware"
	"duka/internal/repositories"
	"duka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for browsing products, categories
// and brands.
type CatalogHandler struct {
	catalogService *services.CatalogService
	validate       *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/search", h.HandleSearch)
	router.Get("/products/:slug", h.HandleGetProduct)
	router.Get("/products/:slug/reviews", h.HandleListReviews)
	router.Get("/categories", h.HandleListCategories)
	router.Get("/brands", h.HandleListBrands)
	router.Get("/brands/:slug", h.HandleBrandProducts)
}

// RegisterProtectedRoutes registers catalog routes that require a logged-in
// user.
func (h *CatalogHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/products/:slug/reviews", h.HandleCreateReview)
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// HandleListProducts returns the product listing with optional filters.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repositories.ProductFilter{
		CategoryID:   c.Query("category_id"),
		BrandID:      c.Query("brand_id"),
		Gender:       c.Query("gender"),
		DiscountOnly: c.Query("discount") == "true",
		Sort:         c.Query("sort"),
		Limit:        limit,
		Offset:       offset,
	}
	if v := c.Query("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}

	products, err := h.catalogService.ListProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

// HandleSearch returns products matching a free-text query.
func (h *CatalogHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'q' is required",
		})
	}

	limit, offset := parsePagination(c)
	products, err := h.catalogService.SearchProducts(query, limit, offset)
	if err != nil {
		log.Printf("Error searching products for %q: %v", query, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not search products",
		})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"query":    query,
		"count":    len(products),
	})
}

// HandleGetProduct returns a single product detail page with related
// products.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.catalogService.GetProductBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}

	related, err := h.catalogService.RelatedProducts(product, 4)
	if err != nil {
		log.Printf("Error getting related products for %s: %v", slug, err)
		related = nil
	}

	return c.JSON(fiber.Map{
		"product":          product,
		"related_products": related,
	})
}

// HandleListReviews returns the reviews for a product.
func (h *CatalogHandler) HandleListReviews(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.catalogService.GetProductBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}

	reviews, err := h.catalogService.ListReviews(product.ID)
	if err != nil {
		log.Printf("Error listing reviews for product %s: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
		})
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// HandleCreateReview creates a review for a product by the logged-in user.
func (h *CatalogHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Rating must be between 1 and 5",
		})
	}

	slug := c.Params("slug")
	product, err := h.catalogService.GetProductBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}

	review, err := h.catalogService.AddReview(middleware.UserID(c), product.ID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyReviewed) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "You have already reviewed this product",
			})
		}
		log.Printf("Error creating review for product %s: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create review",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review created",
		"review":  review,
	})
}

// HandleListCategories returns all product categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleListBrands returns all active brands.
func (h *CatalogHandler) HandleListBrands(c *fiber.Ctx) error {
	brands, err := h.catalogService.ListBrands()
	if err != nil {
		log.Printf("Error listing brands: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve brands",
		})
	}
	return c.JSON(fiber.Map{"brands": brands})
}

// HandleBrandProducts returns a brand with its products.
func (h *CatalogHandler) HandleBrandProducts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	brand, products, err := h.catalogService.BrandProducts(c.Params("slug"), limit, offset)
	if err != nil {
		if errors.Is(err, services.ErrBrandNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Brand not found",
			})
		}
		log.Printf("Error getting brand %s: %v", c.Params("slug"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve brand",
		})
	}

	return c.JSON(fiber.Map{
		"brand":    brand,
		"products": products,
		"count":    len(products),
	})
}
