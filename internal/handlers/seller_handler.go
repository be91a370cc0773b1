package handlers

import (
	"errors"
	"fmt"
	"log"

	"duka/internal/middleware"
	"duka/internal/models"
	"duka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SellerHandler handles HTTP requests for the seller dashboard.
type SellerHandler struct {
	sellerService *services.SellerService
	validate      *validator.Validate
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(sellerService *services.SellerService) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the seller routes. The router is expected to
// carry both AuthRequired and SellerRequired middleware.
func (h *SellerHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleDashboard)
	router.Get("/store", h.HandleGetStore)
	router.Put("/store", h.HandleUpdateStore)
	router.Get("/products", h.HandleListProducts)
	router.Post("/products", h.HandleCreateProduct)
	router.Put("/products/:id", h.HandleUpdateProduct)
	router.Post("/products/status", h.HandleSetProductsActive)
	router.Post("/products/delete", h.HandleDeleteProducts)
	router.Get("/orders", h.HandleListOrders)
	router.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// HandleDashboard returns aggregate figures for the seller's store.
func (h *SellerHandler) HandleDashboard(c *fiber.Ctx) error {
	stats, err := h.sellerService.Dashboard(middleware.UserID(c))
	if err != nil {
		log.Printf("Error building seller dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build dashboard",
		})
	}
	return c.JSON(stats)
}

// HandleGetStore returns the seller's store profile.
func (h *SellerHandler) HandleGetStore(c *fiber.Ctx) error {
	profile, err := h.sellerService.Profile(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, services.ErrSellerProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Seller profile not found",
			})
		}
		log.Printf("Error getting seller profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve store profile",
		})
	}
	return c.JSON(fiber.Map{"store": profile})
}

// HandleUpdateStore updates the seller's store name and description.
func (h *SellerHandler) HandleUpdateStore(c *fiber.Ctx) error {
	var req struct {
		StoreName   string `json:"store_name" validate:"required,min=2,max=100"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "store_name must be between 2 and 100 characters",
		})
	}

	profile, err := h.sellerService.UpdateProfile(middleware.UserID(c), req.StoreName, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrSellerProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Seller profile not found",
			})
		}
		log.Printf("Error updating seller profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update store profile",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Store updated",
		"store":   profile,
	})
}

// HandleListProducts returns every product owned by the seller,
// including inactive ones.
func (h *SellerHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.sellerService.ListProducts(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing seller products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(fiber.Map{
		"products": products,
		"count":    len(products),
	})
}

// HandleCreateProduct creates a new product owned by the seller.
func (h *SellerHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.sellerService.CreateProduct(middleware.UserID(c), &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created",
		"product": product,
	})
}

// HandleUpdateProduct updates a product the seller owns.
func (h *SellerHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")

	if err := h.sellerService.UpdateProduct(middleware.UserID(c), &product); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error updating product %s: %v", product.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product updated",
		"product": product,
	})
}

// HandleSetProductsActive activates or deactivates a batch of the
// seller's products.
func (h *SellerHandler) HandleSetProductsActive(c *fiber.Ctx) error {
	var req struct {
		ProductIDs []string `json:"product_ids" validate:"required,min=1"`
		Action     string   `json:"action" validate:"required,oneof=activate deactivate"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_ids and a valid action are required",
		})
	}

	updated, err := h.sellerService.SetProductsActive(middleware.UserID(c), req.ProductIDs, req.Action == "activate")
	if err != nil {
		log.Printf("Error updating product status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update products",
		})
	}
	return c.JSON(fiber.Map{
		"message":       "Products updated",
		"updated_count": updated,
	})
}

// HandleDeleteProducts deletes a batch of the seller's products.
func (h *SellerHandler) HandleDeleteProducts(c *fiber.Ctx) error {
	var req struct {
		ProductIDs []string `json:"product_ids" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_ids is required",
		})
	}

	deleted, err := h.sellerService.DeleteProducts(middleware.UserID(c), req.ProductIDs)
	if err != nil {
		log.Printf("Error deleting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete products",
		})
	}
	return c.JSON(fiber.Map{
		"message":       "Products deleted",
		"deleted_count": deleted,
	})
}

// HandleListOrders returns orders containing at least one of the
// seller's products.
func (h *SellerHandler) HandleListOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status",
		})
	}

	orders, err := h.sellerService.Orders(middleware.UserID(c), status)
	if err != nil {
		log.Printf("Error listing seller orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(fiber.Map{
		"orders": orders,
		"count":  len(orders),
	})
}

// HandleUpdateOrderStatus moves an order containing the seller's
// products along the fulfilment lifecycle.
func (h *SellerHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status",
		})
	}

	orderID := c.Params("id")
	if err := h.sellerService.UpdateOrderStatus(middleware.UserID(c), orderID, status); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		if errors.Is(err, services.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": fmt.Sprintf("Order cannot move to status '%s'", status),
			})
		}
		log.Printf("Error updating status of order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
		})
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}
