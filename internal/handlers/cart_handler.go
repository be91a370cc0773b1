package handlers

import (
	"errors"
	"log"

	"duka/internal/middleware"
	"duka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes. All routes require
// authentication.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClear)
}

// HandleGetCart returns the user's cart with totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.cartService.GetCart(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(cart)
}

// HandleAddItem adds a product to the cart, incrementing the quantity if
// the product is already there.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req struct {
		ProductID string `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	userID := middleware.UserID(c)
	if err := h.cartService.AddToCart(userID, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
		})
	}

	count, err := h.cartService.Count(userID)
	if err != nil {
		log.Printf("Error counting cart items: %v", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Product added to cart",
		"cart_count": count,
	})
}

// HandleUpdateQuantity sets the quantity of a cart item. A quantity of
// zero or below removes the item.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	itemID := c.Params("id")
	if err := h.cartService.UpdateQuantity(middleware.UserID(c), itemID, req.Quantity); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error updating cart item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
		})
	}

	return c.JSON(fiber.Map{"message": "Cart updated"})
}

// HandleRemoveItem removes a cart item. Removing an item that is already
// gone is not an error.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.cartService.Remove(middleware.UserID(c), itemID); err != nil {
		log.Printf("Error removing cart item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
		})
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClear empties the user's cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.cartService.Clear(middleware.UserID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
		})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
