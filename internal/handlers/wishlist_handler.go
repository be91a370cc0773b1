package handlers

import (
	"errors"
	"log"

	"duka/internal/middleware"
	"duka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the wishlist.
type WishlistHandler struct {
	wishlistService *services.WishlistService
	validate        *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes. All routes require
// authentication.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/items", h.HandleAddItem)
	wishlistRoutes.Delete("/items/:id", h.HandleRemoveItem)
	wishlistRoutes.Delete("/", h.HandleClear)
	wishlistRoutes.Post("/items/:id/move-to-cart", h.HandleMoveToCart)
	wishlistRoutes.Post("/move-selected", h.HandleMoveSelected)
	wishlistRoutes.Post("/remove-selected", h.HandleRemoveSelected)
}

// HandleGetWishlist returns the user's wishlist.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	items, err := h.wishlistService.GetWishlist(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
		})
	}
	return c.JSON(fiber.Map{
		"items": items,
		"count": len(items),
	})
}

// HandleAddItem adds a product to the wishlist. Adding a product that is
// already wishlisted is a no-op.
func (h *WishlistHandler) HandleAddItem(c *fiber.Ctx) error {
	var req struct {
		ProductID string `json:"product_id" validate:"required"`
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

	created, err := h.wishlistService.Add(middleware.UserID(c), req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error adding product %s to wishlist: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to wishlist",
		})
	}

	if !created {
		return c.JSON(fiber.Map{"message": "Product already in wishlist"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added to wishlist",
	})
}

// HandleRemoveItem removes a wishlist entry.
func (h *WishlistHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.wishlistService.Remove(middleware.UserID(c), itemID); err != nil {
		if errors.Is(err, services.ErrWishlistItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Wishlist item not found",
			})
		}
		log.Printf("Error removing wishlist item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove wishlist item",
		})
	}
	return c.JSON(fiber.Map{"message": "Item removed from wishlist"})
}

// HandleClear removes every entry from the user's wishlist.
func (h *WishlistHandler) HandleClear(c *fiber.Ctx) error {
	deleted, err := h.wishlistService.Clear(middleware.UserID(c))
	if err != nil {
		log.Printf("Error clearing wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear wishlist",
		})
	}
	return c.JSON(fiber.Map{
		"message":       "Wishlist cleared",
		"deleted_count": deleted,
	})
}

// HandleMoveToCart moves a single wishlist entry into the cart.
func (h *WishlistHandler) HandleMoveToCart(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.wishlistService.MoveToCart(middleware.UserID(c), itemID); err != nil {
		if errors.Is(err, services.ErrWishlistItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Wishlist item not found",
			})
		}
		log.Printf("Error moving wishlist item %s to cart: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not move item to cart",
		})
	}
	return c.JSON(fiber.Map{"message": "Item moved to cart"})
}

// HandleMoveSelected moves the selected wishlist entries into the cart.
// Entries that no longer exist are skipped.
func (h *WishlistHandler) HandleMoveSelected(c *fiber.Ctx) error {
	var req struct {
		WishlistIDs []string `json:"wishlist_ids" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "wishlist_ids is required",
		})
	}

	moved, err := h.wishlistService.MoveSelected(middleware.UserID(c), req.WishlistIDs)
	if err != nil {
		log.Printf("Error moving selected wishlist items to cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not move items to cart",
		})
	}
	return c.JSON(fiber.Map{
		"message":     "Items moved to cart",
		"moved_count": moved,
	})
}

// HandleRemoveSelected removes the selected wishlist entries.
func (h *WishlistHandler) HandleRemoveSelected(c *fiber.Ctx) error {
	var req struct {
		WishlistIDs []string `json:"wishlist_ids" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "wishlist_ids is required",
		})
	}

	removed, err := h.wishlistService.RemoveSelected(middleware.UserID(c), req.WishlistIDs)
	if err != nil {
		log.Printf("Error removing selected wishlist items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove items",
		})
	}
	return c.JSON(fiber.Map{
		"message":       "Items removed from wishlist",
		"removed_count": removed,
	})
}
