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

// OrderHandler handles HTTP requests for checkout, order history and
// order tracking.
type OrderHandler struct {
	orderService   *services.OrderService
	paymentService *services.PaymentService
	reorderService *services.ReorderService
	validate       *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, paymentService *services.PaymentService, reorderService *services.ReorderService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
		reorderService: reorderService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the order routes. All routes require
// authentication.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
	orderRoutes.Get("/:id/track", h.HandleTrackOrder)
	orderRoutes.Get("/:id/payment", h.HandleGetPayment)
	orderRoutes.Post("/:id/pay", h.HandleRetryPayment)

	router.Get("/reorder-items", h.HandleListReorderItems)
	router.Post("/reorder-items/add-to-cart", h.HandleReorderAddToCart)
}

// HandleCheckout converts the user's cart into an order. When the payment
// method is M-Pesa, an STK push is sent to the customer's phone in the
// same request.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
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

	order, err := h.orderService.Checkout(middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Your cart is empty",
			})
		}
		log.Printf("Error during checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
		})
	}

	response := fiber.Map{
		"message": "Order placed successfully",
		"order":   order,
	}

	if order.PaymentMethod == models.PaymentMethodMpesa {
		txn, err := h.paymentService.InitiatePayment(c.Context(), order)
		if err != nil {
			// The order exists either way; the client can retry the
			// payment via POST /orders/:id/pay.
			log.Printf("Error initiating M-Pesa payment for order %s: %v", order.ID, err)
			response["payment"] = fiber.Map{
				"initiated": false,
				"error":     "Could not initiate M-Pesa payment, please retry",
			}
		} else {
			response["payment"] = fiber.Map{
				"initiated":           true,
				"checkout_request_id": txn.CheckoutRequestID,
				"message":             "Check your phone to complete payment",
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleListOrders returns the user's orders, optionally filtered by
// status.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status",
		})
	}

	orders, err := h.orderService.GetOrders(middleware.UserID(c), status)
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}

	return c.JSON(fiber.Map{
		"orders": orders,
		"count":  len(orders),
	})
}

// HandleGetOrder returns a single order belonging to the user.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}
	return c.JSON(fiber.Map{"order": order})
}

// HandleCancelOrder cancels an order that has not shipped yet.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.orderService.Cancel(middleware.UserID(c), orderID); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		if errors.Is(err, services.ErrCannotCancel) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "This order can no longer be cancelled",
			})
		}
		log.Printf("Error cancelling order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel order",
		})
	}
	return c.JSON(fiber.Map{"message": "Order cancelled"})
}

// HandleTrackOrder returns the delivery timeline for an order.
func (h *OrderHandler) HandleTrackOrder(c *fiber.Ctx) error {
	order, tracking, err := h.orderService.Track(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error tracking order %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not track order",
		})
	}
	return c.JSON(fiber.Map{
		"order":    order,
		"tracking": tracking,
	})
}

// HandleGetPayment returns the M-Pesa transaction recorded for an order.
func (h *OrderHandler) HandleGetPayment(c *fiber.Ctx) error {
	txn, err := h.paymentService.GetTransaction(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting payment for order %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve payment",
		})
	}
	if txn == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No payment has been initiated for this order",
		})
	}
	return c.JSON(fiber.Map{"transaction": txn})
}

// HandleRetryPayment re-sends the STK push for a pending M-Pesa order.
func (h *OrderHandler) HandleRetryPayment(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		log.Printf("Error getting order %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
		})
	}

	if order.PaymentMethod != models.PaymentMethodMpesa {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "This order is not paid via M-Pesa",
		})
	}
	if order.PaymentStatus == models.PaymentStatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "This order has already been paid",
		})
	}
	// A declined push cancels the order, and cancelled is terminal. Only a
	// pending order is still awaiting payment.
	if order.Status != models.OrderStatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "This order is no longer awaiting payment",
		})
	}

	txn, err := h.paymentService.InitiatePayment(c.Context(), order)
	if err != nil {
		log.Printf("Error initiating M-Pesa payment for order %s: %v", order.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not initiate M-Pesa payment",
		})
	}

	return c.JSON(fiber.Map{
		"message":             "Check your phone to complete payment",
		"checkout_request_id": txn.CheckoutRequestID,
	})
}

// HandleListReorderItems returns items from recently delivered orders
// that can be bought again.
func (h *OrderHandler) HandleListReorderItems(c *fiber.Ctx) error {
	items, err := h.reorderService.ListReorderItems(middleware.UserID(c))
	if err != nil {
		log.Printf("Error listing reorder items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reorder items",
		})
	}
	return c.JSON(fiber.Map{
		"items": items,
		"count": len(items),
	})
}

// HandleReorderAddToCart adds the requested reorder items back into the
// cart, clamping quantities to available stock.
func (h *OrderHandler) HandleReorderAddToCart(c *fiber.Ctx) error {
	var req struct {
		Items []services.ReorderRequestItem `json:"items" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "items is required",
		})
	}

	added, problems := h.reorderService.AddToCart(middleware.UserID(c), req.Items)
	return c.JSON(fiber.Map{
		"message":     fmt.Sprintf("%d item(s) added to cart", added),
		"added_count": added,
		"problems":    problems,
	})
}
