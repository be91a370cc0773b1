package handlers

import (
	"log"

	"duka/internal/mpesa"
	"duka/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler receives asynchronous payment notifications from the
// M-Pesa gateway.
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers the callback route. The gateway cannot send a
// JWT, so this route must stay on the public group.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/payments/mpesa/callback", h.HandleMpesaCallback)
}

// HandleMpesaCallback processes the STK push result. The gateway retries
// on non-acknowledgement, so the response is always the success
// acknowledgement; failures are logged and resolved out of band.
func (h *PaymentHandler) HandleMpesaCallback(c *fiber.Ctx) error {
	var body mpesa.CallbackBody
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing M-Pesa callback body: %v", err)
		return c.JSON(fiber.Map{"ResultCode": 0, "ResultDesc": "Success"})
	}

	if err := h.paymentService.HandleCallback(&body.Body.STKCallback); err != nil {
		log.Printf("Error handling M-Pesa callback %s: %v", body.Body.STKCallback.CheckoutRequestID, err)
	}

	return c.JSON(fiber.Map{"ResultCode": 0, "ResultDesc": "Success"})
}
