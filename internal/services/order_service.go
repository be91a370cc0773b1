package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"duka/internal/models"
	"duka/internal/repositories"
	"duka/pkg/rabbitmq"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutRequest carries the shipping and payment details for an order.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Phone           string `json:"phone" validate:"required,min=9,max=15"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=mpesa card cod"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		mqClient:  mqClient,
	}
}

// Checkout converts the user's current cart into an order. Each cart line
// becomes an order item with the product's final price frozen at this
// instant; the cart is cleared in the same transaction. An empty cart fails
// with ErrEmptyCart and no side effects.
func (s *OrderService) Checkout(userID string, req CheckoutRequest) (*models.Order, error) {
	cartItems, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(cartItems))
	for i := range cartItems {
		price := cartItems[i].Product.FinalPrice()
		items = append(items, models.OrderItem{
			ProductID: cartItems[i].ProductID,
			Quantity:  cartItems[i].Quantity,
			Price:     price,
		})
		subtotal += price * float64(cartItems[i].Quantity)
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		Subtotal:        subtotal,
		ShippingFee:     ShippingFee,
		Total:           subtotal + ShippingFee,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		Items:           items,
	}

	// Retry with a fresh number if the unique index rejects a collision.
	for attempt := 0; attempt < 3; attempt++ {
		order.OrderNumber = newOrderNumber()
		err = s.orderRepo.CreateWithItems(order, userID)
		if err == nil {
			break
		}
		if !isDuplicateKey(err) {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"userID":      order.UserID,
		"status":      order.Status,
		"total":       order.Total,
	})
	return order, nil
}

// GetOrders retrieves the user's orders, optionally filtered by status.
func (s *OrderService) GetOrders(userID string, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.orderRepo.GetByUser(userID, status)
}

// GetOrder retrieves one of the user's orders. Foreign orders read as not
// found.
func (s *OrderService) GetOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Cancel cancels one of the user's orders. Only pending and processing
// orders may be cancelled; anything further along fails with ErrCannotCancel
// and the status is left unchanged.
func (s *OrderService) Cancel(userID, orderID string) error {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return err
	}
	if !order.Status.Cancellable() {
		return ErrCannotCancel
	}
	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}

	s.publishEvent("order.cancelled", map[string]interface{}{
		"orderID":     order.ID,
		"orderNumber": order.OrderNumber,
		"userID":      order.UserID,
	})
	return nil
}

func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("order", routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}

// newOrderNumber generates a human-readable order number. Uniqueness is
// ultimately enforced by the database index; Checkout retries on conflict.
func newOrderNumber() string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ORD-" + strings.ToUpper(token[:12])
}

// isDuplicateKey recognises unique-index violations across the postgres and
// sqlite drivers.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// TrackingStep is one milestone on an order's tracking timeline.
type TrackingStep struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
}

// TrackingInfo is the derived shipping timeline for an order.
type TrackingInfo struct {
	Steps             []TrackingStep `json:"steps"`
	TrackingNumber    string         `json:"tracking_number"`
	Carrier           string         `json:"carrier"`
	EstimatedDelivery string         `json:"estimated_delivery"`
	CurrentStep       int            `json:"current_step"`
}

const trackingDateLayout = "Jan 02, 2006 3:04 PM"

var trackingStepIndex = map[models.OrderStatus]int{
	models.OrderStatusPending:    0,
	models.OrderStatusProcessing: 1,
	models.OrderStatusShipped:    2,
	models.OrderStatusDelivered:  4,
	models.OrderStatusCancelled:  -1,
}

// Track builds the tracking timeline for one of the user's orders. Dates for
// intermediate steps are derived from the creation time; there is no carrier
// integration.
func (s *OrderService) Track(userID, orderID string) (*models.Order, *TrackingInfo, error) {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, nil, err
	}

	currentStep := trackingStepIndex[order.Status]
	stepDates := []time.Time{
		order.CreatedAt,
		order.CreatedAt.Add(1 * time.Hour),
		order.CreatedAt.Add(24 * time.Hour),
		order.CreatedAt.Add(3 * 24 * time.Hour),
		order.CreatedAt.Add(4 * 24 * time.Hour),
	}
	labels := []struct{ status, description string }{
		{"Order Placed", "Your order has been received"},
		{"Order Confirmed", "We are processing your order"},
		{"Shipped", "Your order is on its way"},
		{"Out for Delivery", "Your order is out for delivery"},
		{"Delivered", "Your order has been delivered"},
	}

	steps := make([]TrackingStep, len(labels))
	for i, label := range labels {
		step := TrackingStep{
			Status:      label.status,
			Description: label.description,
			Date:        "Pending",
			Completed:   i <= currentStep,
		}
		if step.Completed {
			step.Date = stepDates[i].Format(trackingDateLayout)
		}
		steps[i] = step
	}

	info := &TrackingInfo{
		Steps:             steps,
		TrackingNumber:    "DKTK" + strings.ToUpper(strings.ReplaceAll(order.ID, "-", "")[:8]),
		Carrier:           "Duka Express",
		EstimatedDelivery: stepDates[4].Format("January 02, 2006"),
		CurrentStep:       currentStep,
	}
	return order, info, nil
}
