package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"duka/internal/models"
	"duka/internal/mpesa"
	"duka/internal/repositories"
	"duka/pkg/rabbitmq"

	"github.com/google/uuid"
)

// PaymentGateway is the outbound side of the mobile-money protocol.
type PaymentGateway interface {
	STKPush(ctx context.Context, phone string, amount int, accountRef, description string) (*mpesa.STKPushResponse, error)
}

// PaymentService drives the two-phase mobile-money flow: a synchronous push
// initiation and an asynchronous callback resolving it.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	gateway     PaymentGateway
	mqClient    *rabbitmq.Client
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, orderRepo repositories.OrderRepository, gateway PaymentGateway, mqClient *rabbitmq.Client) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		mqClient:    mqClient,
	}
}

// InitiatePayment pushes a payment prompt for the order. On gateway
// acceptance the correlation ids are persisted; the order stays pending until
// the callback resolves the outcome. A rejected or unreachable gateway leaves
// no transaction row, so initiation can simply be retried.
func (s *PaymentService) InitiatePayment(ctx context.Context, order *models.Order) (*models.MpesaTransaction, error) {
	resp, err := s.gateway.STKPush(ctx, order.Phone, int(order.Total),
		order.OrderNumber, fmt.Sprintf("Payment for order %s", order.OrderNumber))
	if err != nil {
		return nil, fmt.Errorf("failed to initiate payment for order %s: %w", order.OrderNumber, err)
	}

	// One transaction per order: a re-initiation replaces the correlation
	// ids instead of inserting a second row.
	txn, err := s.paymentRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	created := txn == nil
	if created {
		txn = &models.MpesaTransaction{
			ID:      uuid.New().String(),
			OrderID: order.ID,
		}
	}
	txn.CheckoutRequestID = resp.CheckoutRequestID
	txn.MerchantRequestID = resp.MerchantRequestID
	txn.PhoneNumber = order.Phone
	txn.Amount = order.Total

	if created {
		err = s.paymentRepo.Create(txn)
	} else {
		err = s.paymentRepo.Update(txn)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// HandleCallback resolves a previously initiated push from the gateway's
// asynchronous notification. An unknown CheckoutRequestID is acknowledged and
// ignored: the gateway retries callbacks and must never receive an error.
func (s *PaymentService) HandleCallback(cb *mpesa.STKCallback) error {
	txn, err := s.paymentRepo.GetByCheckoutRequestID(cb.CheckoutRequestID)
	if err != nil {
		return err
	}
	if txn == nil {
		log.Printf("Ignoring mpesa callback for unknown checkout request %s", cb.CheckoutRequestID)
		return nil
	}

	resultCode := cb.ResultCode
	txn.ResultCode = &resultCode
	txn.ResultDesc = cb.ResultDesc

	// On failure no charge happened, so the order is cancelled rather than
	// refunded.
	orderStatus := models.OrderStatusCancelled
	paymentStatus := models.PaymentStatusFailed
	event := "payment.failed"
	if cb.Succeeded() {
		txn.ReceiptNumber = cb.ReceiptNumber()
		if t, ok := cb.TransactionTime(); ok {
			txn.TransactionDate = &t
		}
		orderStatus = models.OrderStatusProcessing
		paymentStatus = models.PaymentStatusCompleted
		event = "payment.completed"
	}

	// A replayed or late callback must not move a settled order: cancelled
	// has no outgoing transitions. Record the gateway result on the
	// transaction and leave the order where it is.
	order, err := s.orderRepo.GetByID(txn.OrderID, "")
	if err != nil {
		return err
	}
	if order != nil && !order.Status.CanTransitionTo(orderStatus) {
		log.Printf("Ignoring mpesa callback for order %s: %s cannot move to %s",
			txn.OrderID, order.Status, orderStatus)
		return s.paymentRepo.Update(txn)
	}

	if err := s.paymentRepo.ApplyCallback(txn, orderStatus, paymentStatus); err != nil {
		return err
	}
	s.publishEvent(event, txn)
	return nil
}

// GetTransaction retrieves the transaction attached to one of the user's
// orders.
func (s *PaymentService) GetTransaction(userID, orderID string) (*models.MpesaTransaction, error) {
	order, err := s.orderRepo.GetByID(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.paymentRepo.GetByOrderID(order.ID)
}

func (s *PaymentService) publishEvent(routingKey string, txn *models.MpesaTransaction) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"orderID":           txn.OrderID,
		"checkoutRequestID": txn.CheckoutRequestID,
		"receiptNumber":     txn.ReceiptNumber,
		"amount":            txn.Amount,
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
