package repositories

import (
	"fmt"

	"duka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for mobile-money transaction data
// access. Lookups return (nil, nil) when no row matches.
type PaymentRepository interface {
	Create(txn *models.MpesaTransaction) error
	Update(txn *models.MpesaTransaction) error
	GetByCheckoutRequestID(checkoutRequestID string) (*models.MpesaTransaction, error)
	GetByOrderID(orderID string) (*models.MpesaTransaction, error)
	// ApplyCallback saves the resolved transaction and moves its order to the
	// given statuses in a single transaction.
	ApplyCallback(txn *models.MpesaTransaction, orderStatus models.OrderStatus, paymentStatus models.PaymentStatus) error
}

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{
		db: db,
	}
}

// Create persists a new transaction. The unique index on order_id enforces at
// most one transaction per order.
func (r *GORMPaymentRepository) Create(txn *models.MpesaTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if err := r.db.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create mpesa transaction: %w", err)
	}
	return nil
}

// Update saves changes to an existing transaction.
func (r *GORMPaymentRepository) Update(txn *models.MpesaTransaction) error {
	res := r.db.Save(txn)
	if res.Error != nil {
		return fmt.Errorf("failed to update mpesa transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("mpesa transaction %s not found for update", txn.ID)
	}
	return nil
}

// GetByCheckoutRequestID retrieves a transaction by the gateway's checkout
// request correlation id.
func (r *GORMPaymentRepository) GetByCheckoutRequestID(checkoutRequestID string) (*models.MpesaTransaction, error) {
	var txn models.MpesaTransaction
	err := r.db.First(&txn, "checkout_request_id = ?", checkoutRequestID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mpesa transaction by checkout request %s: %w",
			checkoutRequestID, err)
	}
	return &txn, nil
}

// GetByOrderID retrieves the transaction attached to an order.
func (r *GORMPaymentRepository) GetByOrderID(orderID string) (*models.MpesaTransaction, error) {
	var txn models.MpesaTransaction
	err := r.db.First(&txn, "order_id = ?", orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mpesa transaction for order %s: %w", orderID, err)
	}
	return &txn, nil
}

// ApplyCallback saves the transaction and updates its order in one
// transaction so a crash cannot leave the pair inconsistent.
func (r *GORMPaymentRepository) ApplyCallback(txn *models.MpesaTransaction, orderStatus models.OrderStatus, paymentStatus models.PaymentStatus) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(txn).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", txn.OrderID).
			Updates(map[string]interface{}{
				"status":         orderStatus,
				"payment_status": paymentStatus,
			}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to apply mpesa callback for order %s: %w", txn.OrderID, err)
	}
	return nil
}
