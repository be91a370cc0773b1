package models

import (
	"time"

	"gorm.io/gorm"
)

// MpesaTransaction records one STK push attempt against the Daraja gateway.
// It is created when the gateway accepts the push and completed later by the
// asynchronous callback. At most one exists per order.
type MpesaTransaction struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID           string     `json:"order_id" gorm:"uniqueIndex;type:varchar(36)"`
	Order             Order      `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CheckoutRequestID string     `json:"checkout_request_id" gorm:"index;type:varchar(100)"`
	MerchantRequestID string     `json:"merchant_request_id" gorm:"type:varchar(100)"`
	PhoneNumber       string     `json:"phone_number" gorm:"type:varchar(15)"`
	Amount            float64    `json:"amount"`
	ReceiptNumber     string     `json:"receipt_number" gorm:"type:varchar(100)"`
	TransactionDate   *time.Time `json:"transaction_date"`
	ResultCode        *int       `json:"result_code"`
	ResultDesc        string     `json:"result_desc" gorm:"type:varchar(255)"`
	gorm.Model
}
