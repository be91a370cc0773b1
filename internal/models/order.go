package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

// PaymentStatus is the payment lifecycle state.
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment methods.
const (
	PaymentMethodMpesa = "mpesa"
	PaymentMethodCard  = "card"
	PaymentMethodCOD   = "cod"
)

// orderTransitions lists the allowed forward moves for each status.
// Cancelled and refunded are terminal; refunded is reachable from any
// post-payment state but nothing transitions into it automatically.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusRefunded},
	OrderStatusDelivered:  {OrderStatusRefunded},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move forward to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// Order is an immutable snapshot of a checked-out cart. Only Status and
// PaymentStatus change after creation.
type Order struct {
	ID              string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string        `json:"user_id" gorm:"index;type:varchar(36)"`
	User            User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	OrderNumber     string        `json:"order_number" gorm:"uniqueIndex;type:varchar(20)"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaymentMethod   string        `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	Subtotal        float64       `json:"subtotal"`
	Discount        float64       `json:"discount" gorm:"default:0"`
	ShippingFee     float64       `json:"shipping_fee" gorm:"default:0"`
	Total           float64       `json:"total"`
	ShippingAddress string        `json:"shipping_address"`
	Phone           string        `json:"phone" gorm:"type:varchar(15)"`
	Items           []OrderItem   `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// OrderItem is a per-order copy of a purchased product. Price is the product's
// final price at checkout time and never changes afterwards.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"index;type:varchar(36)"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Total is the line total at the frozen purchase price.
func (i *OrderItem) Total() float64 {
	return i.Price * float64(i.Quantity)
}
