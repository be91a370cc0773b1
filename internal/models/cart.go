package models

import "time"

// CartItem is one line in a user's cart. At most one line exists per
// (user, product); adding the same product again increments Quantity.
// Deletes are hard: a removed line must not shadow the unique index when the
// product is added again.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36)"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product;type:varchar(36)"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int       `json:"quantity" gorm:"default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalPrice is the line total at the product's current final price.
func (c *CartItem) TotalPrice() float64 {
	return c.Product.FinalPrice() * float64(c.Quantity)
}

// WishlistItem marks a product a user saved for later. No quantity; moving it
// to the cart deletes the entry and upserts a cart line. Deletes are hard for
// the same reason as CartItem.
type WishlistItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36)"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID string    `json:"product_id" gorm:"uniqueIndex:idx_wishlist_user_product;type:varchar(36)"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
