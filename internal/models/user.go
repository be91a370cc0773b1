package models

import "gorm.io/gorm"

// User roles.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

// User represents a registered account, either a customer or a seller.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(10);default:'customer'" validate:"omitempty,oneof=customer seller"`
	Phone      string `json:"phone" gorm:"type:varchar(15)"`
	Address    string `json:"address"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// SellerProfile holds store information for users with the seller role.
type SellerProfile struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string  `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	User        User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	StoreName   string  `json:"store_name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating" gorm:"default:0"`
	gorm.Model
}
