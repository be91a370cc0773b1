package models

import "gorm.io/gorm"

// Category groups products for browsing.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string `json:"name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	gorm.Model
}

// Brand is an optional manufacturer label on a product.
type Brand struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string `json:"name" gorm:"type:varchar(200)" validate:"required,max=200"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(200)" validate:"required"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	gorm.Model
}

// Product gender choices.
const (
	GenderMen    = "M"
	GenderWomen  = "F"
	GenderUnisex = "U"
	GenderKids   = "K"
)

// Product represents a sellable item owned by a seller.
type Product struct {
	ID            string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID      string         `json:"seller_id" gorm:"index;type:varchar(36)"`
	// Associations carry validate:"-": request payloads only set the
	// foreign keys, so the validator must not recurse into them.
	Seller        SellerProfile  `json:"-" gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" validate:"-"`
	Name          string         `json:"name" validate:"required,min=3,max=200"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;type:varchar(200)"`
	Description   string         `json:"description" validate:"omitempty,max=2000"`
	Price         float64        `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64       `json:"discount_price" validate:"omitempty,gt=0"`
	CategoryID    string         `json:"category_id" gorm:"index;type:varchar(36)"`
	Category      Category       `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" validate:"-"`
	BrandID       *string        `json:"brand_id" gorm:"index;type:varchar(36)"`
	Brand         *Brand         `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Gender        string         `json:"gender" gorm:"type:varchar(1);default:'U'" validate:"omitempty,oneof=M F U K"`
	Stock         int            `json:"stock" validate:"gte=0"`
	ImageURL      string         `json:"image_url"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	Images        []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	gorm.Model
}

// FinalPrice is the discount price when one is set, otherwise the list price.
func (p *Product) FinalPrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercentage is the relative markdown, never negative.
func (p *Product) DiscountPercentage() float64 {
	if p.DiscountPrice == nil || p.Price <= 0 {
		return 0
	}
	pct := (p.Price - *p.DiscountPrice) / p.Price * 100
	if pct < 0 {
		return 0
	}
	return pct
}

// ProductImage is an additional gallery image for a product.
type ProductImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"index;type:varchar(36)"`
	ImageURL  string `json:"image_url"`
	IsDefault bool   `json:"is_default" gorm:"default:false"`
	gorm.Model
}

// Review is a customer rating for a product, one per (product, user).
type Review struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"uniqueIndex:idx_review_product_user;type:varchar(36)"`
	Product   Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UserID    string  `json:"user_id" gorm:"uniqueIndex:idx_review_product_user;type:varchar(36)"`
	User      User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   string  `json:"comment"`
	gorm.Model
}
