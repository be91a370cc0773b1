package repositories

import (
	"duka/internal/models"
)

// UserRepository defines the interface for user and seller-profile data
// access. Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	CreateSellerProfile(profile *models.SellerProfile) error
	GetSellerProfile(userID string) (*models.SellerProfile, error)
	UpdateSellerProfile(profile *models.SellerProfile) error
}
