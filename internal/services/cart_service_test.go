package services

import (
	"testing"

	"duka/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func activeProduct(id string, price float64) *models.Product {
	return &models.Product{ID: id, Name: "Test Product", Price: price, IsActive: true}
}

func TestAddToCart(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 1000), nil)
	cartRepo.On("Upsert", "user-1", "prod-1", 2).Return(nil)

	err := service.AddToCart("user-1", "prod-1", 2)
	assert.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestAddToCartNormalizesQuantity(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 1000), nil)
	// Zero and negative quantities become a single unit
	cartRepo.On("Upsert", "user-1", "prod-1", 1).Return(nil).Twice()

	assert.NoError(t, service.AddToCart("user-1", "prod-1", 0))
	assert.NoError(t, service.AddToCart("user-1", "prod-1", -3))
	cartRepo.AssertExpectations(t)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", "missing").Return(nil, nil)

	err := service.AddToCart("user-1", "missing", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
	cartRepo.AssertNotCalled(t, "Upsert")
}

func TestAddToCartInactiveProduct(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := NewCartService(cartRepo, productRepo)

	inactive := &models.Product{ID: "prod-1", Price: 1000, IsActive: false}
	productRepo.On("GetByID", "prod-1").Return(inactive, nil)

	err := service.AddToCart("user-1", "prod-1", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateQuantity(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("UpdateQuantity", "item-1", "user-1", 5).Return(nil)

	assert.NoError(t, service.UpdateQuantity("user-1", "item-1", 5))
	cartRepo.AssertExpectations(t)
}

func TestUpdateQuantityToZeroRemovesItem(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("Delete", "item-1", "user-1").Return(nil)

	assert.NoError(t, service.UpdateQuantity("user-1", "item-1", 0))
	cartRepo.AssertNotCalled(t, "UpdateQuantity")
	cartRepo.AssertExpectations(t)
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("UpdateQuantity", "missing", "user-1", 2).Return(gorm.ErrRecordNotFound)

	err := service.UpdateQuantity("user-1", "missing", 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveIsIdempotent(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("Delete", "gone", "user-1").Return(nil)

	// Removing an item that no longer exists succeeds quietly
	assert.NoError(t, service.Remove("user-1", "gone"))
}

func TestGetCartTotals(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := NewCartService(cartRepo, new(MockProductRepository))

	discount := 1000.0
	items := []models.CartItem{
		{
			ID:       "item-1",
			Product:  models.Product{ID: "prod-1", Price: 1200, DiscountPrice: &discount},
			Quantity: 2,
		},
		{
			ID:       "item-2",
			Product:  models.Product{ID: "prod-2", Price: 500},
			Quantity: 1,
		},
	}
	cartRepo.On("GetByUser", "user-1").Return(items, nil)

	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 2500.0, cart.Subtotal)
	assert.Equal(t, 200.0, cart.ShippingFee)
	assert.Equal(t, 2700.0, cart.Total)
	assert.Len(t, cart.Items, 2)
}

func TestGetCartEmptyHasNoShippingFee(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("GetByUser", "user-1").Return([]models.CartItem{}, nil)

	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, cart.Subtotal)
	assert.Equal(t, 0.0, cart.ShippingFee)
	assert.Equal(t, 0.0, cart.Total)
}
