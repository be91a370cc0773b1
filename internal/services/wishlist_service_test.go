package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWishlistAdd(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	productRepo := new(MockProductRepository)
	service := NewWishlistService(wishlistRepo, productRepo)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 1000), nil)
	wishlistRepo.On("Add", "user-1", "prod-1").Return(true, nil)

	created, err := service.Add("user-1", "prod-1")
	assert.NoError(t, err)
	assert.True(t, created)
}

func TestWishlistAddTwiceIsNoop(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	productRepo := new(MockProductRepository)
	service := NewWishlistService(wishlistRepo, productRepo)

	productRepo.On("GetByID", "prod-1").Return(activeProduct("prod-1", 1000), nil)
	wishlistRepo.On("Add", "user-1", "prod-1").Return(false, nil)

	created, err := service.Add("user-1", "prod-1")
	assert.NoError(t, err)
	assert.False(t, created)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	productRepo := new(MockProductRepository)
	service := NewWishlistService(wishlistRepo, productRepo)

	productRepo.On("GetByID", "missing").Return(nil, nil)

	_, err := service.Add("user-1", "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
	wishlistRepo.AssertNotCalled(t, "Add")
}

func TestWishlistRemoveUnknownItem(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	service := NewWishlistService(wishlistRepo, new(MockProductRepository))

	wishlistRepo.On("Delete", "missing", "user-1").Return(int64(0), nil)

	err := service.Remove("user-1", "missing")
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}

func TestWishlistMoveToCart(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	service := NewWishlistService(wishlistRepo, new(MockProductRepository))

	wishlistRepo.On("MoveToCart", "user-1", []string{"item-1"}).Return(1, nil)

	assert.NoError(t, service.MoveToCart("user-1", "item-1"))
}

func TestWishlistMoveToCartUnknownItem(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	service := NewWishlistService(wishlistRepo, new(MockProductRepository))

	wishlistRepo.On("MoveToCart", "user-1", []string{"missing"}).Return(0, nil)

	err := service.MoveToCart("user-1", "missing")
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}

func TestWishlistMoveSelectedSkipsForeignIDs(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	service := NewWishlistService(wishlistRepo, new(MockProductRepository))

	ids := []string{"item-1", "foreign-item", "item-2"}
	wishlistRepo.On("MoveToCart", "user-1", ids).Return(2, nil)

	moved, err := service.MoveSelected("user-1", ids)
	assert.NoError(t, err)
	assert.Equal(t, 2, moved)
}

func TestWishlistClear(t *testing.T) {
	wishlistRepo := new(MockWishlistRepository)
	service := NewWishlistService(wishlistRepo, new(MockProductRepository))

	wishlistRepo.On("ClearUser", "user-1").Return(int64(3), nil)

	deleted, err := service.Clear("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
