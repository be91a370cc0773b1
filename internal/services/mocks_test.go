package services

import (
	"context"

	"duka/internal/models"
	"duka/internal/mpesa"
	"duka/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a testify mock of repositories.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) Upsert(userID, productID string, quantity int) error {
	args := m.Called(userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(id, userID string, quantity int) error {
	args := m.Called(id, userID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(id, userID string) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockCartRepository) ClearUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockCartRepository) Count(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockWishlistRepository is a testify mock of repositories.WishlistRepository.
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) GetByUser(userID string) ([]models.WishlistItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WishlistItem), args.Error(1)
}

func (m *MockWishlistRepository) Add(userID, productID string) (bool, error) {
	args := m.Called(userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) Delete(id, userID string) (int64, error) {
	args := m.Called(id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWishlistRepository) DeleteByIDs(userID string, ids []string) (int64, error) {
	args := m.Called(userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWishlistRepository) ClearUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWishlistRepository) MoveToCart(userID string, ids ...string) (int, error) {
	args := m.Called(userID, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockWishlistRepository) Count(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateSellerProfile(profile *models.SellerProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetSellerProfile(userID string) (*models.SellerProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SellerProfile), args.Error(1)
}

func (m *MockUserRepository) UpdateSellerProfile(profile *models.SellerProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

// MockProductRepository is a testify mock of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Related(product *models.Product, limit int) ([]models.Product, error) {
	args := m.Called(product, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) SetActiveOwned(sellerID string, ids []string, active bool) (int64, error) {
	args := m.Called(sellerID, ids, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DeleteOwned(sellerID string, ids []string) (int64, error) {
	args := m.Called(sellerID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountBySeller(sellerID string, activeOnly bool) (int64, error) {
	args := m.Called(sellerID, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountLowStock(sellerID string, threshold int) (int64, error) {
	args := m.Called(sellerID, threshold)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a testify mock of repositories.PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(txn *models.MpesaTransaction) error {
	args := m.Called(txn)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(txn *models.MpesaTransaction) error {
	args := m.Called(txn)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByCheckoutRequestID(checkoutRequestID string) (*models.MpesaTransaction, error) {
	args := m.Called(checkoutRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MpesaTransaction), args.Error(1)
}

func (m *MockPaymentRepository) GetByOrderID(orderID string) (*models.MpesaTransaction, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MpesaTransaction), args.Error(1)
}

func (m *MockPaymentRepository) ApplyCallback(txn *models.MpesaTransaction, orderStatus models.OrderStatus, paymentStatus models.PaymentStatus) error {
	args := m.Called(txn, orderStatus, paymentStatus)
	return args.Error(0)
}

// MockPaymentGateway is a testify mock of PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) STKPush(ctx context.Context, phone string, amount int, accountRef, description string) (*mpesa.STKPushResponse, error) {
	args := m.Called(ctx, phone, amount, accountRef, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mpesa.STKPushResponse), args.Error(1)
}
