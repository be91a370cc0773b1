package services

import (
	"duka/internal/models"
	"duka/internal/repositories"
)

// ShippingFee is the flat per-order shipping rate applied at checkout and
// shown on the cart page.
const ShippingFee = 200.0

// CartView is a user's cart with its computed totals.
type CartView struct {
	Items       []models.CartItem `json:"items"`
	Subtotal    float64           `json:"subtotal"`
	ShippingFee float64           `json:"shipping_fee"`
	Total       float64           `json:"total"`
}

// CartService handles business logic for the per-user cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart adds quantity units of a product to the user's cart. If the
// product is already in the cart the line's quantity is incremented, never
// duplicated. Stock is not checked here; availability is the gateway and
// fulfilment side's concern at payment time.
func (s *CartService) AddToCart(userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}

	return s.cartRepo.Upsert(userID, productID, quantity)
}

// UpdateQuantity sets a cart line's quantity. A quantity of zero or less
// deletes the line.
func (s *CartService) UpdateQuantity(userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.cartRepo.Delete(itemID, userID)
	}
	if err := s.cartRepo.UpdateQuantity(itemID, userID, quantity); err != nil {
		if isRecordNotFound(err) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

// Remove deletes a cart line scoped to the user. Removing a line that is
// already gone succeeds.
func (s *CartService) Remove(userID, itemID string) error {
	return s.cartRepo.Delete(itemID, userID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID string) error {
	return s.cartRepo.ClearUser(userID)
}

// GetCart retrieves the user's cart with totals. The shipping fee only
// applies to non-empty carts.
func (s *CartService) GetCart(userID string) (*CartView, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: items}
	for i := range items {
		view.Subtotal += items[i].TotalPrice()
	}
	if len(items) > 0 {
		view.ShippingFee = ShippingFee
	}
	view.Total = view.Subtotal + view.ShippingFee
	return view, nil
}

// Count returns the number of lines in the user's cart.
func (s *CartService) Count(userID string) (int64, error) {
	return s.cartRepo.Count(userID)
}
