package services

import (
	"fmt"

	"duka/internal/repositories"
)

const (
	reorderOrderLimit = 5
	reorderItemLimit  = 20
)

// ReorderItem is a previously purchased product offered for re-purchase,
// with its price then and now.
type ReorderItem struct {
	OrderID       string  `json:"order_id"`
	OrderDate     string  `json:"order_date"`
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	PreviousPrice float64 `json:"previous_price"`
	CurrentPrice  float64 `json:"current_price"`
	Quantity      int     `json:"quantity"`
	Stock         int     `json:"stock"`
	PriceChanged  bool    `json:"has_price_change"`
}

// ReorderRequestItem selects a product and quantity to put back in the cart.
type ReorderRequestItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ReorderService offers items from past delivered orders for re-purchase.
type ReorderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
}

// NewReorderService creates a new ReorderService.
func NewReorderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, cartRepo repositories.CartRepository) *ReorderService {
	return &ReorderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
	}
}

// ListReorderItems collects still-available products from the user's recent
// delivered orders. Inactive and out-of-stock products are omitted.
func (s *ReorderService) ListReorderItems(userID string) ([]ReorderItem, error) {
	orders, err := s.orderRepo.RecentDelivered(userID, reorderOrderLimit)
	if err != nil {
		return nil, err
	}

	items := make([]ReorderItem, 0)
	for oi := range orders {
		for ii := range orders[oi].Items {
			item := &orders[oi].Items[ii]
			product := &item.Product
			if !product.IsActive || product.Stock <= 0 {
				continue
			}
			current := product.FinalPrice()
			items = append(items, ReorderItem{
				OrderID:       orders[oi].ID,
				OrderDate:     orders[oi].CreatedAt.Format("Jan 02, 2006"),
				ProductID:     product.ID,
				Name:          product.Name,
				Category:      product.Category.Name,
				PreviousPrice: item.Price,
				CurrentPrice:  current,
				Quantity:      item.Quantity,
				Stock:         product.Stock,
				PriceChanged:  item.Price != current,
			})
			if len(items) >= reorderItemLimit {
				return items, nil
			}
		}
	}
	return items, nil
}

// AddToCart puts the requested reorder items back in the user's cart.
// Quantities are clamped to current stock; unavailable products are skipped
// and reported per item. Returns how many items were added.
func (s *ReorderService) AddToCart(userID string, requested []ReorderRequestItem) (int, []string) {
	added := 0
	var problems []string

	for _, req := range requested {
		product, err := s.productRepo.GetByID(req.ProductID)
		if err != nil {
			problems = append(problems, fmt.Sprintf("error adding product %s: %v", req.ProductID, err))
			continue
		}
		if product == nil || !product.IsActive {
			problems = append(problems, "product not found")
			continue
		}
		if product.Stock <= 0 {
			problems = append(problems, fmt.Sprintf("%s is out of stock", product.Name))
			continue
		}

		quantity := req.Quantity
		if quantity < 1 {
			quantity = 1
		}
		if quantity > product.Stock {
			problems = append(problems, fmt.Sprintf("only %d units available for %s", product.Stock, product.Name))
			quantity = product.Stock
		}

		if err := s.cartRepo.Upsert(userID, product.ID, quantity); err != nil {
			problems = append(problems, fmt.Sprintf("error adding product %s: %v", product.ID, err))
			continue
		}
		added++
	}
	return added, problems
}
