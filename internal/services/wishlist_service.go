package services

import (
	"duka/internal/models"
	"duka/internal/repositories"
)

// WishlistService handles business logic for the per-user wishlist.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// GetWishlist retrieves the user's wishlist entries with their products.
func (s *WishlistService) GetWishlist(userID string) ([]models.WishlistItem, error) {
	return s.wishlistRepo.GetByUser(userID)
}

// Add puts a product on the user's wishlist. Returns false when it was
// already there; adding twice is not an error.
func (s *WishlistService) Add(userID, productID string) (bool, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil || !product.IsActive {
		return false, ErrProductNotFound
	}
	return s.wishlistRepo.Add(userID, productID)
}

// Remove deletes a wishlist entry scoped to the user.
func (s *WishlistService) Remove(userID, itemID string) error {
	affected, err := s.wishlistRepo.Delete(itemID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

// Clear empties the user's wishlist and reports how many entries were
// removed.
func (s *WishlistService) Clear(userID string) (int64, error) {
	return s.wishlistRepo.ClearUser(userID)
}

// MoveToCart moves one wishlist entry into the cart: the cart line is
// upserted and the entry deleted as one atomic step.
func (s *WishlistService) MoveToCart(userID, itemID string) error {
	moved, err := s.wishlistRepo.MoveToCart(userID, itemID)
	if err != nil {
		return err
	}
	if moved == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

// MoveSelected moves the owned subset of the given entries into the cart.
// Unknown or foreign ids are skipped silently; the count of entries actually
// moved is returned.
func (s *WishlistService) MoveSelected(userID string, itemIDs []string) (int, error) {
	return s.wishlistRepo.MoveToCart(userID, itemIDs...)
}

// RemoveSelected deletes the owned subset of the given entries, reporting the
// count actually removed.
func (s *WishlistService) RemoveSelected(userID string, itemIDs []string) (int64, error) {
	return s.wishlistRepo.DeleteByIDs(userID, itemIDs)
}

// Count returns the number of entries on the user's wishlist.
func (s *WishlistService) Count(userID string) (int64, error) {
	return s.wishlistRepo.Count(userID)
}
