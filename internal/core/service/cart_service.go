package service

import (
	"context"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// CartService implements shopping cart use cases. All operations are scoped
// to the authenticated user's own cart.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Items(ctx context.Context, username string) ([]*domain.CartItem, error) {
	return s.carts.ItemsFor(ctx, username)
}

// Put sets the quantity for one product line. The product must exist and
// the quantity must be positive.
func (s *CartService) Put(ctx context.Context, username string, productID int64, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}

	return s.carts.Upsert(ctx, &domain.CartItem{
		Username:  username,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (s *CartService) Remove(ctx context.Context, username string, productID int64) error {
	return s.carts.Remove(ctx, username, productID)
}
