package ports

import (
	"context"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

// CartRepository defines persistence operations for shopping cart lines.
type CartRepository interface {
	// Upsert replaces the quantity for (username, productID) or inserts the line.
	Upsert(ctx context.Context, item *domain.CartItem) error
	Remove(ctx context.Context, username string, productID int64) error
	ItemsFor(ctx context.Context, username string) ([]*domain.CartItem, error)
	Clear(ctx context.Context, username string) error
}

// CartService defines shopping cart use cases, always scoped to the
// authenticated user.
type CartService interface {
	Items(ctx context.Context, username string) ([]*domain.CartItem, error)
	Put(ctx context.Context, username string, productID int64, quantity int) error
	Remove(ctx context.Context, username string, productID int64) error
}
