package ports

import (
	"context"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update rewrites the mutable fields of the record identified by user.ID
	// as a single atomic document update. ID and CreatedAt are never written.
	Update(ctx context.Context, user *domain.User) error
	DeleteByID(ctx context.Context, id int64) error
	// All returns every stored user in store enumeration order.
	All(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
