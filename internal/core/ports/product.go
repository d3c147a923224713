package ports

import (
	"context"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	DeleteByID(ctx context.Context, id int64) error
	All(ctx context.Context) ([]*domain.Product, error)
	Count(ctx context.Context) (int64, error)
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Price       int64
	Description string
}

// ProductService defines catalog use cases. Reads are public; mutations are
// admin-only and guarded at the transport layer.
type ProductService interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
