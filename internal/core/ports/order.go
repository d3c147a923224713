package ports

import (
	"context"
	"time"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	// ListFor returns orders for one user; an empty username returns all
	// orders (admin listing). Enumeration order is newest first.
	ListFor(ctx context.Context, username string) ([]*domain.Order, error)
	// UpdateStatus atomically sets the new status and appends the history
	// entry on the order identified by orderNumber.
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, entry domain.StatusHistoryEntry) error
}

// CheckoutResult is returned by Checkout.
type CheckoutResult struct {
	OrderNumber string
	Status      string
	Total       int64
	CreatedAt   time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing order.
	AlreadyExisted bool
}

// OrderService defines checkout and order retrieval use cases.
type OrderService interface {
	// Checkout turns the caller's cart into an order. A repeated
	// Idempotency-Key returns the previously created order without side
	// effects.
	Checkout(ctx context.Context, username, idempotencyKey string) (*CheckoutResult, error)
	// Get returns one order; non-admin callers only see their own.
	Get(ctx context.Context, username string, admin bool, orderNumber string) (*domain.Order, error)
	// List returns the caller's orders, or every order for admins.
	List(ctx context.Context, username string, admin bool) ([]*domain.Order, error)
}

// OrderEventInput is a fulfilment status event posted by staff tooling.
type OrderEventInput struct {
	OrderNumber string
	Status      string
	Timestamp   time.Time
	Notes       string
	Source      string
}

// OrderEventService processes fulfilment events against the order state machine.
type OrderEventService interface {
	Process(ctx context.Context, in OrderEventInput) error
}
