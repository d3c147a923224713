package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// OrderService implements checkout and order retrieval.
type OrderService struct {
	orders   ports.OrderRepository
	carts    ports.CartRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, carts ports.CartRepository, products ports.ProductRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, carts: carts, products: products, logger: logger}
}

// Checkout turns the user's cart into a pending order. If an idempotency
// key is provided and already seen, the previously created order is
// returned without side effects and the cart is left untouched.
func (s *OrderService) Checkout(ctx context.Context, username, idempotencyKey string) (*ports.CheckoutResult, error) {
	if idempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, idempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", idempotencyKey).Str("order_number", existing.OrderNumber).Msg("idempotent replay")
			return &ports.CheckoutResult{
				OrderNumber:    existing.OrderNumber,
				Status:         string(existing.Status),
				Total:          existing.Total,
				CreatedAt:      existing.CreatedAt,
				AlreadyExisted: true,
			}, nil
		}
	}

	items, err := s.carts.ItemsFor(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber:    generateOrderNumber(),
		Username:       username,
		Status:         domain.OrderPending,
		CreatedAt:      now,
		IdempotencyKey: idempotencyKey,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.OrderPending, Timestamp: now},
		},
	}

	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("checkout: %w", err)
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
		order.Total += product.Price * int64(item.Quantity)
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// A concurrent checkout with the same key can win the insert race
		// on the unique idempotency_key index; resolve it as a replay.
		if errors.Is(err, domain.ErrDuplicateOrder) && idempotencyKey != "" {
			if existing, findErr := s.orders.FindByIdempotencyKey(ctx, idempotencyKey); findErr == nil {
				s.logger.Info().Str("idempotency_key", idempotencyKey).Str("order_number", existing.OrderNumber).Msg("idempotent replay")
				return &ports.CheckoutResult{
					OrderNumber:    existing.OrderNumber,
					Status:         string(existing.Status),
					Total:          existing.Total,
					CreatedAt:      existing.CreatedAt,
					AlreadyExisted: true,
				}, nil
			}
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to create order")
		return nil, fmt.Errorf("checkout: %w", err)
	}

	if err := s.carts.Clear(ctx, username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to clear cart after checkout")
	}

	s.logger.Info().Str("order_number", created.OrderNumber).Str("username", username).Int64("total", created.Total).Msg("order created")

	return &ports.CheckoutResult{
		OrderNumber: created.OrderNumber,
		Status:      string(created.Status),
		Total:       created.Total,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// Get returns one order. Non-admin callers may only read their own orders.
func (s *OrderService) Get(ctx context.Context, username string, admin bool, orderNumber string) (*domain.Order, error) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !admin && order.Username != username {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// List returns the caller's orders, or every order for admins.
func (s *OrderService) List(ctx context.Context, username string, admin bool) ([]*domain.Order, error) {
	if admin {
		return s.orders.ListFor(ctx, "")
	}
	return s.orders.ListFor(ctx, username)
}

// generateOrderNumber returns a unique order number in the format CS-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("CS-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("CS-%08X", b)
}
