package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, orderNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, orderNumber, status string, ts time.Time) error
}

type orderEventService struct {
	orders ports.OrderRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewOrderEventService returns an OrderEventService implementation.
func NewOrderEventService(orders ports.OrderRepository, dedup DedupChecker, log zerolog.Logger) ports.OrderEventService {
	return &orderEventService{orders: orders, dedup: dedup, log: log}
}

// Process validates, deduplicates, and applies a single fulfilment event.
func (s *orderEventService) Process(ctx context.Context, in ports.OrderEventInput) error {
	newStatus := domain.OrderStatus(in.Status)

	// Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.OrderNumber, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("order_number", in.OrderNumber).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("order_number", in.OrderNumber).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	order, err := s.orders.FindByOrderNumber(ctx, in.OrderNumber)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, newStatus)
	}

	// Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.OrderNumber, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("order_number", in.OrderNumber).Msg("failed to set dedup key")
	}

	entry := domain.StatusHistoryEntry{
		Status:    newStatus,
		Timestamp: in.Timestamp,
		Notes:     in.Notes,
	}
	if err := s.orders.UpdateStatus(ctx, in.OrderNumber, newStatus, entry); err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	s.log.Info().
		Str("order_number", in.OrderNumber).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("order event processed")

	return nil
}
