package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
	"github.com/kaffehuset/coffeeshop-api/internal/core/ports"
)

type stubOrderService struct {
	result *ports.CheckoutResult
	order  *domain.Order
	orders []*domain.Order
	err    error

	lastKey string
}

func (s *stubOrderService) Checkout(_ context.Context, username, idempotencyKey string) (*ports.CheckoutResult, error) {
	s.lastKey = idempotencyKey
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubOrderService) Get(_ context.Context, username string, admin bool, orderNumber string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrderService) List(_ context.Context, username string, admin bool) ([]*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.orders, nil
}

func TestOrderHandler_Checkout(t *testing.T) {
	svc := &stubOrderService{result: &ports.CheckoutResult{
		OrderNumber: "CS-0000AAAA",
		Status:      "pending",
		Total:       210,
		CreatedAt:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
	}}
	h := NewOrderHandler(svc)

	c, rec := newUserContext(t, http.MethodPost, "/api/checkout", "")
	c.Request().Header.Set("Idempotency-Key", "key-123")
	withSession(c, "alice", false)

	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.lastKey != "key-123" {
		t.Fatalf("idempotency key = %q", svc.lastKey)
	}

	var got checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.OrderNumber != "CS-0000AAAA" || got.Total != 210 {
		t.Fatalf("body = %+v", got)
	}
	if got.CreatedAt != "2026-02-01T09:00:00Z" {
		t.Fatalf("created_at = %q", got.CreatedAt)
	}
}

func TestOrderHandler_Checkout_Replay(t *testing.T) {
	svc := &stubOrderService{result: &ports.CheckoutResult{
		OrderNumber:    "CS-0000AAAA",
		Status:         "pending",
		AlreadyExisted: true,
	}}
	h := NewOrderHandler(svc)

	c, rec := newUserContext(t, http.MethodPost, "/api/checkout", "")
	withSession(c, "alice", false)

	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	// A replay returns the stored order with 200 rather than 201.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestOrderHandler_Checkout_EmptyCart(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{err: domain.ErrEmptyCart})

	c, rec := newUserContext(t, http.MethodPost, "/api/checkout", "")
	withSession(c, "alice", false)

	if err := h.Checkout(c); err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if got := decodeError(t, rec); got != "shopping cart is empty" {
		t.Fatalf("error = %q", got)
	}
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{err: domain.ErrOrderNotFound})

	c, rec := newUserContext(t, http.MethodGet, "/api/orders/CS-MISSING0", "")
	c.SetParamNames("orderNumber")
	c.SetParamValues("CS-MISSING0")
	withSession(c, "alice", false)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestOrderHandler_Get_OtherUsersOrder(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{err: domain.ErrForbidden})

	c, rec := newUserContext(t, http.MethodGet, "/api/orders/CS-0000AAAA", "")
	c.SetParamNames("orderNumber")
	c.SetParamValues("CS-0000AAAA")
	withSession(c, "bob", false)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestOrderHandler_List_Empty(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	c, rec := newUserContext(t, http.MethodGet, "/api/orders", "")
	withSession(c, "alice", false)

	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// nil slice renders as [] rather than null.
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("body = %q", body)
	}
}

type stubDispatcher struct {
	events []ports.OrderEventInput
}

func (d *stubDispatcher) Enqueue(event ports.OrderEventInput) {
	d.events = append(d.events, event)
}

func (d *stubDispatcher) EnqueueBatch(events []ports.OrderEventInput) {
	d.events = append(d.events, events...)
}

const eventBody = `{"order_number":"CS-0000AAAA","status":"paid","timestamp":"2026-02-01T09:00:00Z","source":"register-1"}`

func TestOrderEventHandler_Receive(t *testing.T) {
	d := &stubDispatcher{}
	h := NewOrderEventHandler(d)

	c, rec := newUserContext(t, http.MethodPost, "/api/orders/events", eventBody)

	if err := h.Receive(c); err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if len(d.events) != 1 || d.events[0].OrderNumber != "CS-0000AAAA" || d.events[0].Status != "paid" {
		t.Fatalf("events = %+v", d.events)
	}
}

func TestOrderEventHandler_Receive_UnknownStatus(t *testing.T) {
	d := &stubDispatcher{}
	h := NewOrderEventHandler(d)

	body := `{"order_number":"CS-0000AAAA","status":"teleported","timestamp":"2026-02-01T09:00:00Z","source":"register-1"}`
	c, _ := newUserContext(t, http.MethodPost, "/api/orders/events", body)

	err := h.Receive(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 HTTPError, got %v", err)
	}
	if len(d.events) != 0 {
		t.Fatal("invalid event was enqueued")
	}
}

func TestOrderEventHandler_ReceiveBatch(t *testing.T) {
	d := &stubDispatcher{}
	h := NewOrderEventHandler(d)

	body := `[` + eventBody + `,{"order_number":"CS-0000BBBB","status":"preparing","timestamp":"2026-02-01T09:05:00Z","source":"register-1"}]`
	c, rec := newUserContext(t, http.MethodPost, "/api/orders/events/batch", body)

	if err := h.ReceiveBatch(c); err != nil {
		t.Fatalf("ReceiveBatch: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if len(d.events) != 2 {
		t.Fatalf("enqueued %d events, want 2", len(d.events))
	}

	var got acceptedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Count != 2 {
		t.Fatalf("count = %d, want 2", got.Count)
	}
}

func TestOrderEventHandler_ReceiveBatch_Empty(t *testing.T) {
	h := NewOrderEventHandler(&stubDispatcher{})

	c, _ := newUserContext(t, http.MethodPost, "/api/orders/events/batch", `[]`)

	err := h.ReceiveBatch(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
