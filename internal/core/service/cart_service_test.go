package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kaffehuset/coffeeshop-api/internal/core/domain"
)

func TestCartService_Put(t *testing.T) {
	products := newStubProductRepo(&domain.Product{ID: 1, Name: "Brazilian coffee", Price: 80})
	carts := newStubCartRepo()
	svc := NewCartService(carts, products)

	if err := svc.Put(context.Background(), "alice", 1, 2); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Put again replaces the quantity.
	if err := svc.Put(context.Background(), "alice", 1, 5); err != nil {
		t.Fatalf("Put replace: %v", err)
	}

	items, err := svc.Items(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("items = %+v, want one line with quantity 5", items)
	}
}

func TestCartService_Put_InvalidQuantity(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), newStubProductRepo())

	for _, q := range []int{0, -1} {
		if err := svc.Put(context.Background(), "alice", 1, q); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", q, err)
		}
	}
}

func TestCartService_Put_UnknownProduct(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), newStubProductRepo())

	if err := svc.Put(context.Background(), "alice", 99, 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartService_Remove(t *testing.T) {
	products := newStubProductRepo(&domain.Product{ID: 1, Name: "Green tea", Price: 50})
	carts := newStubCartRepo()
	svc := NewCartService(carts, products)

	if err := svc.Put(context.Background(), "alice", 1, 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := svc.Remove(context.Background(), "alice", 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	items, _ := svc.Items(context.Background(), "alice")
	if len(items) != 0 {
		t.Fatalf("items after remove = %+v", items)
	}

	// Removing an absent line succeeds.
	if err := svc.Remove(context.Background(), "alice", 1); err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
}
