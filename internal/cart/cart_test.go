package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAddItemMergesByID(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	if _, err := ledger.AddItem(ctx, "s1", Item{ID: "p1", Name: "Headset", Price: price("199.99"), Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	items, err := ledger.AddItem(ctx, "s1", Item{ID: "p1", Name: "Headset", Price: price("199.99"), Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", items[0].Quantity)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	if _, err := ledger.AddItem(ctx, "s1", Item{ID: "p1", Price: price("10"), Quantity: 2}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	items, err := ledger.UpdateQuantity(ctx, "s1", "p1", 0)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %v", items)
	}

	if _, err := ledger.AddItem(ctx, "s1", Item{ID: "p2", Price: price("5"), Quantity: 1}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	items, err = ledger.UpdateQuantity(ctx, "s1", "p2", -3)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("negative quantity should remove the line, got %v", items)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	_, _ = ledger.AddItem(ctx, "s1", Item{ID: "p1", Price: price("10"), Quantity: 1})
	_, _ = ledger.AddItem(ctx, "s1", Item{ID: "p2", Price: price("20"), Quantity: 1})

	items, err := ledger.RemoveItem(ctx, "s1", "p1")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p2" {
		t.Fatalf("after remove: %v", items)
	}

	if err := ledger.ClearCart(ctx, "s1"); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	items, err = ledger.Items(ctx, "s1")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("after clear: %v", items)
	}
}

func TestTotals(t *testing.T) {
	items := []Item{
		{ID: "p1", Price: price("199.99"), Quantity: 2},
		{ID: "p2", Price: price("49.00"), Quantity: 1},
	}
	if got := TotalItems(items); got != 3 {
		t.Fatalf("TotalItems = %d, want 3", got)
	}
	if got := TotalPrice(items); !got.Equal(price("448.98")) {
		t.Fatalf("TotalPrice = %s, want 448.98", got)
	}
	if got := TotalPrice(nil); !got.IsZero() {
		t.Fatalf("TotalPrice(nil) = %s, want 0", got)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryStore())

	_, _ = ledger.AddItem(ctx, "s1", Item{ID: "p1", Price: price("10"), Quantity: 1})
	items, err := ledger.Items(ctx, "s2")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("session s2 leaked lines: %v", items)
	}
}
