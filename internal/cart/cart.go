package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item is one cart line. Lines are keyed by product id; adding an id that is
// already present merges quantities instead of duplicating the line.
type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"image_url,omitempty"`
}

// Store is the injected persistence adapter behind the cart ledger. A
// session maps to one ordered list of lines.
type Store interface {
	Load(ctx context.Context, session string) ([]Item, error)
	Save(ctx context.Context, session string, items []Item) error
	Clear(ctx context.Context, session string) error
}

// Ledger applies cart operations for one session through a Store. It owns no
// state of its own; every operation is load-transform-save.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) Items(ctx context.Context, session string) ([]Item, error) {
	return l.store.Load(ctx, session)
}

// AddItem appends a line, or merges quantity into an existing line with the
// same id.
func (l *Ledger) AddItem(ctx context.Context, session string, item Item) ([]Item, error) {
	items, err := l.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}
	if err := l.store.Save(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (l *Ledger) RemoveItem(ctx context.Context, session string, id string) ([]Item, error) {
	items, err := l.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if err := l.store.Save(ctx, session, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero or below removes
// the line.
func (l *Ledger) UpdateQuantity(ctx context.Context, session string, id string, quantity int) ([]Item, error) {
	if quantity <= 0 {
		return l.RemoveItem(ctx, session, id)
	}
	items, err := l.store.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			break
		}
	}
	if err := l.store.Save(ctx, session, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (l *Ledger) ClearCart(ctx context.Context, session string) error {
	return l.store.Clear(ctx, session)
}

// TotalItems sums line quantities.
func TotalItems(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums price*quantity across lines.
func TotalPrice(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
