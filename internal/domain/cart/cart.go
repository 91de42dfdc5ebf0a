// Package cart implements the pure cart engine: line items keyed by menu
// item ID, immutable add/remove operations, and exact integer totals.
package cart

import "context"

// LineItem is one distinct menu item entry in a cart. UnitPrice is in minor
// currency units (cents); Quantity is always at least 1 because items enter
// the cart only through Add.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Cart is an ordered sequence of line items, scoped by a restaurant ID that
// is carried by the storage key rather than the value. At most one line item
// exists per menu item ID.
type Cart []LineItem

// Add returns a new cart with the menu item added. If a line item with the
// same ID already exists its quantity is incremented by one; otherwise a new
// line item with quantity 1 is appended. The input cart is never mutated, so
// callers can rely on value comparison for change detection.
func Add(c Cart, id, name string, unitPrice int64) Cart {
	for i, item := range c {
		if item.ID == id {
			next := make(Cart, len(c))
			copy(next, c)
			next[i].Quantity++
			return next
		}
	}

	next := make(Cart, len(c), len(c)+1)
	copy(next, c)
	return append(next, LineItem{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// Remove returns a new cart with the whole line item for id removed. Removal
// is not decrement-by-one. A missing ID is a no-op, not an error.
func Remove(c Cart, id string) Cart {
	next := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ID != id {
			next = append(next, item)
		}
	}
	return next
}

// Total returns the cart cost in minor units: the sum of unit price times
// quantity over all line items, plus the restaurant's flat delivery fee.
// Integer arithmetic throughout; display layers divide by 100 at render time.
func Total(c Cart, deliveryFee int64) int64 {
	total := deliveryFee
	for _, item := range c {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// Store mirrors a restaurant-scoped cart into durable session storage.
//
// Load returns the stored cart for the key, or an empty cart when the key is
// absent or the stored payload cannot be decoded; corrupt data is treated as
// absent, never as a failure. Save overwrites the full snapshot, with no
// merge semantics. The key space is partitioned per (session, restaurant), so
// carts for distinct restaurants never leak into each other.
type Store interface {
	Load(ctx context.Context, sessionID, restaurantID string) (Cart, error)
	Save(ctx context.Context, sessionID, restaurantID string, c Cart) error
}
