// Package cart implements the in-memory shopping cart store. A Store owns
// its line items exclusively; every operation takes the store's mutex, so
// mutations are applied as whole atomic steps even when the caller fires
// them concurrently (double-submitted checkouts, rapid add clicks).
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/crumbworks/cookieshop/internal/domain/product"
)

// LineItem pairs a product with a positive quantity. A cart holds at most
// one line item per product ID.
type LineItem struct {
	Product  product.Product
	Quantity int
}

// Store holds the authoritative cart state for a single session.
type Store struct {
	mu    sync.Mutex
	items []LineItem
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// Add puts one unit of p into the cart. If a line item for p.ID already
// exists its quantity is incremented, otherwise a new line item with
// quantity 1 is appended. Add always succeeds; stock enforcement is left
// to the caller.
func (s *Store) Add(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.items[i].Quantity++
			return
		}
	}
	s.items = append(s.items, LineItem{Product: p, Quantity: 1})
}

// Remove deletes the line item for productID. An absent ID is a no-op,
// so Remove is idempotent.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(productID)
}

// SetQuantity sets the quantity of the line item for productID. A quantity
// of zero or less behaves exactly like Remove. An absent ID is a no-op.
func (s *Store) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(productID)
		return
	}
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the current line items in insertion order.
// Mutating the returned slice does not affect the cart.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Total returns the sum of price times quantity over all line items,
// recomputed from current state on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// Count returns the sum of quantities over all line items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// Checkout atomically snapshots the cart and clears it. The returned items
// and total reflect the state at the instant of the call; no mutation can
// interleave between the snapshot and the clear. A second Checkout racing
// the first observes an empty cart.
func (s *Store) Checkout() ([]LineItem, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.snapshot()
	sum := total(s.items)
	s.items = nil
	return items, sum
}

// remove deletes the line item for productID. Caller must hold s.mu.
func (s *Store) remove(productID string) {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// snapshot copies the line items. Caller must hold s.mu.
func (s *Store) snapshot() []LineItem {
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func total(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	return sum.Round(2)
}
