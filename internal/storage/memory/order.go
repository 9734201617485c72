package memory

import (
	"context"
	"sync"

	"github.com/crumbworks/cookieshop/internal/domain/order"
)

var _ order.Repository = (*OrderStore)(nil)

// OrderStore implements order.Repository in memory. Orders are immutable
// after Create, so reads hand back the stored pointer.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewOrderStore returns an empty in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*order.Order)}
}

// Create stores a new order.
func (s *OrderStore) Create(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	return nil
}

// GetByID returns the order with the given ID, or order.ErrNotFound.
func (s *OrderStore) GetByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}
