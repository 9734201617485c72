package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/crumbworks/cookieshop/internal/domain/cart"
)

// Sentinel errors for checkout validation.
var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotFound  = errors.New("order not found")
)

// MissingFieldError indicates a required shipping field was left empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("shipping field %s is required", e.Field)
}

// Service encapsulates checkout business logic: it turns the current cart
// into an immutable order and hands it to the order repository.
type Service struct {
	orders Repository
	now    func() time.Time
}

// NewService creates an order Service backed by the given repository.
func NewService(orders Repository) *Service {
	return &Service{
		orders: orders,
		now:    time.Now,
	}
}

// Checkout validates the shipping details, atomically drains the cart, and
// persists a completed order owned by sessionID. The cart store itself has
// no opinion on an empty cart; the service refuses with ErrEmptyCart so the
// caller can send the user back to browsing. The snapshot, total, and clear
// happen in one step inside the cart store, so a double-fired checkout
// creates at most one order.
func (s *Service) Checkout(ctx context.Context, sessionID string, c *cart.Store, info ShippingInfo) (*Order, error) {
	if err := validateShipping(&info); err != nil {
		return nil, err
	}

	items, total := c.Checkout()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     items,
		Shipping:  info,
		Total:     total,
		Status:    StatusCompleted,
		CreatedAt: s.now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}

// Get returns the order with the given ID if it belongs to sessionID.
// Orders owned by other sessions are indistinguishable from missing ones.
func (s *Service) Get(ctx context.Context, sessionID, orderID string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.SessionID != sessionID {
		return nil, ErrNotFound
	}
	return o, nil
}

// validateShipping checks field presence and applies the country default.
func validateShipping(info *ShippingInfo) error {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", info.FullName},
		{"email", info.Email},
		{"phone", info.Phone},
		{"address", info.Address},
		{"city", info.City},
		{"county", info.County},
		{"postcode", info.Postcode},
	}
	for _, f := range required {
		if f.value == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	if info.Country == "" {
		info.Country = DefaultCountry
	}
	return nil
}
