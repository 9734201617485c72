package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crumbworks/cookieshop/internal/domain/cart"
)

// Status describes the lifecycle state of an order. With no fulfilment
// backend, every order is completed at the moment it is created; the type
// exists so a backend could extend the set without changing callers.
type Status string

// StatusCompleted is assigned to every order at creation.
const StatusCompleted Status = "completed"

// ShippingInfo holds the customer-supplied delivery details captured at
// checkout. All fields except Country are required; Country defaults to
// DefaultCountry when left empty.
type ShippingInfo struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	County   string
	Postcode string
	Country  string
}

// DefaultCountry is applied when the checkout form leaves Country empty.
const DefaultCountry = "USA"

// Order is an immutable snapshot of a completed checkout. Items are copied
// out of the cart at creation time; later cart mutations never affect an
// already-created order.
type Order struct {
	ID        string
	SessionID string
	Items     []cart.LineItem
	Shipping  ShippingInfo
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
}

// Repository defines storage operations for orders. Implementations are
// session-scoped and transient; orders live only as long as the process.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
}
