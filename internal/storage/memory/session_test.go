package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crumbworks/cookieshop/internal/domain/order"
	"github.com/crumbworks/cookieshop/internal/domain/product"
)

func TestSessionStore_CartIsStablePerSession(t *testing.T) {
	s := NewSessionStore(time.Hour)

	c1 := s.Cart("sess-1")
	c2 := s.Cart("sess-2")
	assert.NotSame(t, c1, c2, "sessions must get isolated carts")

	c1.Add(product.Product{ID: "1", Price: decimal.RequireFromString("3.99")})
	assert.Equal(t, 1, c1.Count())
	assert.Equal(t, 0, c2.Count())

	assert.Same(t, c1, s.Cart("sess-1"), "repeat access returns the same cart")
	assert.Equal(t, 2, s.Len())
}

func TestSessionStore_CleanupEvictsIdleSessions(t *testing.T) {
	s := NewSessionStore(time.Minute)

	s.Cart("idle")
	s.Cart("active")

	// Only "active" is touched again later; backdate both then refresh one.
	s.mu.Lock()
	for _, e := range s.sessions {
		e.lastSeen = time.Now().Add(-2 * time.Minute)
	}
	s.mu.Unlock()
	s.Cart("active")

	s.cleanup(time.Now())

	assert.Equal(t, 1, s.Len())
	require.Contains(t, s.sessions, "active")
}

func TestOrderStore_CreateAndGet(t *testing.T) {
	s := NewOrderStore()

	o := &order.Order{
		ID:        "ord-1",
		SessionID: "sess-1",
		Total:     decimal.RequireFromString("4.49"),
		Status:    order.StatusCompleted,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Create(context.Background(), o))

	got, err := s.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, o, got)

	_, err = s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)
}
