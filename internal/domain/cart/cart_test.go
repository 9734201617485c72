package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crumbworks/cookieshop/internal/domain/product"
)

func newTestProduct(id, name, price string) product.Product {
	return product.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Category:    product.CategoryClassic,
		Ingredients: []string{"Flour", "Sugar"},
		InStock:     true,
	}
}

func TestStore_AddAccumulatesQuantity(t *testing.T) {
	s := NewStore()
	p := newTestProduct("1", "Chocolate Chip", "3.99")

	for range 5 {
		s.Add(p)
	}

	items := s.Items()
	require.Len(t, items, 1, "repeated adds must keep a single line item")
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, s.Count())
}

func TestStore_AddAppendsNewProducts(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))
	s.Add(newTestProduct("2", "Oatmeal Raisin", "3.49"))
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Product.ID, "insertion order preserved")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "2", items[1].Product.ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))
	s.Add(newTestProduct("2", "Oatmeal Raisin", "3.49"))

	s.Remove("1")
	once := s.Items()

	s.Remove("1")
	twice := s.Items()

	assert.Equal(t, once, twice)
	require.Len(t, twice, 1)
	assert.Equal(t, "2", twice[0].Product.ID)
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))

	s.Remove("missing")

	assert.Equal(t, 1, s.Count())
}

func TestStore_SetQuantity(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))

	s.SetQuantity("1", 7)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, "27.93", s.Total().StringFixed(2))
}

func TestStore_SetQuantityZeroEqualsRemove(t *testing.T) {
	forRemove := NewStore()
	forZero := NewStore()
	forNegative := NewStore()
	for _, s := range []*Store{forRemove, forZero, forNegative} {
		s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))
		s.Add(newTestProduct("2", "Oatmeal Raisin", "3.49"))
	}

	forRemove.Remove("1")
	forZero.SetQuantity("1", 0)
	forNegative.SetQuantity("1", -3)

	assert.Equal(t, forRemove.Items(), forZero.Items())
	assert.Equal(t, forRemove.Items(), forNegative.Items())
}

func TestStore_SetQuantityUnknownIsNoop(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))

	s.SetQuantity("missing", 3)

	assert.Equal(t, 1, s.Count())
}

func TestStore_TotalMatchesRecomputation(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))
	s.Add(newTestProduct("2", "Oatmeal Raisin", "3.49"))
	s.SetQuantity("2", 3)
	s.Add(newTestProduct("3", "Snickerdoodle", "3.79"))
	s.Remove("3")

	expected := decimal.Zero
	for _, item := range s.Items() {
		expected = expected.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	assert.True(t, s.Total().Equal(expected), "got %s want %s", s.Total(), expected)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))
	s.Add(newTestProduct("2", "Oatmeal Raisin", "3.49"))

	s.Clear()

	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "0.00", s.Total().StringFixed(2))
}

func TestStore_CheckoutSnapshotAndClear(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))
	s.Add(newTestProduct("2", "Oatmeal Raisin", "3.49"))
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))

	items, total := s.Checkout()

	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "11.47", total.StringFixed(2))
	assert.Empty(t, s.Items(), "checkout must leave the cart empty")

	// Later mutations must not touch the snapshot.
	s.Add(newTestProduct("3", "Snickerdoodle", "3.79"))
	s.SetQuantity("3", 9)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_CheckoutOnEmptyCart(t *testing.T) {
	s := NewStore()

	items, total := s.Checkout()

	assert.Empty(t, items)
	assert.Equal(t, "0.00", total.StringFixed(2))
}

// The worked example: add A twice, add B, drop A, check out B.
func TestStore_Scenario(t *testing.T) {
	a := newTestProduct("A", "Classic Chocolate Chip", "3.99")
	b := newTestProduct("B", "Double Chocolate Fudge", "4.49")
	s := NewStore()

	s.Add(a)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "3.99", s.Total().StringFixed(2))

	s.Add(a)
	assert.Equal(t, 2, s.Items()[0].Quantity)
	assert.Equal(t, "7.98", s.Total().StringFixed(2))

	s.Add(b)
	assert.Equal(t, "12.47", s.Total().StringFixed(2))
	assert.Equal(t, 3, s.Count())

	s.SetQuantity("A", 0)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Product.ID)
	assert.Equal(t, "4.49", s.Total().StringFixed(2))

	items, total := s.Checkout()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Product.ID)
	assert.Equal(t, "4.49", total.StringFixed(2))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "0.00", s.Total().StringFixed(2))
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := NewStore()
	p := newTestProduct("1", "Chocolate Chip", "3.99")

	const workers = 8
	const addsPerWorker = 100

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range addsPerWorker {
				s.Add(p)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*addsPerWorker, s.Count())
	require.Len(t, s.Items(), 1)
}

func TestStore_ConcurrentCheckoutCreatesOneSnapshot(t *testing.T) {
	s := NewStore()
	s.Add(newTestProduct("1", "Chocolate Chip", "3.99"))

	const racers = 4
	results := make(chan int, racers)

	var wg sync.WaitGroup
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, _ := s.Checkout()
			results <- len(items)
		}()
	}
	wg.Wait()
	close(results)

	nonEmpty := 0
	for n := range results {
		if n > 0 {
			nonEmpty++
		}
	}
	assert.Equal(t, 1, nonEmpty, "exactly one racing checkout may drain the cart")
}
