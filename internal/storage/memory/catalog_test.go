package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crumbworks/cookieshop/catalog"
	"github.com/crumbworks/cookieshop/internal/domain/product"
)

func TestNewCatalog_EmbeddedData(t *testing.T) {
	c, err := NewCatalog(catalog.Data)
	require.NoError(t, err)
	require.Positive(t, c.Len())

	products, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, c.Len())

	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.False(t, p.Price.IsNegative(), "product %s has negative price", p.ID)
		assert.True(t, p.Category.Valid(), "product %s has category %q", p.ID, p.Category)
		assert.NotEqual(t, product.CategoryAll, p.Category)
	}
}

func TestCatalog_GetByID(t *testing.T) {
	data := []byte(`[
		{"id": "1", "name": "Chocolate Chip", "description": "Classic.", "price": 3.99,
		 "category": "Classic", "image": "chip.jpg",
		 "ingredients": ["Flour", "Chocolate Chips"], "inStock": true, "featured": true},
		{"id": "2", "name": "Lemon Zest", "description": "Tangy.", "price": 3.49,
		 "category": "Specialty", "image": "lemon.jpg",
		 "ingredients": ["Flour", "Lemon"], "inStock": false}
	]`)

	c, err := NewCatalog(data)
	require.NoError(t, err)

	p, err := c.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Chip", p.Name)
	assert.Equal(t, "3.99", p.Price.StringFixed(2))
	assert.Equal(t, product.CategoryClassic, p.Category)
	assert.Equal(t, []string{"Flour", "Chocolate Chips"}, p.Ingredients)
	assert.True(t, p.InStock)
	assert.True(t, p.Featured)

	p, err = c.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, p.InStock)
	assert.False(t, p.Featured)

	_, err = c.GetByID(context.Background(), "999")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	data := []byte(`[
		{"id": "1", "name": "A", "price": 1.00, "category": "Classic", "inStock": true},
		{"id": "1", "name": "B", "price": 2.00, "category": "Classic", "inStock": true}
	]`)

	_, err := NewCatalog(data)
	assert.ErrorContains(t, err, "duplicate product id")
}

func TestNewCatalog_InvalidJSON(t *testing.T) {
	_, err := NewCatalog([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestDecodeProducts_UnknownFieldsSkipped(t *testing.T) {
	data := []byte(`[
		{"id": "1", "name": "A", "price": 1.50, "category": "Classic",
		 "inStock": true, "supplier": {"name": "Acme", "rating": 5}}
	]`)

	products, err := DecodeProducts(data)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "A", products[0].Name)
}
