package product

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Category classifies a product within the catalog.
type Category string

// CategoryAll is the wildcard selector that matches every category.
const CategoryAll Category = "All"

const (
	CategoryClassic   Category = "Classic"
	CategoryChocolate Category = "Chocolate"
	CategoryPremium   Category = "Premium"
	CategorySpecialty Category = "Specialty"
)

// Categories lists every concrete category, in display order.
var Categories = []Category{
	CategoryClassic,
	CategoryChocolate,
	CategoryPremium,
	CategorySpecialty,
}

// ParseCategory resolves a case-insensitive category name. An empty string
// resolves to the wildcard.
func ParseCategory(s string) (Category, bool) {
	if s == "" || strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Valid reports whether c is a known concrete category or the wildcard.
func (c Category) Valid() bool {
	if c == CategoryAll {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a catalog item available for purchase. Products are
// immutable once loaded; callers must not modify them.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    Category
	Image       string
	Ingredients []string
	InStock     bool
	Featured    bool
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
