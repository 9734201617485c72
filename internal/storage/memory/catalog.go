// Package memory provides the in-memory storage backing the shop. All state
// here is transient: the catalog is loaded once at startup, carts and orders
// live only for the session that created them.
package memory

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/crumbworks/cookieshop/internal/domain/product"
)

var _ product.Repository = (*Catalog)(nil)

// Catalog implements product.Repository over a static product list decoded
// from JSON (usually the embedded catalog).
type Catalog struct {
	products []product.Product
	byID     map[string]product.Product
}

// NewCatalog decodes the given catalog JSON and indexes it by product ID.
// Duplicate IDs are rejected.
func NewCatalog(data []byte) (*Catalog, error) {
	products, err := DecodeProducts(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; ok {
			return nil, errors.Errorf("duplicate product id %q", p.ID)
		}
		byID[p.ID] = p
	}

	return &Catalog{products: products, byID: byID}, nil
}

// List returns all products in catalog order.
func (c *Catalog) List(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// GetByID returns a single product by its identifier, or product.ErrNotFound.
func (c *Catalog) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// DecodeProducts parses a JSON array of catalog entries.
func DecodeProducts(data []byte) ([]product.Product, error) {
	d := jx.DecodeBytes(data)

	var products []product.Product
	if err := d.Arr(func(d *jx.Decoder) error {
		p, err := decodeProduct(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, err
	}
	return products, nil
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "description":
			p.Description, err = d.Str()
		case "price":
			var n jx.Num
			if n, err = d.Num(); err != nil {
				return err
			}
			p.Price, err = decimal.NewFromString(string(n))
		case "category":
			var s string
			if s, err = d.Str(); err != nil {
				return err
			}
			p.Category = product.Category(s)
		case "image":
			p.Image, err = d.Str()
		case "ingredients":
			err = d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return err
				}
				p.Ingredients = append(p.Ingredients, s)
				return nil
			})
		case "inStock":
			p.InStock, err = d.Bool()
		case "featured":
			p.Featured, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return product.Product{}, errors.Wrapf(err, "decode product %q", p.ID)
	}
	return p, nil
}
