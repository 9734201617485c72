package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/crumbworks/cookieshop/internal/domain/cart"
	"github.com/crumbworks/cookieshop/internal/domain/product"
)

// cartRef binds a session ID to its cart store for the duration of a
// request.
type cartRef struct {
	sessionID string
	store     *cart.Store
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeCart(w, http.StatusOK, h.cart(r).store)
}

// addCartItem adds one unit of a product to the session cart. Unknown
// products are 404; out-of-stock products are rejected here rather than in
// the cart store, which accepts anything the catalog holds.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	d, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var productID string
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key == "productId" {
			var err error
			productID, err = d.Str()
			return err
		}
		return d.Skip()
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if productID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	p, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get product"))
		return
	}
	if !p.InStock {
		writeError(w, http.StatusUnprocessableEntity, "product is out of stock")
		return
	}

	c := h.cart(r).store
	c.Add(*p)
	writeCart(w, http.StatusOK, c)
}

// updateCartItem sets the quantity of a line item. A quantity of zero or
// less removes the item; an unknown product ID is a no-op, mirroring the
// cart store's idempotent semantics.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	d, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var quantity int
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key == "quantity" {
			var err error
			quantity, err = d.Int()
			return err
		}
		return d.Skip()
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.cart(r).store
	c.SetQuantity(r.PathValue("id"), quantity)
	writeCart(w, http.StatusOK, c)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.cart(r).store
	c.Remove(r.PathValue("id"))
	writeCart(w, http.StatusOK, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	c := h.cart(r).store
	c.Clear()
	writeCart(w, http.StatusOK, c)
}
