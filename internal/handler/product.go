package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/crumbworks/cookieshop/internal/domain/product"
)

// listProducts returns the catalog, optionally narrowed by the category
// selector and a free-text search term.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	category, ok := product.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	query := r.URL.Query().Get("q")

	products, err := h.products.List(r.Context())
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "list products"))
		return
	}
	products = product.Filter(products, category, query)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range products {
				encodeProduct(e, p)
			}
		})
	})
}

// getProduct returns a single catalog entry by ID.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get product"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeProduct(e, *p)
	})
}
