// Package handler exposes the shop over HTTP. Handlers stay thin: they
// resolve the session cart, delegate to the domain, and map domain errors
// to status codes.
package handler

import (
	"net/http"

	"github.com/crumbworks/cookieshop/internal/domain/order"
	"github.com/crumbworks/cookieshop/internal/domain/product"
	"github.com/crumbworks/cookieshop/internal/storage/memory"
)

// Handler serves the shop API, delegating business logic to the product
// repository and the order service.
type Handler struct {
	products product.Repository
	orders   *order.Service
	sessions *memory.SessionStore
}

// New constructs a Handler with the required domain dependencies.
func New(
	products product.Repository,
	orders *order.Service,
	sessions *memory.SessionStore,
) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
		sessions: sessions,
	}
}

// Routes returns the API routes with session resolution applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)

	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.updateCartItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.removeCartItem)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)

	mux.HandleFunc("POST /api/checkout", h.checkout)
	mux.HandleFunc("GET /api/orders/{id}", h.getOrder)

	return WithSession(mux)
}
