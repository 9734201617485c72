package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/crumbworks/cookieshop/internal/domain/order"
)

// checkout creates an order from the session cart. Card details, when sent
// by the payment form, are deliberately skipped during decoding and never
// reach the order service.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	d, err := decodeBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var info order.ShippingInfo
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "fullName":
			info.FullName, err = d.Str()
		case "email":
			info.Email, err = d.Str()
		case "phone":
			info.Phone, err = d.Str()
		case "address":
			info.Address, err = d.Str()
		case "city":
			info.City, err = d.Str()
		case "county":
			info.County, err = d.Str()
		case "postcode":
			info.Postcode, err = d.Str()
		case "country":
			info.Country, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref := h.cart(r)
	o, err := h.orders.Checkout(r.Context(), ref.sessionID, ref.store, info)
	if err != nil {
		mapCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeOrder(e, o)
	})
}

// getOrder returns a previously created order. Orders from other sessions
// look exactly like missing ones.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	sid := SessionIDFromContext(r.Context())
	o, err := h.orders.Get(r.Context(), sid, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get order"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encodeOrder(e, o)
	})
}

// mapCheckoutError converts order service errors to HTTP responses.
func mapCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, order.ErrEmptyCart) {
		writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	var mfErr *order.MissingFieldError
	if errors.As(err, &mfErr) {
		writeError(w, http.StatusBadRequest, mfErr.Error())
		return
	}

	writeInternalError(w, r, errors.Wrap(err, "checkout"))
}
