package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/crumbworks/cookieshop/internal/domain/cart"
	"github.com/crumbworks/cookieshop/internal/domain/order"
	"github.com/crumbworks/cookieshop/internal/domain/product"
)

// maxBodySize bounds request bodies; the shop's payloads are tiny.
const maxBodySize = 1 << 20

// writeJSON encodes a response body with jx and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the shared {code, message} error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		})
	})
}

// writeInternalError logs err and responds with a generic 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("handler error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody reads the request body and returns a jx decoder over it.
func decodeBody(r *http.Request) (*jx.Decoder, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	return jx.DecodeBytes(data), nil
}

// money encodes a decimal amount as a plain JSON number with exact digits.
func money(e *jx.Encoder, d interface{ String() string }) {
	e.Num(jx.Num(d.String()))
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("price", func(e *jx.Encoder) { money(e, p.Price) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(p.Category)) })
		e.Field("image", func(e *jx.Encoder) { e.Str(p.Image) })
		e.Field("ingredients", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, ing := range p.Ingredients {
					e.Str(ing)
				}
			})
		})
		e.Field("inStock", func(e *jx.Encoder) { e.Bool(p.InStock) })
		e.Field("featured", func(e *jx.Encoder) { e.Bool(p.Featured) })
	})
}

func encodeLineItems(e *jx.Encoder, items []cart.LineItem) {
	e.Arr(func(e *jx.Encoder) {
		for _, item := range items {
			e.Obj(func(e *jx.Encoder) {
				e.Field("product", func(e *jx.Encoder) { encodeProduct(e, item.Product) })
				e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
			})
		}
	})
}

// writeCart responds with the current cart view: items, total, count.
func writeCart(w http.ResponseWriter, status int, c *cart.Store) {
	items := c.Items()
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("items", func(e *jx.Encoder) { encodeLineItems(e, items) })
			e.Field("total", func(e *jx.Encoder) { money(e, c.Total()) })
			e.Field("count", func(e *jx.Encoder) { e.Int(c.Count()) })
		})
	})
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("items", func(e *jx.Encoder) { encodeLineItems(e, o.Items) })
		e.Field("shippingInfo", func(e *jx.Encoder) { encodeShipping(e, o.Shipping) })
		e.Field("total", func(e *jx.Encoder) { money(e, o.Total) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("date", func(e *jx.Encoder) { e.Str(o.CreatedAt.Format(time.RFC3339)) })
	})
}

func encodeShipping(e *jx.Encoder, s order.ShippingInfo) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("fullName", func(e *jx.Encoder) { e.Str(s.FullName) })
		e.Field("email", func(e *jx.Encoder) { e.Str(s.Email) })
		e.Field("phone", func(e *jx.Encoder) { e.Str(s.Phone) })
		e.Field("address", func(e *jx.Encoder) { e.Str(s.Address) })
		e.Field("city", func(e *jx.Encoder) { e.Str(s.City) })
		e.Field("county", func(e *jx.Encoder) { e.Str(s.County) })
		e.Field("postcode", func(e *jx.Encoder) { e.Str(s.Postcode) })
		e.Field("country", func(e *jx.Encoder) { e.Str(s.Country) })
	})
}
