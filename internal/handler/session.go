package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the session identifier.
const SessionCookie = "shop_session"

type sessionIDKey struct{}

// SessionIDFromContext extracts the session ID from the context. It returns
// an empty string if no session is present.
func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithSession ensures every request carries a session identifier. A valid
// incoming shop_session cookie is reused; otherwise a new UUID is issued
// and set on the response. The ID is stored in the request context.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cart returns the session-scoped cart store for the request.
func (h *Handler) cart(r *http.Request) *cartRef {
	sid := SessionIDFromContext(r.Context())
	return &cartRef{sessionID: sid, store: h.sessions.Cart(sid)}
}
