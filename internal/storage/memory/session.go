package memory

import (
	"context"
	"sync"
	"time"

	"github.com/crumbworks/cookieshop/internal/domain/cart"
)

// sessionEntry tracks one session's cart and when it was last touched.
type sessionEntry struct {
	cart     *cart.Store
	lastSeen time.Time
}

// SessionStore maps session IDs to cart stores. Carts are created lazily on
// first access and evicted after ttl of inactivity by the cleanup sweeper.
type SessionStore struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionStore creates a SessionStore whose carts expire after ttl of
// inactivity.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry),
	}
}

// Cart returns the cart for sessionID, creating it on first access. Every
// call refreshes the session's expiry.
func (s *SessionStore) Cart(sessionID string) *cart.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		e = &sessionEntry{cart: cart.NewStore()}
		s.sessions[sessionID] = e
	}
	e.lastSeen = time.Now()
	return e.cart
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// cleanup removes sessions idle longer than ttl.
func (s *SessionStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) >= s.ttl {
			delete(s.sessions, id)
		}
	}
}

// StartCleanup launches a background goroutine that periodically evicts
// expired sessions. It stops when ctx is cancelled.
func (s *SessionStore) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.cleanup(now)
			}
		}
	}()
}
