// Package memory implements the session stores on plain maps. It mirrors
// the Redis implementation's semantics (TTL, corrupt-equals-absent) and
// backs tests and local development without a running Redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xenking/eats-storefront/internal/domain/cart"
	"github.com/xenking/eats-storefront/internal/storage"
)

// Store holds carts, tutorial flags, and image previews for all sessions.
// Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	carts    map[string]entry
	flags    map[string]entry
	previews map[string]entry
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the session lifetime; entries older than it read as absent.
// Zero (the default) disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		carts:    make(map[string]entry),
		flags:    make(map[string]entry),
		previews: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ cart.Store = (*Store)(nil)

func cartKey(sessionID, restaurantID string) string {
	return sessionID + ":" + restaurantID
}

// Load returns the stored cart, or an empty cart when absent or expired.
func (s *Store) Load(_ context.Context, sessionID, restaurantID string) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.get(s.carts, cartKey(sessionID, restaurantID))
	if !ok {
		return cart.Cart{}, nil
	}
	c, err := storage.DecodeCart(raw)
	if err != nil || c == nil {
		// Corrupt snapshot reads as an empty cart, same as Redis.
		return cart.Cart{}, nil
	}
	return c, nil
}

// Save overwrites the full cart snapshot and refreshes its TTL.
func (s *Store) Save(_ context.Context, sessionID, restaurantID string, c cart.Cart) error {
	raw := storage.EncodeCart(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(s.carts, cartKey(sessionID, restaurantID), raw)
	return nil
}

// SetFlag marks a tutorial key completed for the session.
func (s *Store) SetFlag(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(s.flags, sessionID+":"+key, []byte("1"))
	return nil
}

// Flag reports whether a tutorial key was completed for the session.
func (s *Store) Flag(_ context.Context, sessionID, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.get(s.flags, sessionID+":"+key)
	return ok, nil
}

// SavePreview stores a menu item image preview keyed by the item's ID.
func (s *Store) SavePreview(_ context.Context, sessionID, menuItemID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(s.previews, sessionID+":"+menuItemID, data)
	return nil
}

// Preview returns a stored image preview, or ok=false when absent.
func (s *Store) Preview(_ context.Context, sessionID, menuItemID string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.get(s.previews, sessionID+":"+menuItemID)
	return data, ok, nil
}

// put stores a value, stamping the expiry when a TTL is configured.
// Caller holds mu.
func (s *Store) put(m map[string]entry, key string, value []byte) {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	m[key] = e
}

// get fetches a live value, deleting it when expired. Caller holds mu.
func (s *Store) get(m map[string]entry, key string) ([]byte, bool) {
	e, ok := m[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(m, key)
		return nil, false
	}
	return e.value, true
}

// Corrupt replaces a stored cart snapshot with an undecodable payload.
// Test hook for the corrupt-equals-absent contract.
func (s *Store) Corrupt(sessionID, restaurantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(s.carts, cartKey(sessionID, restaurantID), []byte("{not json"))
}
