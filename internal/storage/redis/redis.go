// Package redis implements the session stores on Redis. All keys carry the
// configured session TTL, refreshed on write, so state lives exactly as long
// as the browsing session it belongs to.
//
// Key layout:
//
//	cart:{sessionID}:{restaurantID}   cart snapshot (jx-encoded)
//	tutorial:{sessionID}:{key}        one-time walkthrough flag
//	preview:{sessionID}:{menuItemID}  menu image preview bytes
package redis

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/xenking/eats-storefront/internal/domain/cart"
	"github.com/xenking/eats-storefront/internal/storage"
)

// Config holds connection and lifetime settings for the store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// SessionTTL bounds every key's lifetime; refreshed on each write.
	SessionTTL time.Duration
}

// Store is the Redis-backed session store.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ cart.Store = (*Store)(nil)

// NewStore connects to Redis and verifies the connection with a ping.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	return &Store{rdb: rdb, ttl: cfg.SessionTTL}, nil
}

// Ping reports connection health; wired into the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.rdb.Close()
}

func cartKey(sessionID, restaurantID string) string {
	return "cart:" + sessionID + ":" + restaurantID
}

func flagKey(sessionID, key string) string {
	return "tutorial:" + sessionID + ":" + key
}

func previewKey(sessionID, menuItemID string) string {
	return "preview:" + sessionID + ":" + menuItemID
}

// Load returns the stored cart for the (session, restaurant) key. An absent
// key or an undecodable payload both read as an empty cart; corrupt session
// data must never break a view. Only transport errors are surfaced.
func (s *Store) Load(ctx context.Context, sessionID, restaurantID string) (cart.Cart, error) {
	raw, err := s.rdb.Get(ctx, cartKey(sessionID, restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	c, err := storage.DecodeCart(raw)
	if err != nil || c == nil {
		return cart.Cart{}, nil
	}
	return c, nil
}

// Save overwrites the full cart snapshot and refreshes the session TTL.
// There are no merge semantics: the caller's cart is the whole truth.
func (s *Store) Save(ctx context.Context, sessionID, restaurantID string, c cart.Cart) error {
	raw := storage.EncodeCart(c)
	if err := s.rdb.Set(ctx, cartKey(sessionID, restaurantID), raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "save cart")
	}
	return nil
}

// SetFlag marks a tutorial key completed for the session.
func (s *Store) SetFlag(ctx context.Context, sessionID, key string) error {
	if err := s.rdb.Set(ctx, flagKey(sessionID, key), "1", s.ttl).Err(); err != nil {
		return errors.Wrap(err, "set tutorial flag")
	}
	return nil
}

// Flag reports whether a tutorial key was completed for the session.
func (s *Store) Flag(ctx context.Context, sessionID, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, flagKey(sessionID, key)).Result()
	if err != nil {
		return false, errors.Wrap(err, "check tutorial flag")
	}
	return n > 0, nil
}

// SavePreview stores a menu item image preview. Previews are keyed by the
// item's stable ID; item renames or price changes do not invalidate them.
func (s *Store) SavePreview(ctx context.Context, sessionID, menuItemID string, data []byte) error {
	if err := s.rdb.Set(ctx, previewKey(sessionID, menuItemID), data, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "save preview")
	}
	return nil
}

// Preview returns a stored image preview, or ok=false when absent.
func (s *Store) Preview(ctx context.Context, sessionID, menuItemID string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, previewKey(sessionID, menuItemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "load preview")
	}
	return data, true, nil
}
