// Package checkout bridges cart state, the user's profile, and remote
// payment session creation.
package checkout

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/eats-storefront/internal/client"
	"github.com/xenking/eats-storefront/internal/domain/cart"
	"github.com/xenking/eats-storefront/internal/domain/order"
	"github.com/xenking/eats-storefront/internal/domain/restaurant"
	"github.com/xenking/eats-storefront/internal/domain/user"
)

// ErrEmptyCart is returned when checkout is attempted with no line items.
// No remote call is made in that case.
var ErrEmptyCart = errors.New("cart is empty")

// SessionCreator is the slice of the backend client that checkout needs.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, req client.CheckoutSessionRequest, idempotencyKey string) (*client.CheckoutSession, error)
}

// Service orchestrates a checkout: load the cart, build the session request,
// delegate to the payment session creator, and hand back the redirect URL.
type Service struct {
	carts    cart.Store
	sessions SessionCreator

	// newKey generates one idempotency key per checkout attempt; swappable
	// in tests.
	newKey func() string
}

// NewService creates a checkout Service.
func NewService(carts cart.Store, sessions SessionCreator) *Service {
	return &Service{
		carts:    carts,
		sessions: sessions,
		newKey:   func() string { return uuid.New().String() },
	}
}

// Result is a successful checkout: where to redirect the user, and the
// attempt key that identifies this checkout for deduplication.
type Result struct {
	RedirectURL    string
	IdempotencyKey string
}

// Checkout creates a payment session for the session's cart at the given
// restaurant.
//
// The request carries each line's ID, name, and quantity but never its
// price; the backend reprices from its own catalog. A fresh idempotency key
// is generated per attempt, so transport-level replays of the same attempt
// cannot create a second session. On any failure the stored cart is left
// untouched and the user may retry.
func (s *Service) Checkout(ctx context.Context, sessionID string, r *restaurant.Restaurant, profile *user.User) (*Result, error) {
	if err := profile.ValidateForCheckout(); err != nil {
		return nil, err
	}

	c, err := s.carts.Load(ctx, sessionID, r.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if len(c) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]client.CheckoutItem, len(c))
	for i, line := range c {
		items[i] = client.CheckoutItem{
			MenuItemID: line.ID,
			Name:       line.Name,
			Quantity:   strconv.Itoa(line.Quantity),
		}
	}

	req := client.CheckoutSessionRequest{
		CartItems:    items,
		RestaurantID: r.ID,
		DeliveryDetails: order.DeliveryDetails{
			Name:         profile.Name,
			AddressLine1: profile.AddressLine1,
			City:         profile.City,
			Email:        profile.Email,
		},
	}

	key := s.newKey()
	session, err := s.sessions.CreateCheckoutSession(ctx, req, key)
	if err != nil {
		return nil, errors.Wrap(err, "create checkout session")
	}

	return &Result{RedirectURL: session.URL, IdempotencyKey: key}, nil
}
