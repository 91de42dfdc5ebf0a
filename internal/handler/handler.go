// Package handler implements the session gateway's HTTP surface: cart
// mutations, search, checkout, order views, and per-session tutorial and
// preview state. It adapts HTTP to the domain packages and maps domain
// errors back to JSON responses.
package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/xenking/eats-storefront/internal/checkout"
	"github.com/xenking/eats-storefront/internal/client"
	"github.com/xenking/eats-storefront/internal/domain/cart"
	"github.com/xenking/eats-storefront/internal/domain/order"
	"github.com/xenking/eats-storefront/internal/domain/restaurant"
	"github.com/xenking/eats-storefront/internal/domain/user"
	"github.com/xenking/eats-storefront/internal/search"
)

// SessionHeader carries the browsing session identity. The gateway issues a
// fresh UUID when the client does not present one; the client is expected to
// echo it on subsequent requests.
const SessionHeader = "X-Session-ID"

// Backend is the slice of the ordering backend client the gateway consumes.
type Backend interface {
	GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error)
	SearchRestaurants(ctx context.Context, city string, state search.State) (*client.SearchResponse, error)
	GetMyOrders(ctx context.Context) ([]order.Order, error)
	GetMyUser(ctx context.Context) (*user.User, error)
}

// CheckoutService starts a payment session for a browsing session's cart.
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, r *restaurant.Restaurant, profile *user.User) (*checkout.Result, error)
}

// SessionStore is the per-session state the gateway owns: tutorial flags and
// menu image previews. Carts go through cart.Store.
type SessionStore interface {
	SetFlag(ctx context.Context, sessionID, key string) error
	Flag(ctx context.Context, sessionID, key string) (bool, error)
	SavePreview(ctx context.Context, sessionID, menuItemID string, data []byte) error
	Preview(ctx context.Context, sessionID, menuItemID string) ([]byte, bool, error)
}

// Handler holds the gateway's dependencies.
type Handler struct {
	backend  Backend
	carts    cart.Store
	sessions SessionStore
	checkout CheckoutService
}

// New constructs a Handler.
func New(backend Backend, carts cart.Store, sessions SessionStore, checkoutSvc CheckoutService) *Handler {
	return &Handler{
		backend:  backend,
		carts:    carts,
		sessions: sessions,
		checkout: checkoutSvc,
	}
}

// Router builds the gateway route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/cart/{restaurantID}", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/{restaurantID}/items", h.AddCartItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/{restaurantID}/items/{itemID}", h.RemoveCartItem).Methods(http.MethodDelete)
	r.HandleFunc("/checkout/{restaurantID}", h.Checkout).Methods(http.MethodPost)
	r.HandleFunc("/search/{city}", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/restaurant/{id}", h.GetRestaurant).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.GetOrders).Methods(http.MethodGet)
	r.HandleFunc("/tutorial/{key}", h.GetTutorialFlag).Methods(http.MethodGet)
	r.HandleFunc("/tutorial/{key}", h.SetTutorialFlag).Methods(http.MethodPut)
	r.HandleFunc("/preview/{menuItemID}", h.GetPreview).Methods(http.MethodGet)
	r.HandleFunc("/preview/{menuItemID}", h.SavePreview).Methods(http.MethodPut)
	return r
}

// sessionID returns the request's session identity, issuing a new one when
// the header is absent or not a UUID. The effective ID is always echoed on
// the response so clients can adopt it.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.New().String()
	}
	w.Header().Set(SessionHeader, id)
	return id
}
