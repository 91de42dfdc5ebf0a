package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xenking/eats-storefront/internal/checkout"
	"github.com/xenking/eats-storefront/internal/domain/order"
)

// orderView is an order enriched with the display fields the UI derives
// from status and timing: label, progress percentage, expected delivery.
type orderView struct {
	order.Order
	StatusLabel      string `json:"statusLabel"`
	Progress         int    `json:"progress"`
	ExpectedDelivery string `json:"expectedDelivery"`
}

func newOrderView(o order.Order) orderView {
	info := order.InfoFor(o.Status)
	return orderView{
		Order:            o,
		StatusLabel:      info.Label,
		Progress:         info.Progress,
		ExpectedDelivery: o.ExpectedDeliveryClock(),
	}
}

// GetOrders lists the user's orders with derived display state. The
// client-side poller hits this endpoint on its interval.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.backend.GetMyOrders(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	views := make([]orderView, len(orders))
	for i, o := range orders {
		views[i] = newOrderView(o)
	}
	writeJSON(w, http.StatusOK, views)
}

// Checkout creates a payment session for the session's cart at the given
// restaurant and returns the redirect URL. Responds 409 when the cart is
// empty; the cart lives in the session store, so that case is decided before
// any backend call is made.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	restaurantID := mux.Vars(r)["restaurantID"]

	c, err := h.carts.Load(r.Context(), sid, restaurantID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(c) == 0 {
		h.respondError(w, r, checkout.ErrEmptyCart)
		return
	}

	rest, err := h.backend.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	profile, err := h.backend.GetMyUser(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.checkout.Checkout(r.Context(), sid, rest, profile)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": result.RedirectURL})
}
