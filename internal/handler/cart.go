package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xenking/eats-storefront/internal/domain/cart"
)

// cartResponse is a cart snapshot with its derived total. Total includes the
// restaurant's delivery fee and is in minor units; the UI divides by 100.
type cartResponse struct {
	RestaurantID string    `json:"restaurantId"`
	Items        cart.Cart `json:"items"`
	Total        int64     `json:"total"`
}

func (h *Handler) cartResponse(r *http.Request, restaurantID string, c cart.Cart) (*cartResponse, error) {
	rest, err := h.backend.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		return nil, err
	}
	return &cartResponse{
		RestaurantID: restaurantID,
		Items:        c,
		Total:        cart.Total(c, rest.DeliveryPrice),
	}, nil
}

// GetCart returns the session's cart for a restaurant. A first visit yields
// an empty cart, not an error.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	restaurantID := mux.Vars(r)["restaurantID"]

	c, err := h.carts.Load(r.Context(), sid, restaurantID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	resp, err := h.cartResponse(r, restaurantID, c)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddCartItem adds one unit of a menu item to the session's cart. The item
// is resolved against the restaurant's live menu, so the client cannot
// invent items or prices.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	restaurantID := mux.Vars(r)["restaurantID"]

	var req struct {
		MenuItemID string `json:"menuItemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MenuItemID == "" {
		writeError(w, http.StatusBadRequest, "menuItemId is required")
		return
	}

	rest, err := h.backend.GetRestaurant(r.Context(), restaurantID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	item, ok := rest.FindMenuItem(req.MenuItemID)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "menu item not found")
		return
	}

	c, err := h.carts.Load(r.Context(), sid, restaurantID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	c = cart.Add(c, item.ID, item.Name, item.Price)
	if err := h.carts.Save(r.Context(), sid, restaurantID, c); err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &cartResponse{
		RestaurantID: restaurantID,
		Items:        c,
		Total:        cart.Total(c, rest.DeliveryPrice),
	})
}

// RemoveCartItem drops a whole line item from the session's cart. Removing
// an absent item succeeds with the cart unchanged.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	vars := mux.Vars(r)
	restaurantID := vars["restaurantID"]

	c, err := h.carts.Load(r.Context(), sid, restaurantID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	c = cart.Remove(c, vars["itemID"])
	if err := h.carts.Save(r.Context(), sid, restaurantID, c); err != nil {
		h.respondError(w, r, err)
		return
	}

	resp, err := h.cartResponse(r, restaurantID, c)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
