package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xenking/eats-storefront/internal/search"
)

// Search proxies a restaurant search to the backend. The search state is
// parsed from the query string; a missing city never reaches this handler
// (the route requires it), so an empty result set here is a genuine "no
// results in this city", not a skipped query.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city"]

	state, err := search.FromValues(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.backend.SearchRestaurants(r.Context(), city, state)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetRestaurant proxies a restaurant detail read.
func (h *Handler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.backend.GetRestaurant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}
