package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/eats-storefront/internal/checkout"
	"github.com/xenking/eats-storefront/internal/client"
	"github.com/xenking/eats-storefront/internal/domain/restaurant"
	"github.com/xenking/eats-storefront/internal/domain/user"
	"github.com/xenking/eats-storefront/internal/search"
)

// errorResponse is the JSON error body shape, matching the backend's own.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Best effort: the status line is already on the wire.
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

// respondError maps domain and transport errors onto HTTP statuses. Remote
// errors never surface as uncaught failures: they become JSON error bodies
// the UI can show as a transient notification.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusConflict, "cart is empty")
	case errors.Is(err, user.ErrIncompleteProfile):
		writeError(w, http.StatusUnprocessableEntity, "complete your delivery details first")
	case errors.Is(err, restaurant.ErrNotFound):
		writeError(w, http.StatusNotFound, "restaurant not found")
	case errors.Is(err, search.ErrInvalidSort):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			// Pass backend rejections through; hide backend outages
			// behind a 502 so they are distinguishable from our own
			// failures.
			status := apiErr.StatusCode
			if status >= 500 {
				status = http.StatusBadGateway
			}
			writeError(w, status, apiErr.Message)
			return
		}
		zctx.From(r.Context()).Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
