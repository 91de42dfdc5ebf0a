package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/eats-storefront/internal/domain/order"
)

// CheckoutItem is a cart line as sent to the checkout session endpoint.
// Price is intentionally absent: the backend reprices every item from its
// own catalog so a tampering client cannot influence the charge. Quantity is
// a string on the wire per the backend contract.
type CheckoutItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
}

// CheckoutSessionRequest is the one-shot payment session creation payload.
type CheckoutSessionRequest struct {
	CartItems       []CheckoutItem        `json:"cartItems"`
	DeliveryDetails order.DeliveryDetails `json:"deliveryDetails"`
	RestaurantID    string                `json:"restaurantId"`
}

// CheckoutSession is the externally created payment-flow handle; the caller
// redirects the user to URL.
type CheckoutSession struct {
	URL string `json:"url"`
}

// GetMyOrders lists the authenticated user's orders, newest lifecycle state
// included. Authenticated.
func (c *Client) GetMyOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.getJSON(ctx, "/api/order", true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateCheckoutSession asks the backend to create a payment session. The
// idempotency key identifies one checkout attempt; the backend deduplicates
// replays of the same attempt, so a network retry cannot double-charge.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest, idempotencyKey string) (*CheckoutSession, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "encode checkout session request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/order/checkout/create-checkout-session", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	if c.tokens == nil {
		return nil, errors.New("token source is required for authenticated calls")
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "acquire token")
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "create checkout session")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.Wrap(err, "decode checkout session response")
	}
	if session.URL == "" {
		return nil, errors.New("checkout session response has no redirect URL")
	}
	return &session, nil
}
