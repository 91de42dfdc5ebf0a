// Package order defines the customer order as read from the ordering
// backend, plus the static status progression table used for display.
//
// Order lifecycle transitions are entirely server-driven; this package only
// maps the current status to a label and progress value and derives the
// expected delivery time.
package order

import (
	"fmt"
	"time"

	"github.com/xenking/eats-storefront/internal/domain/restaurant"
)

// Status is the server-owned order lifecycle state.
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusPaid           Status = "paid"
	StatusInProgress     Status = "inProgress"
	StatusOutForDelivery Status = "outForDelivery"
	StatusDelivered      Status = "delivered"
)

// CartItem is a line item snapshot inside an order. Quantity is a string on
// the wire; the backend owns that representation.
type CartItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
}

// DeliveryDetails is the address snapshot captured at checkout time.
type DeliveryDetails struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Email        string `json:"email"`
}

// Order is owned and mutated exclusively by the remote backend; the client
// only reads it. The Restaurant field is a denormalized snapshot reflecting
// restaurant state at order time, not a live reference.
type Order struct {
	ID              string                `json:"_id"`
	Status          Status                `json:"status"`
	CartItems       []CartItem            `json:"cartItems"`
	DeliveryDetails DeliveryDetails       `json:"deliveryDetails"`
	TotalAmount     int64                 `json:"totalAmount"`
	Restaurant      restaurant.Restaurant `json:"restaurant"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// StatusInfo pairs a lifecycle status with its display label and progress
// percentage.
type StatusInfo struct {
	Status   Status
	Label    string
	Progress int
}

// statusTable is ordered by lifecycle progression. The first entry doubles
// as the fallback for unrecognized statuses.
var statusTable = []StatusInfo{
	{Status: StatusPlaced, Label: "Placed", Progress: 0},
	{Status: StatusPaid, Label: "Awaiting Restaurant Confirmation", Progress: 25},
	{Status: StatusInProgress, Label: "In Progress", Progress: 50},
	{Status: StatusOutForDelivery, Label: "Out for Delivery", Progress: 75},
	{Status: StatusDelivered, Label: "Delivered", Progress: 100},
}

// InfoFor returns the display info for a status. Unrecognized statuses map
// to the first table entry rather than failing.
func InfoFor(s Status) StatusInfo {
	for _, info := range statusTable {
		if info.Status == s {
			return info
		}
	}
	return statusTable[0]
}

// Statuses returns the full ordered progression table.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, len(statusTable))
	copy(out, statusTable)
	return out
}

// ExpectedDelivery returns the order's expected delivery moment: creation
// time plus the restaurant snapshot's estimated delivery duration.
func (o *Order) ExpectedDelivery() time.Time {
	return o.CreatedAt.Add(time.Duration(o.Restaurant.EstimatedDeliveryTime) * time.Minute)
}

// ExpectedDeliveryClock formats the expected delivery as a wall-clock HH:MM
// string, matching what order status views display.
func (o *Order) ExpectedDeliveryClock() string {
	t := o.ExpectedDelivery()
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}
