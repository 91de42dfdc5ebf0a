// Package restaurant defines the restaurant catalog types shared by the
// search, cart, and checkout flows.
package restaurant

import "github.com/go-faster/errors"

// ErrNotFound is returned when a requested restaurant does not exist.
var ErrNotFound = errors.New("restaurant not found")

// MenuItem is a single orderable entry on a restaurant's menu.
// Price is in minor currency units.
type MenuItem struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Restaurant is the full catalog record. DeliveryPrice is in minor units and
// EstimatedDeliveryTime is in minutes.
type Restaurant struct {
	ID                    string     `json:"_id"`
	Name                  string     `json:"restaurantName"`
	City                  string     `json:"city"`
	Country               string     `json:"country"`
	DeliveryPrice         int64      `json:"deliveryPrice"`
	EstimatedDeliveryTime int        `json:"estimatedDeliveryTime"`
	Cuisines              []string   `json:"cuisines"`
	MenuItems             []MenuItem `json:"menuItems"`
	ImageURL              string     `json:"imageUrl"`
	LastUpdated           string     `json:"lastUpdated,omitempty"`
}

// FindMenuItem returns the menu item with the given ID, or false when the
// restaurant does not offer it.
func (r *Restaurant) FindMenuItem(id string) (MenuItem, bool) {
	for _, item := range r.MenuItems {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
