// Package user defines the authenticated user's profile as managed by the
// backend. Identity (token issuance, login) is an external concern.
package user

import "github.com/go-faster/errors"

// ErrIncompleteProfile is returned when a profile is missing fields that
// checkout requires for delivery details.
var ErrIncompleteProfile = errors.New("user profile is incomplete")

// User is the backend's profile record for the authenticated user.
type User struct {
	ID           string `json:"_id"`
	Auth0ID      string `json:"auth0Id,omitempty"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// ValidateForCheckout reports whether the profile carries everything needed
// to build delivery details. Checkout entry points stay disabled until the
// profile passes.
func (u *User) ValidateForCheckout() error {
	if u.Name == "" || u.AddressLine1 == "" || u.City == "" || u.Email == "" {
		return ErrIncompleteProfile
	}
	return nil
}
