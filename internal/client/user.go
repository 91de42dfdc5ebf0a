package client

import (
	"context"
	"net/http"

	"github.com/xenking/eats-storefront/internal/domain/user"
)

// CreateUserRequest registers the authenticated identity with the backend on
// first login.
type CreateUserRequest struct {
	Auth0ID string `json:"auth0Id"`
	Email   string `json:"email"`
}

// UpdateUserRequest carries the editable profile fields.
type UpdateUserRequest struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// GetMyUser fetches the current user's profile. Authenticated.
func (c *Client) GetMyUser(ctx context.Context) (*user.User, error) {
	var u user.User
	if err := c.getJSON(ctx, "/api/my/user", true, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateMyUser registers the current identity. The backend treats repeat
// registrations of the same auth0Id as a no-op. Authenticated.
func (c *Client) CreateMyUser(ctx context.Context, req CreateUserRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/my/user", req, nil)
}

// UpdateMyUser updates the profile fields used for delivery details.
// Authenticated.
func (c *Client) UpdateMyUser(ctx context.Context, req UpdateUserRequest) (*user.User, error) {
	var u user.User
	if err := c.sendJSON(ctx, http.MethodPut, "/api/my/user", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
