package client

import (
	"context"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/xenking/eats-storefront/internal/domain/restaurant"
	"github.com/xenking/eats-storefront/internal/search"
)

// Pagination describes the result window of a search response.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// SearchResponse is one page of restaurant search results. An empty Data
// with a present city is a valid "no results" outcome, distinct from the
// caller skipping the request because no city was chosen.
type SearchResponse struct {
	Data       []restaurant.Restaurant `json:"data"`
	Pagination Pagination              `json:"pagination"`
}

// GetRestaurant fetches a restaurant's public detail record. Unauthenticated.
// A 404 maps to restaurant.ErrNotFound.
func (c *Client) GetRestaurant(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	var payload struct {
		Restaurant restaurant.Restaurant `json:"restaurant"`
	}
	err := c.getJSON(ctx, "/api/restaurant/"+url.PathEscape(id), false, &payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, restaurant.ErrNotFound
		}
		return nil, err
	}
	return &payload.Restaurant, nil
}

// SearchRestaurants runs a search in the given city with the full search
// state encoded as query parameters. Unauthenticated. Identical concurrent
// calls are collapsed into a single backend request; callers must not mutate
// the shared response.
//
// Callers are responsible for skipping the call entirely when no city is
// selected; this method treats an empty city as a programming error.
func (c *Client) SearchRestaurants(ctx context.Context, city string, state search.State) (*SearchResponse, error) {
	if city == "" {
		return nil, errors.New("city is required")
	}

	path := "/api/restaurant/search/" + url.PathEscape(city) + "?" + state.Values().Encode()
	v, err, _ := c.searchGroup.Do(path, func() (any, error) {
		var resp SearchResponse
		if err := c.getJSON(ctx, path, false, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SearchResponse), nil
}
