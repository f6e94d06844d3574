package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// ListRestaurants returns every restaurant known to the service.  An
// empty slice is a valid, displayable result.
func (c *Client) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	var out []model.Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurant/get_all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRestaurant registers a new restaurant (admin only).
func (c *Client) CreateRestaurant(ctx context.Context, draft model.RestaurantDraft) (model.Restaurant, error) {
	var out model.Restaurant
	err := c.do(ctx, http.MethodPost, "/restaurant/create", draft, &out)
	return out, err
}

// UpdateRestaurant sends a partial update for one restaurant.
func (c *Client) UpdateRestaurant(ctx context.Context, id int64, patch model.RestaurantPatch) (model.Restaurant, error) {
	var out model.Restaurant
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/restaurant/update/%d", id), patch, &out)
	return out, err
}
