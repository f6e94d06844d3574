package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// ListTables returns the tables of one restaurant.  A restaurant with
// no tables yields an empty slice, not an error.
func (c *Client) ListTables(ctx context.Context, restaurantID int64) ([]model.Table, error) {
	var out []model.Table
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/table/get_all/%d", restaurantID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTable adds a table to a restaurant (admin only).
func (c *Client) CreateTable(ctx context.Context, draft model.TableDraft) (model.Table, error) {
	var out model.Table
	err := c.do(ctx, http.MethodPost, "/table/create", draft, &out)
	return out, err
}

// UpdateTable sends a partial update for one table.
func (c *Client) UpdateTable(ctx context.Context, id int64, patch model.TablePatch) (model.Table, error) {
	var out model.Table
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/table/update/%d", id), patch, &out)
	return out, err
}
