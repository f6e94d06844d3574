package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// ListSchedules returns the opening hours of one restaurant.
func (c *Client) ListSchedules(ctx context.Context, restaurantID int64) ([]model.Schedule, error) {
	var out []model.Schedule
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schedule/get/%d", restaurantID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSchedule adds an opening-hours row (admin only).
func (c *Client) CreateSchedule(ctx context.Context, draft model.ScheduleDraft) (model.Schedule, error) {
	var out model.Schedule
	err := c.do(ctx, http.MethodPost, "/schedule/create", draft, &out)
	return out, err
}

// DeleteSchedule removes an opening-hours row (admin only).
func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/schedule/delete/%d", id), nil, nil)
}
