package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// MyInfo returns the profile of the authenticated user.
func (c *Client) MyInfo(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/users/get/my_info", nil, &out)
	return out, err
}

// ListUsers returns every account (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, "/users/get_all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser registers an account (admin only).
func (c *Client) CreateUser(ctx context.Context, draft model.UserDraft) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPost, "/users/create", draft, &out)
	return out, err
}

// UpdateMyProfile patches the authenticated user's own profile.
func (c *Client) UpdateMyProfile(ctx context.Context, patch model.UserPatch) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPatch, "/users/update/my_profile", patch, &out)
	return out, err
}

// UpdateUser patches any account (admin only).
func (c *Client) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/update/user/%d", id), patch, &out)
	return out, err
}

// DeleteUser removes an account (admin only).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/delete/user/%d", id), nil, nil)
}
