package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// CreateBooking submits a complete reservation draft.  The service
// performs the conflict and opening-hours checks; any rejection comes
// back as *Error with the reason in Detail.
func (c *Client) CreateBooking(ctx context.Context, draft model.BookingDraft) (model.Booking, error) {
	var out model.Booking
	err := c.do(ctx, http.MethodPost, "/booking/create", draft, &out)
	return out, err
}

// MyBookings returns the current user's reservations.
func (c *Client) MyBookings(ctx context.Context) ([]model.Booking, error) {
	var out []model.Booking
	if err := c.do(ctx, http.MethodGet, "/booking/get/my_bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllBookings returns every reservation with the embedded user summary
// (admin only).
func (c *Client) AllBookings(ctx context.Context) ([]model.Booking, error) {
	var out []model.Booking
	if err := c.do(ctx, http.MethodGet, "/booking/get_all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingsByEmail returns the reservations of the user with the given
// email (admin only).
func (c *Client) BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	var out []model.Booking
	if err := c.do(ctx, http.MethodGet, "/booking/get_by_email/"+url.PathEscape(email), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateBooking sends a minimal partial update for one reservation.
// Callers must not invoke it with an empty patch; the workflow treats
// that as a no-op before reaching the gateway.
func (c *Client) UpdateBooking(ctx context.Context, bookingID int64, patch model.BookingPatch) (model.Booking, error) {
	var out model.Booking
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/booking/update/%d", bookingID), patch, &out)
	return out, err
}

// DeleteBooking removes one reservation.  The service enforces that the
// caller owns the booking or holds the admin role.
func (c *Client) DeleteBooking(ctx context.Context, bookingID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/booking/delete/admin/%d", bookingID), nil, nil)
}
