package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
	"github.com/iliyamo/restaurant-reservation-web/internal/workflow"
)

// AdminBookingHandler serves the administrator's reservation screens:
// every booking across users, filtering by customer email, and editing
// or deleting any booking.
type AdminBookingHandler struct {
	deps
}

// NewAdminBookingHandler constructs an AdminBookingHandler.
func NewAdminBookingHandler(cfg config.Config, apiClient *api.Client, store session.Store, flows *workflow.Registry) *AdminBookingHandler {
	return &AdminBookingHandler{deps{Cfg: cfg, API: apiClient, Sessions: store, Flows: flows}}
}

// Dashboard renders the admin landing page linking to each management
// area.
func (h *AdminBookingHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_home", page(c, "Administration", echo.Map{}))
}

// Bookings renders the all-bookings table, optionally filtered by the
// email query parameter.  Each row carries the customer summary the
// service embeds.
func (h *AdminBookingHandler) Bookings(c echo.Context) error {
	ctx := c.Request().Context()
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))

	var (
		bookings []model.Booking
		err      error
	)
	if email != "" {
		bookings, err = h.apiFor(c).BookingsByEmail(ctx, email)
	} else {
		bookings, err = h.apiFor(c).AllBookings(ctx)
	}
	if err != nil {
		return h.fail(c, "/admin/bookings", err)
	}
	return c.Render(http.StatusOK, "admin_bookings", page(c, "All bookings", echo.Map{
		"Bookings": bookings,
		"Email":    email,
	}))
}

// EditBooking renders the edit form for any booking.
func (h *AdminBookingHandler) EditBooking(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/bookings", "invalid booking")
	}
	booking, err := h.anyBooking(c, id)
	if err != nil {
		return h.fail(c, "/admin/bookings", err)
	}
	return c.Render(http.StatusOK, "edit_booking", page(c, "Edit booking", echo.Map{
		"Booking": booking,
		"Action":  "/admin/bookings/" + strconv.FormatInt(id, 10) + "/edit",
		"BackTo":  "/admin/bookings",
	}))
}

// UpdateBooking applies the admin's edit as a minimal partial update.
func (h *AdminBookingHandler) UpdateBooking(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/bookings", "invalid booking")
	}
	formPath := "/admin/bookings/" + strconv.FormatInt(id, 10) + "/edit"

	original, err := h.anyBooking(c, id)
	if err != nil {
		return h.fail(c, "/admin/bookings", err)
	}
	draft := editedDraft(c, original)

	key := flowKey(c, "edit", id)
	w := h.Flows.Acquire(key, h.apiFor(c))
	defer h.Flows.Release(key)

	if _, err := w.SubmitEdit(c.Request().Context(), original, draft); err != nil {
		switch {
		case errors.Is(err, workflow.ErrSubmissionInFlight):
			return redirectErr(c, "/admin/bookings", "this booking is already being updated")
		case errors.Is(err, workflow.ErrNothingChanged):
			return redirectMsg(c, "/admin/bookings", "nothing to update")
		case workflow.IsValidation(err):
			return redirectErr(c, formPath, "please complete all fields; the start time must be before the end time")
		case api.IsUnauthorized(err):
			return h.expireSession(c)
		default:
			return redirectErr(c, formPath, w.Failure())
		}
	}
	return redirectMsg(c, "/admin/bookings", "booking updated")
}

// DeleteBooking removes any booking after explicit confirmation.
func (h *AdminBookingHandler) DeleteBooking(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/bookings", "invalid booking")
	}
	confirmed := c.FormValue("confirm") == "yes"

	key := flowKey(c, "delete", id)
	w := h.Flows.Acquire(key, h.apiFor(c))
	defer h.Flows.Release(key)

	if err := w.SubmitDelete(c.Request().Context(), id, confirmed); err != nil {
		if errors.Is(err, workflow.ErrConfirmationRequired) {
			return redirectErr(c, "/admin/bookings", "tick the confirmation box to delete this booking")
		}
		if errors.Is(err, workflow.ErrSubmissionInFlight) {
			return redirectErr(c, "/admin/bookings", "this booking is already being deleted")
		}
		if api.IsUnauthorized(err) {
			return h.expireSession(c)
		}
		return redirectErr(c, "/admin/bookings", w.Failure())
	}
	return redirectMsg(c, "/admin/bookings", "booking deleted")
}

// anyBooking fetches the full listing and picks out one booking.  The
// service has no single-booking read, so the listing doubles as the
// lookup.
func (h *AdminBookingHandler) anyBooking(c echo.Context, id int64) (model.Booking, error) {
	bookings, err := h.apiFor(c).AllBookings(c.Request().Context())
	if err != nil {
		return model.Booking{}, err
	}
	for _, b := range bookings {
		if b.BookingID == id {
			return b, nil
		}
	}
	return model.Booking{}, &api.Error{Status: http.StatusNotFound, Detail: "booking not found"}
}
