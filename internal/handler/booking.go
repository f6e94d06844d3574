package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
	"github.com/iliyamo/restaurant-reservation-web/internal/workflow"
)

// BookingHandler serves the client's own reservations: the listing,
// the edit form with its minimal-diff submission, and confirmed
// deletion.
type BookingHandler struct {
	deps
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(cfg config.Config, apiClient *api.Client, store session.Store, flows *workflow.Registry) *BookingHandler {
	return &BookingHandler{deps{Cfg: cfg, API: apiClient, Sessions: store, Flows: flows}}
}

// MyBookings renders the current user's reservations.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	bookings, err := h.apiFor(c).MyBookings(c.Request().Context())
	if err != nil {
		return h.fail(c, "/my-bookings", err)
	}
	return c.Render(http.StatusOK, "my_bookings", page(c, "My bookings", echo.Map{
		"Bookings": bookings,
	}))
}

// EditBooking renders the edit form pre-filled with the persisted
// record, re-fetched so the diff baseline is current.
func (h *BookingHandler) EditBooking(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/my-bookings", "invalid booking")
	}
	booking, err := h.ownBooking(c, id)
	if err != nil {
		return h.fail(c, "/my-bookings", err)
	}
	return c.Render(http.StatusOK, "edit_booking", page(c, "Edit booking", echo.Map{
		"Booking": booking,
		"Action":  "/my-bookings/" + strconv.FormatInt(id, 10) + "/edit",
	}))
}

// UpdateBooking diffs the submitted form against the persisted record
// and sends only the changed fields.  Submitting the form untouched is
// a no-op: the user lands back on the listing without a network call.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/my-bookings", "invalid booking")
	}
	formPath := "/my-bookings/" + strconv.FormatInt(id, 10) + "/edit"
	ctx := c.Request().Context()

	original, err := h.ownBooking(c, id)
	if err != nil {
		return h.fail(c, "/my-bookings", err)
	}
	draft := editedDraft(c, original)

	key := flowKey(c, "edit", id)
	w := h.Flows.Acquire(key, h.apiFor(c))
	defer h.Flows.Release(key)

	if _, err := w.SubmitEdit(ctx, original, draft); err != nil {
		switch {
		case errors.Is(err, workflow.ErrSubmissionInFlight):
			return redirectErr(c, "/my-bookings", "this booking is already being updated")
		case errors.Is(err, workflow.ErrNothingChanged):
			return redirectMsg(c, "/my-bookings", "nothing to update")
		case workflow.IsValidation(err):
			return redirectErr(c, formPath, "please complete all fields; the start time must be before the end time")
		case api.IsUnauthorized(err):
			return h.expireSession(c)
		default:
			return redirectErr(c, formPath, w.Failure())
		}
	}
	return redirectMsg(c, "/my-bookings", "booking updated")
}

// DeleteBooking removes one reservation after an explicit confirmation
// checkbox.  Without it the listing re-renders with a prompt and the
// reservation stays; the same holds when the service rejects the
// deletion.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/my-bookings", "invalid booking")
	}
	confirmed := c.FormValue("confirm") == "yes"

	key := flowKey(c, "delete", id)
	w := h.Flows.Acquire(key, h.apiFor(c))
	defer h.Flows.Release(key)

	if err := w.SubmitDelete(c.Request().Context(), id, confirmed); err != nil {
		if errors.Is(err, workflow.ErrConfirmationRequired) {
			return redirectErr(c, "/my-bookings", "tick the confirmation box to cancel this booking")
		}
		if errors.Is(err, workflow.ErrSubmissionInFlight) {
			return redirectErr(c, "/my-bookings", "this booking is already being cancelled")
		}
		if api.IsUnauthorized(err) {
			return h.expireSession(c)
		}
		return redirectErr(c, "/my-bookings", w.Failure())
	}
	return redirectMsg(c, "/my-bookings", "booking cancelled")
}

// ownBooking fetches the caller's bookings and returns the one with
// the given id.  The service scopes the listing to the caller, so a
// miss means the booking is not theirs (or is gone).
func (h *BookingHandler) ownBooking(c echo.Context, id int64) (model.Booking, error) {
	bookings, err := h.apiFor(c).MyBookings(c.Request().Context())
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

// editedDraft overlays the posted form onto the persisted record.  A
// field left out of the form keeps its stored value, so partial forms
// never produce spurious diffs.
func editedDraft(c echo.Context, original model.Booking) model.BookingDraft {
	draft := original.Draft()
	if v := c.FormValue("table_id"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			draft.TableID = n
		}
	}
	if v := c.FormValue("date"); v != "" {
		draft.Date = v
	}
	if v := c.FormValue("start_time"); v != "" {
		draft.StartTime = v
	}
	if v := c.FormValue("end_time"); v != "" {
		draft.EndTime = v
	}
	if v := c.FormValue("number_of_people"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			draft.NumberOfPeople = n
		}
	}
	return draft
}
