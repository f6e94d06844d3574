package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
	"github.com/iliyamo/restaurant-reservation-web/internal/workflow"
)

// ReservationHandler serves the client-facing reservation screens: the
// restaurant listing, a restaurant's opening hours, and the admission
// workflow for creating a reservation.  Each request drives a fresh
// workflow instance; the remote service is the source of truth between
// requests.
type ReservationHandler struct {
	deps
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(cfg config.Config, apiClient *api.Client, store session.Store, flows *workflow.Registry) *ReservationHandler {
	return &ReservationHandler{deps{Cfg: cfg, API: apiClient, Sessions: store, Flows: flows}}
}

// Restaurants renders the make-a-reservation listing.  An empty list is
// a displayable state, not an error.
func (h *ReservationHandler) Restaurants(c echo.Context) error {
	restaurants, err := h.apiFor(c).ListRestaurants(c.Request().Context())
	if err != nil {
		return h.fail(c, "/restaurants", err)
	}
	return c.Render(http.StatusOK, "restaurants", page(c, "Make a reservation", echo.Map{
		"Restaurants": restaurants,
	}))
}

// Schedule renders the opening hours of one restaurant.
func (h *ReservationHandler) Schedule(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/restaurants", "invalid restaurant")
	}
	schedules, err := h.apiFor(c).ListSchedules(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "/restaurants", err)
	}
	return c.Render(http.StatusOK, "schedule", page(c, "Opening hours", echo.Map{
		"RestaurantID": id,
		"Schedules":    schedules,
	}))
}

// NewReservation renders the reservation form for one restaurant with
// its candidate tables.
func (h *ReservationHandler) NewReservation(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/restaurants", "invalid restaurant")
	}
	w := workflow.New(h.apiFor(c))
	tables, err := w.LoadAvailableTables(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "/restaurants", err)
	}
	return c.Render(http.StatusOK, "reserve", page(c, "Reserve a table", echo.Map{
		"RestaurantID": id,
		"Tables":       tables,
		"Date":         c.QueryParam("date"),
		"StartTime":    c.QueryParam("start_time"),
		"EndTime":      c.QueryParam("end_time"),
		"People":       c.QueryParam("number_of_people"),
	}))
}

// CreateReservation runs the admission workflow for the posted form:
// load the candidate set, select the chosen table, collect the fields
// and submit.  The workflow is shared through the registry, so the
// second request of a double-clicked confirm button hits the Submitting
// guard and only one booking reaches the service.  Validation failures
// and service rejections land back on the form with the reason; the
// entered values are carried through the redirect so the user corrects
// rather than retypes.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/restaurants", "invalid restaurant")
	}
	formPath := "/restaurants/" + strconv.FormatInt(id, 10) + "/reserve"
	ctx := c.Request().Context()

	key := flowKey(c, "create", id)
	w := h.Flows.Acquire(key, h.apiFor(c))
	defer h.Flows.Release(key)

	if _, err := w.LoadAvailableTables(ctx, id); err != nil {
		if errors.Is(err, workflow.ErrSubmissionInFlight) {
			return redirectErr(c, "/my-bookings", "your reservation is already being processed")
		}
		return h.fail(c, formPath, err)
	}
	tableID, _ := strconv.ParseInt(c.FormValue("table_id"), 10, 64)
	if err := w.SelectTable(tableID); err != nil {
		return redirectErr(c, formPath, "please select one of the listed tables")
	}
	for _, name := range []string{"date", "start_time", "end_time", "number_of_people"} {
		if err := w.SetField(name, c.FormValue(name)); err != nil {
			return redirectErr(c, formPath, "invalid form field")
		}
	}

	if _, err := w.SubmitCreate(ctx); err != nil {
		switch {
		case errors.Is(err, workflow.ErrSubmissionInFlight), errors.Is(err, workflow.ErrWrongState):
			return redirectErr(c, "/my-bookings", "your reservation is already being processed")
		case workflow.IsValidation(err):
			return redirectErr(c, formPath+carryDraft(c), "please complete all fields; the start time must be before the end time")
		case api.IsUnauthorized(err):
			return h.expireSession(c)
		default:
			return redirectErr(c, formPath+carryDraft(c), w.Failure())
		}
	}
	return redirectMsg(c, "/my-bookings", "reservation confirmed")
}

// carryDraft re-encodes the submitted fields as query parameters so a
// failed submission does not lose the user's input.
func carryDraft(c echo.Context) string {
	q := url.Values{}
	for _, name := range []string{"date", "start_time", "end_time", "number_of_people"} {
		if v := c.FormValue(name); v != "" {
			q.Set(name, v)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
