package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
)

// AdminRestaurantHandler serves restaurant management: the listing,
// creation and editing of restaurants, and each restaurant's tables
// and opening hours.
type AdminRestaurantHandler struct {
	deps
}

// NewAdminRestaurantHandler constructs an AdminRestaurantHandler.
func NewAdminRestaurantHandler(cfg config.Config, apiClient *api.Client, store session.Store) *AdminRestaurantHandler {
	return &AdminRestaurantHandler{deps{Cfg: cfg, API: apiClient, Sessions: store}}
}

// Restaurants renders the management listing.
func (h *AdminRestaurantHandler) Restaurants(c echo.Context) error {
	restaurants, err := h.apiFor(c).ListRestaurants(c.Request().Context())
	if err != nil {
		return h.fail(c, "/admin", err)
	}
	return c.Render(http.StatusOK, "admin_restaurants", page(c, "Manage restaurants", echo.Map{
		"Restaurants": restaurants,
	}))
}

// NewRestaurant renders the creation form.
func (h *AdminRestaurantHandler) NewRestaurant(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_restaurant_form", page(c, "New restaurant", echo.Map{
		"Action": "/admin/restaurants/new",
	}))
}

// CreateRestaurant submits the creation form.
func (h *AdminRestaurantHandler) CreateRestaurant(c echo.Context) error {
	draft := model.RestaurantDraft{
		Name:           strings.TrimSpace(c.FormValue("name")),
		Description:    strings.TrimSpace(c.FormValue("description")),
		RestaurantType: strings.TrimSpace(c.FormValue("restaurant_type")),
		PhoneNumber:    strings.TrimSpace(c.FormValue("phone_number")),
		Address:        strings.TrimSpace(c.FormValue("address")),
	}
	if fields := invalidFields(draft); fields != nil {
		return redirectErr(c, "/admin/restaurants/new", "please fill in: "+strings.Join(fields, ", "))
	}
	if _, err := h.apiFor(c).CreateRestaurant(c.Request().Context(), draft); err != nil {
		return h.fail(c, "/admin/restaurants/new", err)
	}
	return redirectMsg(c, "/admin/restaurants", "restaurant created")
}

// EditRestaurant renders the edit form pre-filled from the listing.
func (h *AdminRestaurantHandler) EditRestaurant(c echo.Context) error {
	restaurant, err := h.oneRestaurant(c)
	if err != nil {
		return h.fail(c, "/admin/restaurants", err)
	}
	return c.Render(http.StatusOK, "admin_restaurant_form", page(c, "Edit restaurant", echo.Map{
		"Restaurant": restaurant,
		"Action":     "/admin/restaurants/" + strconv.FormatInt(restaurant.ID, 10) + "/edit",
	}))
}

// UpdateRestaurant sends only the fields that differ from the stored
// record; an untouched form skips the network call.
func (h *AdminRestaurantHandler) UpdateRestaurant(c echo.Context) error {
	restaurant, err := h.oneRestaurant(c)
	if err != nil {
		return h.fail(c, "/admin/restaurants", err)
	}
	patch := model.RestaurantPatch{}
	for form, current := range map[string]string{
		"name":            restaurant.Name,
		"description":     restaurant.Description,
		"restaurant_type": restaurant.RestaurantType,
		"phone_number":    restaurant.PhoneNumber,
		"address":         restaurant.Address,
	} {
		if v := strings.TrimSpace(c.FormValue(form)); v != "" && v != current {
			patch[form] = v
		}
	}
	if len(patch) == 0 {
		return redirectMsg(c, "/admin/restaurants", "nothing to update")
	}
	if _, err := h.apiFor(c).UpdateRestaurant(c.Request().Context(), restaurant.ID, patch); err != nil {
		return h.fail(c, "/admin/restaurants", err)
	}
	return redirectMsg(c, "/admin/restaurants", "restaurant updated")
}

// Tables renders one restaurant's tables with the add-table form.
func (h *AdminRestaurantHandler) Tables(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/restaurants", "invalid restaurant")
	}
	tables, err := h.apiFor(c).ListTables(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "/admin/restaurants", err)
	}
	return c.Render(http.StatusOK, "admin_tables", page(c, "Manage tables", echo.Map{
		"RestaurantID": id,
		"Tables":       tables,
	}))
}

// CreateTable adds a table to one restaurant.
func (h *AdminRestaurantHandler) CreateTable(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/restaurants", "invalid restaurant")
	}
	backTo := "/admin/restaurants/" + strconv.FormatInt(id, 10) + "/tables"
	draft := model.TableDraft{
		RestaurantID: id,
		Number:       formInt(c, "number"),
		Capacity:     formInt(c, "capacity"),
	}
	if fields := invalidFields(draft); fields != nil {
		return redirectErr(c, backTo, "please fill in: "+strings.Join(fields, ", "))
	}
	if _, err := h.apiFor(c).CreateTable(c.Request().Context(), draft); err != nil {
		return h.fail(c, backTo, err)
	}
	return redirectMsg(c, backTo, "table added")
}

// UpdateTable changes a table's number or capacity.
func (h *AdminRestaurantHandler) UpdateTable(c echo.Context) error {
	restaurantID := pathID(c, "id")
	tableID := pathID(c, "tableID")
	if restaurantID == 0 || tableID == 0 {
		return redirectErr(c, "/admin/restaurants", "invalid table")
	}
	backTo := "/admin/restaurants/" + strconv.FormatInt(restaurantID, 10) + "/tables"
	patch := model.TablePatch{}
	if n := formInt(c, "number"); n > 0 {
		patch["number"] = n
	}
	if n := formInt(c, "capacity"); n > 0 {
		patch["capacity"] = n
	}
	if len(patch) == 0 {
		return redirectMsg(c, backTo, "nothing to update")
	}
	if _, err := h.apiFor(c).UpdateTable(c.Request().Context(), tableID, patch); err != nil {
		return h.fail(c, backTo, err)
	}
	return redirectMsg(c, backTo, "table updated")
}

// Schedules renders one restaurant's opening hours with the add form.
func (h *AdminRestaurantHandler) Schedules(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/restaurants", "invalid restaurant")
	}
	schedules, err := h.apiFor(c).ListSchedules(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "/admin/restaurants", err)
	}
	return c.Render(http.StatusOK, "admin_schedules", page(c, "Manage opening hours", echo.Map{
		"RestaurantID": id,
		"Schedules":    schedules,
	}))
}

// CreateSchedule adds one opening-hours row.
func (h *AdminRestaurantHandler) CreateSchedule(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/restaurants", "invalid restaurant")
	}
	backTo := "/admin/restaurants/" + strconv.FormatInt(id, 10) + "/schedules"
	draft := model.ScheduleDraft{
		RestaurantID: id,
		Day:          strings.TrimSpace(c.FormValue("day")),
		OpeningHour:  model.NormalizeClock(strings.TrimSpace(c.FormValue("opening_hour"))),
		ClosingHour:  model.NormalizeClock(strings.TrimSpace(c.FormValue("closing_hour"))),
	}
	if fields := invalidFields(draft); fields != nil {
		return redirectErr(c, backTo, "please fill in: "+strings.Join(fields, ", "))
	}
	if _, err := h.apiFor(c).CreateSchedule(c.Request().Context(), draft); err != nil {
		return h.fail(c, backTo, err)
	}
	return redirectMsg(c, backTo, "opening hours added")
}

// DeleteSchedule removes one opening-hours row.
func (h *AdminRestaurantHandler) DeleteSchedule(c echo.Context) error {
	restaurantID := pathID(c, "id")
	scheduleID := pathID(c, "scheduleID")
	if restaurantID == 0 || scheduleID == 0 {
		return redirectErr(c, "/admin/restaurants", "invalid schedule")
	}
	backTo := "/admin/restaurants/" + strconv.FormatInt(restaurantID, 10) + "/schedules"
	if err := h.apiFor(c).DeleteSchedule(c.Request().Context(), scheduleID); err != nil {
		return h.fail(c, backTo, err)
	}
	return redirectMsg(c, backTo, "opening hours removed")
}

// oneRestaurant resolves the :id path parameter against the listing.
// The service has no single-restaurant read.
func (h *AdminRestaurantHandler) oneRestaurant(c echo.Context) (model.Restaurant, error) {
	id := pathID(c, "id")
	if id == 0 {
		return model.Restaurant{}, &api.Error{Status: http.StatusNotFound, Detail: "restaurant not found"}
	}
	restaurants, err := h.apiFor(c).ListRestaurants(c.Request().Context())
	if err != nil {
		return model.Restaurant{}, err
	}
	for _, r := range restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return model.Restaurant{}, &api.Error{Status: http.StatusNotFound, Detail: "restaurant not found"}
}
