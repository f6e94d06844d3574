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

// AdminUserHandler serves account management: listing, creating,
// editing and deleting user accounts.
type AdminUserHandler struct {
	deps
}

// NewAdminUserHandler constructs an AdminUserHandler.
func NewAdminUserHandler(cfg config.Config, apiClient *api.Client, store session.Store) *AdminUserHandler {
	return &AdminUserHandler{deps{Cfg: cfg, API: apiClient, Sessions: store}}
}

// Users renders the account listing.
func (h *AdminUserHandler) Users(c echo.Context) error {
	users, err := h.apiFor(c).ListUsers(c.Request().Context())
	if err != nil {
		return h.fail(c, "/admin", err)
	}
	return c.Render(http.StatusOK, "admin_users", page(c, "Manage users", echo.Map{
		"Users": users,
	}))
}

// NewUser renders the account creation form.
func (h *AdminUserHandler) NewUser(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_user_form", page(c, "New user", echo.Map{
		"Action": "/admin/users/new",
	}))
}

// CreateUser submits the creation form.  The password travels to the
// service as entered; hashing happens there.
func (h *AdminUserHandler) CreateUser(c echo.Context) error {
	draft := model.UserDraft{
		FirstName: strings.TrimSpace(c.FormValue("first_name")),
		LastName:  strings.TrimSpace(c.FormValue("last_name")),
		Email:     strings.ToLower(strings.TrimSpace(c.FormValue("email"))),
		Password:  c.FormValue("password"),
		Role:      c.FormValue("role"),
	}
	if fields := invalidFields(draft); fields != nil {
		return redirectErr(c, "/admin/users/new", "please fill in: "+strings.Join(fields, ", "))
	}
	if _, err := h.apiFor(c).CreateUser(c.Request().Context(), draft); err != nil {
		return h.fail(c, "/admin/users/new", err)
	}
	return redirectMsg(c, "/admin/users", "user created")
}

// EditUser renders the edit form for one account.
func (h *AdminUserHandler) EditUser(c echo.Context) error {
	user, err := h.oneUser(c)
	if err != nil {
		return h.fail(c, "/admin/users", err)
	}
	return c.Render(http.StatusOK, "admin_user_form", page(c, "Edit user", echo.Map{
		"User":   user,
		"Action": "/admin/users/" + strconv.FormatInt(user.ID, 10) + "/edit",
	}))
}

// UpdateUser sends only the changed fields for one account.
func (h *AdminUserHandler) UpdateUser(c echo.Context) error {
	user, err := h.oneUser(c)
	if err != nil {
		return h.fail(c, "/admin/users", err)
	}
	patch := model.UserPatch{}
	if v := strings.TrimSpace(c.FormValue("first_name")); v != "" && v != user.FirstName {
		patch["first_name"] = v
	}
	if v := strings.TrimSpace(c.FormValue("last_name")); v != "" && v != user.LastName {
		patch["last_name"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(c.FormValue("email"))); v != "" && v != user.Email {
		patch["email"] = v
	}
	if v := c.FormValue("role"); v != "" && v != user.Role {
		patch["role"] = v
	}
	if v := c.FormValue("password"); v != "" {
		patch["password"] = v
	}
	if len(patch) == 0 {
		return redirectMsg(c, "/admin/users", "nothing to update")
	}
	if _, err := h.apiFor(c).UpdateUser(c.Request().Context(), user.ID, patch); err != nil {
		return h.fail(c, "/admin/users", err)
	}
	return redirectMsg(c, "/admin/users", "user updated")
}

// DeleteUser removes one account after explicit confirmation.
func (h *AdminUserHandler) DeleteUser(c echo.Context) error {
	id := pathID(c, "id")
	if id == 0 {
		return redirectErr(c, "/admin/users", "invalid user")
	}
	if c.FormValue("confirm") != "yes" {
		return redirectErr(c, "/admin/users", "tick the confirmation box to delete this user")
	}
	if err := h.apiFor(c).DeleteUser(c.Request().Context(), id); err != nil {
		return h.fail(c, "/admin/users", err)
	}
	return redirectMsg(c, "/admin/users", "user deleted")
}

// oneUser resolves the :id path parameter against the listing.
func (h *AdminUserHandler) oneUser(c echo.Context) (model.User, error) {
	id := pathID(c, "id")
	if id == 0 {
		return model.User{}, &api.Error{Status: http.StatusNotFound, Detail: "user not found"}
	}
	users, err := h.apiFor(c).ListUsers(c.Request().Context())
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, &api.Error{Status: http.StatusNotFound, Detail: "user not found"}
}
