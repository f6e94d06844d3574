package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
)

// ProfileHandler serves the current user's account page.
type ProfileHandler struct {
	deps
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(cfg config.Config, apiClient *api.Client, store session.Store) *ProfileHandler {
	return &ProfileHandler{deps{Cfg: cfg, API: apiClient, Sessions: store}}
}

// MyProfile renders the account form pre-filled from the service.
func (h *ProfileHandler) MyProfile(c echo.Context) error {
	user, err := h.apiFor(c).MyInfo(c.Request().Context())
	if err != nil {
		return h.fail(c, "/my-profile", err)
	}
	return c.Render(http.StatusOK, "profile", page(c, "My profile", echo.Map{
		"User": user,
	}))
}

// UpdateMyProfile sends only the fields the user actually changed.  The
// password field is included only when filled in; submitting the form
// untouched skips the network call entirely.
func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	current, err := h.apiFor(c).MyInfo(c.Request().Context())
	if err != nil {
		return h.fail(c, "/my-profile", err)
	}
	patch := profilePatch(c, current)
	if len(patch) == 0 {
		return redirectMsg(c, "/my-profile", "nothing to update")
	}
	if _, err := h.apiFor(c).UpdateMyProfile(c.Request().Context(), patch); err != nil {
		return h.fail(c, "/my-profile", err)
	}
	return redirectMsg(c, "/my-profile", "profile updated")
}

// profilePatch compares the submitted form against the stored record
// and keeps only what changed.
func profilePatch(c echo.Context, current model.User) model.UserPatch {
	patch := model.UserPatch{}
	if v := strings.TrimSpace(c.FormValue("first_name")); v != "" && v != current.FirstName {
		patch["first_name"] = v
	}
	if v := strings.TrimSpace(c.FormValue("last_name")); v != "" && v != current.LastName {
		patch["last_name"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(c.FormValue("email"))); v != "" && v != current.Email {
		patch["email"] = v
	}
	if v := c.FormValue("password"); v != "" {
		patch["password"] = v
	}
	return patch
}
