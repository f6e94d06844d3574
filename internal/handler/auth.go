package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
	"github.com/iliyamo/restaurant-reservation-web/internal/utils"
)

// AuthHandler serves the two login forms and logout.  Successful login
// is the only place a session is created; logout and token expiry are
// the only places one is destroyed.  Token and role always travel into
// the store together.
type AuthHandler struct {
	deps
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg config.Config, apiClient *api.Client, store session.Store) *AuthHandler {
	return &AuthHandler{deps{Cfg: cfg, API: apiClient, Sessions: store}}
}

// ShowClientLogin renders the client login form.
func (h *AuthHandler) ShowClientLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login", page(c, "Log in", echo.Map{"Admin": false, "Action": "/login-client"}))
}

// ShowAdminLogin renders the admin login form.
func (h *AuthHandler) ShowAdminLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login", page(c, "Admin log in", echo.Map{"Admin": true, "Action": "/login-admin"}))
}

// ClientLogin exchanges the form credentials for an access token via
// POST /auth/login and opens a client session.
func (h *AuthHandler) ClientLogin(c echo.Context) error {
	return h.login(c, model.RoleClient)
}

// AdminLogin is ClientLogin against the admin endpoint; the service
// itself rejects non-admin accounts.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, model.RoleAdmin)
}

func (h *AuthHandler) login(c echo.Context, role string) error {
	backTo := "/login-client"
	if role == model.RoleAdmin {
		backTo = "/login-admin"
	}
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		return redirectErr(c, backTo, "email and password are required")
	}

	ctx := c.Request().Context()
	var (
		res api.LoginResult
		err error
	)
	if role == model.RoleAdmin {
		res, err = h.API.AdminLogin(ctx, email, password)
	} else {
		res, err = h.API.Login(ctx, email, password)
	}
	if err != nil {
		if apiErr, ok := api.AsError(err); ok {
			return redirectErr(c, backTo, apiErr.Detail)
		}
		return redirectErr(c, backTo, err.Error())
	}

	// The login response does not carry the role; it is implied by the
	// endpoint.  When the token's claims decode, the embedded role must
	// agree; a mismatch means the service and front end disagree about
	// the account and the session must not be created.
	if claims, cerr := utils.ParseAccessClaims(res.AccessToken); cerr == nil && claims.Role != "" && claims.Role != role {
		return redirectErr(c, backTo, "account role does not match this login")
	}

	id, err := h.Sessions.Create(ctx, model.Session{Token: res.AccessToken, Role: role})
	if err != nil {
		return redirectErr(c, backTo, "could not open session")
	}
	h.setSessionCookie(c, id)

	if role == model.RoleAdmin {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return c.Redirect(http.StatusSeeOther, "/restaurants")
}

// Logout destroys the session and clears the cookie.  The route is
// reachable without the session middleware, so the session is resolved
// from the cookie directly; the redirect target depends on the role so
// the user lands on the right login form.
func (h *AuthHandler) Logout(c echo.Context) error {
	login := "/login-client"
	if cookie, err := c.Cookie(h.Cfg.CookieName); err == nil && cookie.Value != "" {
		ctx := c.Request().Context()
		if sess, err := h.Sessions.Get(ctx, cookie.Value); err == nil && sess.IsAdmin() {
			login = "/login-admin"
		}
		_ = h.Sessions.Delete(ctx, cookie.Value)
	}
	h.clearSessionCookie(c)
	return redirectMsg(c, login, "logged out")
}
