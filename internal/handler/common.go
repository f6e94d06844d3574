package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/middleware"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
	"github.com/iliyamo/restaurant-reservation-web/internal/workflow"
)

// deps bundles what every page handler needs: configuration, the
// gateway to the remote reservation service, the session store, and the
// registry that lets concurrent requests share one workflow per
// session and subject.
type deps struct {
	Cfg      config.Config
	API      *api.Client
	Sessions session.Store
	Flows    *workflow.Registry
}

// apiFor returns the gateway bound to the current session's token.  On
// routes behind RequireSession a session is always present; elsewhere
// the unauthenticated client is returned (login only).
func (d *deps) apiFor(c echo.Context) *api.Client {
	if sess, ok := middleware.CurrentSession(c); ok {
		return d.API.WithSession(sess)
	}
	return d.API
}

// fail surfaces a gateway failure on the page at backTo.  The service's
// detail string travels verbatim.  A 401 means the token was rejected:
// leaving the user in an authenticated-looking state with a dead token
// would break every subsequent page, so the session is cleared and the
// user returns to the login form for their role.
func (d *deps) fail(c echo.Context, backTo string, err error) error {
	if api.IsUnauthorized(err) {
		return d.expireSession(c)
	}
	if apiErr, ok := api.AsError(err); ok {
		return redirectErr(c, backTo, apiErr.Detail)
	}
	return redirectErr(c, backTo, err.Error())
}

// expireSession destroys the current session and redirects to the
// role-appropriate login form.
func (d *deps) expireSession(c echo.Context) error {
	if id := middleware.SessionID(c); id != "" {
		_ = d.Sessions.Delete(c.Request().Context(), id)
	}
	d.clearSessionCookie(c)
	login := "/login-client"
	if sess, ok := middleware.CurrentSession(c); ok && sess.Role == model.RoleAdmin {
		login = "/login-admin"
	}
	return redirectErr(c, login, "your session has expired, please log in again")
}

func (d *deps) setSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     d.Cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   d.Cfg.SessionTTLMin * 60,
		HttpOnly: true,
		Secure:   d.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (d *deps) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     d.Cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   d.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// flowKey names the workflow shared by all requests from one session
// acting on one subject, e.g. creating a reservation at restaurant 5 or
// deleting booking 7.  A double-clicked confirm button produces two
// requests with the same key, so both resolve to the same workflow and
// the second is refused while the first is submitting.
func flowKey(c echo.Context, action string, id int64) string {
	return middleware.SessionID(c) + ":" + action + ":" + strconv.FormatInt(id, 10)
}

// formValidator enforces the validate tags on admin create drafts, with
// wire names in failure reports so notices read like the forms.
var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// invalidFields returns the wire names of the draft fields that fail
// their validate tags, or nil when the draft may go to the network.
func invalidFields(draft any) []string {
	err := formValidator.Struct(draft)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"form"}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// pathID parses a numeric path parameter; 0 means invalid.
func pathID(c echo.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// formInt parses a numeric form value, returning 0 when absent or bad.
func formInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return 0
	}
	return n
}
