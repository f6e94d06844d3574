package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
)

// Context keys under which the resolved session and its id are stored.
// Handlers read them via CurrentSession and SessionID.
const (
	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// RequireSession returns middleware that resolves the session cookie
// against the store and injects the session into the request context.
// A request without a valid session is redirected to loginPath, the
// login form for the role the route group belongs to.  Session mutation
// only ever happens on discrete login/logout actions, so this
// middleware is read-only.
func RequireSession(store session.Store, cookieName, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					return c.Redirect(http.StatusSeeOther, loginPath)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "session lookup failed")
			}
			c.Set(sessionKey, sess)
			c.Set(sessionIDKey, cookie.Value)
			return next(c)
		}
	}
}

// CurrentSession returns the session injected by RequireSession.  The
// boolean is false on routes that did not pass through it.
func CurrentSession(c echo.Context) (model.Session, bool) {
	sess, ok := c.Get(sessionKey).(model.Session)
	return sess, ok
}

// SessionID returns the cookie id of the current session, or "".
func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}
