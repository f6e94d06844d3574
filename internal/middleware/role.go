package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// current session holds one of the specified roles.  It assumes
// RequireSession already ran on the group.  A session with the wrong
// role is sent to its own home page rather than shown an error: the
// situation arises from typed-in URLs, not from in-app navigation.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if !ok || !allowed[sess.Role] {
				if ok && sess.Role == model.RoleAdmin {
					return c.Redirect(http.StatusSeeOther, "/admin")
				}
				return c.Redirect(http.StatusSeeOther, "/restaurants")
			}
			return next(c)
		}
	}
}
