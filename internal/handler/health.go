package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe.  It deliberately touches neither the
// session store nor the remote reservation service: it answers "is
// this process serving" and nothing more.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
