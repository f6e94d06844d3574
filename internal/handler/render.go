package handler

import (
	"embed"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer adapts html/template to Echo's Renderer interface.  All
// page templates are parsed once at startup; a missing template is a
// programming error and surfaces as a 500.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every embedded page template.
func NewRenderer() *Renderer {
	return &Renderer{templates: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// page assembles the common template data: title, the current role for
// the navigation bar, and any one-shot notice carried in the query
// string from a redirect.
func page(c echo.Context, title string, data echo.Map) echo.Map {
	m := echo.Map{
		"Title": title,
		"Msg":   c.QueryParam("msg"),
		"Err":   c.QueryParam("err"),
		"Role":  "",
	}
	if sess, ok := middleware.CurrentSession(c); ok {
		m["Role"] = sess.Role
	}
	for k, v := range data {
		m[k] = v
	}
	return m
}

// redirectMsg redirects to path carrying a success notice.
func redirectMsg(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+querySep(path)+"msg="+url.QueryEscape(msg))
}

// redirectErr redirects to path carrying an error notice.
func redirectErr(c echo.Context, path, errMsg string) error {
	return c.Redirect(http.StatusSeeOther, path+querySep(path)+"err="+url.QueryEscape(errMsg))
}

func querySep(path string) string {
	if strings.Contains(path, "?") {
		return "&"
	}
	return "?"
}
