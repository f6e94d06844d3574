package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
)

const testCookie = "reservation_session"

func newEcho(store session.Store, roles ...string) *echo.Echo {
	e := echo.New()
	mw := []echo.MiddlewareFunc{RequireSession(store, testCookie, "/login-client")}
	if len(roles) > 0 {
		mw = append(mw, RequireRole(roles...))
	}
	e.GET("/protected", func(c echo.Context) error {
		sess, _ := CurrentSession(c)
		return c.String(http.StatusOK, sess.Role)
	}, mw...)
	return e
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	e := newEcho(session.NewMemoryStore(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/login-client" {
		t.Errorf("Location = %q, want /login-client", got)
	}
}

func TestRequireSessionRedirectsOnUnknownID(t *testing.T) {
	e := newEcho(session.NewMemoryStore(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "no-such-session"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestRequireSessionInjectsSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	id, err := store.Create(context.Background(), model.Session{Token: "tok", Role: model.RoleClient})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	e := newEcho(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); got != model.RoleClient {
		t.Errorf("role in context = %q, want %q", got, model.RoleClient)
	}
}

func TestRequireRoleBouncesWrongRole(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	id, err := store.Create(context.Background(), model.Session{Token: "tok", Role: model.RoleClient})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	e := newEcho(store, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestRequireRoleAdmitsListedRole(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	id, err := store.Create(context.Background(), model.Session{Token: "tok", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	e := newEcho(store, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
