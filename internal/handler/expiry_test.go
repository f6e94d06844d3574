package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/middleware"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
	"github.com/iliyamo/restaurant-reservation-web/internal/workflow"
)

func unauthorizedRemote(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "token expired"})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// A gateway 401 on a data page must destroy the session, clear the
// cookie and land on the login form for the session's role.
func TestGatewayUnauthorizedExpiresClientSession(t *testing.T) {
	srv := unauthorizedRemote(t)
	cfg := config.Config{CookieName: "reservation_session", SessionTTLMin: 30}
	store := session.NewMemoryStore(time.Hour)
	id, err := store.Create(context.Background(), model.Session{Token: "stale", Role: model.RoleClient})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	h := NewBookingHandler(cfg, api.New(srv.URL, 5*time.Second), store, workflow.NewRegistry())
	e := echo.New()
	e.GET("/my-bookings", h.MyBookings, middleware.RequireSession(store, cfg.CookieName, "/login-client"))

	req := httptest.NewRequest(http.MethodGet, "/my-bookings", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login-client?err=") {
		t.Errorf("Location = %q, want the client login form with a notice", loc)
	}
	if !strings.Contains(loc, "expired") {
		t.Errorf("Location = %q, want an expiry notice", loc)
	}

	if _, err := store.Get(context.Background(), id); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("session still in store after 401: err = %v, want ErrNoSession", err)
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cfg.CookieName && ck.Value == "" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared on 401")
	}
}

func TestGatewayUnauthorizedExpiresAdminSession(t *testing.T) {
	srv := unauthorizedRemote(t)
	cfg := config.Config{CookieName: "reservation_session", SessionTTLMin: 30}
	store := session.NewMemoryStore(time.Hour)
	id, err := store.Create(context.Background(), model.Session{Token: "stale", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	h := NewAdminBookingHandler(cfg, api.New(srv.URL, 5*time.Second), store, workflow.NewRegistry())
	e := echo.New()
	e.GET("/admin/bookings", h.Bookings,
		middleware.RequireSession(store, cfg.CookieName, "/login-admin"),
		middleware.RequireRole(model.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login-admin?err=") {
		t.Errorf("Location = %q, want the admin login form with a notice", loc)
	}
	if _, err := store.Get(context.Background(), id); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("session still in store after 401: err = %v, want ErrNoSession", err)
	}
}
