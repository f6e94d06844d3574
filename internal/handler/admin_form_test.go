package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
)

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// An all-empty create form must be rejected by the draft's validate
// tags before any call reaches the remote service.
func TestCreateRestaurantRejectsEmptyDraftLocally(t *testing.T) {
	remoteCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remoteCalls++
	}))
	defer srv.Close()

	cfg := config.Config{CookieName: "reservation_session", SessionTTLMin: 30}
	h := NewAdminRestaurantHandler(cfg, api.New(srv.URL, 5*time.Second), session.NewMemoryStore(time.Hour))
	e := echo.New()
	e.POST("/admin/restaurants/new", h.CreateRestaurant)

	rec := postForm(e, "/admin/restaurants/new", url.Values{})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/admin/restaurants/new?err=") {
		t.Errorf("Location = %q, want a redirect back to the form with a notice", loc)
	}
	if !strings.Contains(loc, "name") {
		t.Errorf("Location = %q, want the missing field names in the notice", loc)
	}
	if remoteCalls != 0 {
		t.Errorf("remote calls = %d, want 0 for an invalid draft", remoteCalls)
	}
}

func TestCreateUserRejectsBadDraftLocally(t *testing.T) {
	remoteCalls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remoteCalls++
	}))
	defer srv.Close()

	cfg := config.Config{CookieName: "reservation_session", SessionTTLMin: 30}
	h := NewAdminUserHandler(cfg, api.New(srv.URL, 5*time.Second), session.NewMemoryStore(time.Hour))
	e := echo.New()
	e.POST("/admin/users/new", h.CreateUser)

	// short password and unknown role both violate the tags
	rec := postForm(e, "/admin/users/new", url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"email":      {"ada@example.com"},
		"password":   {"short"},
		"role":       {"owner"},
	})

	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/admin/users/new?err=") {
		t.Errorf("Location = %q, want a redirect back to the form with a notice", loc)
	}
	for _, field := range []string{"password", "role"} {
		if !strings.Contains(loc, field) {
			t.Errorf("Location = %q, want %q named in the notice", loc, field)
		}
	}
	if remoteCalls != 0 {
		t.Errorf("remote calls = %d, want 0 for an invalid draft", remoteCalls)
	}
}
