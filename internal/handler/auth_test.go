package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation-web/internal/api"
	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "42",
		"user_id":    42,
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"role":       role,
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func loginEnv(t *testing.T, remote http.HandlerFunc) (*echo.Echo, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	cfg := config.Config{CookieName: "reservation_session", SessionTTLMin: 30}
	store := session.NewMemoryStore(time.Hour)
	h := NewAuthHandler(cfg, api.New(srv.URL, 5*time.Second), store)

	e := echo.New()
	e.POST("/login-client", h.ClientLogin)
	e.POST("/login-admin", h.AdminLogin)
	return e, store
}

func postLogin(e *echo.Echo, path, email, password string) *httptest.ResponseRecorder {
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestClientLoginOpensSession(t *testing.T) {
	var token string
	e, store := loginEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": token,
			"token_type":   "bearer",
		})
	})
	token = signedToken(t, model.RoleClient)

	rec := postLogin(e, "/login-client", "Ada@Example.com", "pw")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/restaurants" {
		t.Errorf("Location = %q, want /restaurants", got)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	sess, err := store.Get(context.Background(), cookies[0].Value)
	if err != nil {
		t.Fatalf("stored session: %v", err)
	}
	if sess.Token != token || sess.Role != model.RoleClient {
		t.Errorf("session = %+v, want token+client role", sess)
	}
}

func TestAdminLoginRedirectsToAdmin(t *testing.T) {
	token := signedToken(t, model.RoleAdmin)
	e, _ := loginEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/admin/login" {
			t.Errorf("path = %q, want /auth/admin/login", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": token,
			"token_type":   "bearer",
		})
	})

	rec := postLogin(e, "/login-admin", "boss@example.com", "pw")

	if got := rec.Header().Get("Location"); got != "/admin" {
		t.Errorf("Location = %q, want /admin", got)
	}
}

func TestLoginRejectionCreatesNoSession(t *testing.T) {
	e, _ := loginEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	})

	rec := postLogin(e, "/login-client", "ada@example.com", "wrong")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login-client?err=") {
		t.Errorf("Location = %q, want /login-client with error notice", loc)
	}
	if !strings.Contains(loc, url.QueryEscape("Invalid credentials")) {
		t.Errorf("Location = %q, want the service detail verbatim", loc)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("rejected login must not set a session cookie")
	}
}

func TestLoginRoleMismatchCreatesNoSession(t *testing.T) {
	// A client token coming back from the admin endpoint means the
	// service and front end disagree about the account.
	token := signedToken(t, model.RoleClient)
	e, _ := loginEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": token,
			"token_type":   "bearer",
		})
	})

	rec := postLogin(e, "/login-admin", "boss@example.com", "pw")

	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/login-admin?err=") {
		t.Errorf("Location = %q, want /login-admin with error notice", loc)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("role mismatch must not set a session cookie")
	}
}

func TestLoginConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening

	cfg := config.Config{CookieName: "reservation_session", SessionTTLMin: 30}
	h := NewAuthHandler(cfg, api.New(srv.URL, time.Second), session.NewMemoryStore(time.Hour))
	e := echo.New()
	e.POST("/login-client", h.ClientLogin)

	rec := postLogin(e, "/login-client", "ada@example.com", "pw")

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, url.QueryEscape("connection failure")) {
		t.Errorf("Location = %q, want a connection failure notice", loc)
	}
}
