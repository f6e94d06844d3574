package main // Entry point package

import (
	"log"      // Logging library
	"net/http" // Status codes for the HTTP error handler
	"time"     // Durations for timeouts and session TTL

	"github.com/joho/godotenv"                  // Load .env files in development
	"github.com/labstack/echo/v4"               // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's request logger and recovery

	"github.com/iliyamo/restaurant-reservation-web/internal/api"     // Gateway to the remote reservation service
	"github.com/iliyamo/restaurant-reservation-web/internal/config"  // Internal config loader
	"github.com/iliyamo/restaurant-reservation-web/internal/handler" // Page handlers and template renderer
	"github.com/iliyamo/restaurant-reservation-web/internal/router"  // Internal router setup
	"github.com/iliyamo/restaurant-reservation-web/internal/session"  // Session stores
	"github.com/iliyamo/restaurant-reservation-web/internal/workflow" // Reservation admission workflow
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env wins

	cfg := config.Load() // Load environment config

	// Redis backs both the shared session store and the login rate
	// limiter.  When it is unreachable the front end still works on a
	// single instance: sessions fall back to process memory and the
	// limiter becomes a pass-through.
	rdb := config.NewRedisClient()
	ttl := time.Duration(cfg.SessionTTLMin) * time.Minute
	var store session.Store
	if rdb != nil {
		store = session.NewRedisStore(rdb, ttl)
		log.Printf("sessions: redis")
	} else {
		store = session.NewMemoryStore(ttl)
		log.Printf("sessions: in-memory (redis unavailable)")
	}

	apiClient := api.New(cfg.APIBaseURL, time.Duration(cfg.APITimeoutSec)*time.Second)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Renderer = handler.NewRenderer()

	// Unexpected handler errors render as a plain page rather than
	// Echo's default JSON, since every client here is a browser.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		if !c.Response().Committed {
			_ = c.String(code, http.StatusText(code))
		}
	}

	// One registry per process: requests from the same session acting
	// on the same booking share a workflow, which is what lets the
	// Submitting state refuse the second half of a double-click.
	flows := workflow.NewRegistry()

	h := router.Handlers{
		Auth:            handler.NewAuthHandler(cfg, apiClient, store),
		Reservation:     handler.NewReservationHandler(cfg, apiClient, store, flows),
		Booking:         handler.NewBookingHandler(cfg, apiClient, store, flows),
		Profile:         handler.NewProfileHandler(cfg, apiClient, store),
		AdminBooking:    handler.NewAdminBookingHandler(cfg, apiClient, store, flows),
		AdminRestaurant: handler.NewAdminRestaurantHandler(cfg, apiClient, store),
		AdminUser:       handler.NewAdminUserHandler(cfg, apiClient, store),
	}

	router.RegisterRoutes(e)                                      // Health check
	router.RegisterAuth(e, h, config.LoadRateLimitConfig(), rdb)  // Login, logout
	router.RegisterClient(e, h, store, cfg.CookieName)            // Client pages
	router.RegisterAdmin(e, h, store, cfg.CookieName)             // Management pages

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
