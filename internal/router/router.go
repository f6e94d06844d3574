package router // package router defines how HTTP routes are registered for the web front end

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-reservation-web/internal/config"
	"github.com/iliyamo/restaurant-reservation-web/internal/handler"
	"github.com/iliyamo/restaurant-reservation-web/internal/middleware"
	"github.com/iliyamo/restaurant-reservation-web/internal/model"
	"github.com/iliyamo/restaurant-reservation-web/internal/session"
)

// Handlers bundles every page handler the router wires up.
type Handlers struct {
	Auth            *handler.AuthHandler
	Reservation     *handler.ReservationHandler
	Booking         *handler.BookingHandler
	Profile         *handler.ProfileHandler
	AdminBooking    *handler.AdminBookingHandler
	AdminRestaurant *handler.AdminRestaurantHandler
	AdminUser       *handler.AdminUserHandler
}

// RegisterRoutes registers routes that do not require a session.
// Currently it exposes only a health check, used by load balancers or
// monitoring systems to verify that the service is up and running.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the login and logout routes.  The login forms
// are the only POST endpoints reachable without a session, so the
// token-bucket limiter guards them against credential stuffing; it is
// skipped automatically when Redis is unavailable or the limiter is
// disabled.
func RegisterAuth(e *echo.Echo, h Handlers, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	limit := middleware.NewTokenBucket(rlCfg, rdb)

	// The root redirects to the client login; it is the natural landing
	// page for a browser hitting the bare host.
	e.GET("/", h.Auth.ShowClientLogin)
	e.GET("/login-client", h.Auth.ShowClientLogin)
	e.GET("/login-admin", h.Auth.ShowAdminLogin)
	e.POST("/login-client", h.Auth.ClientLogin, limit)
	e.POST("/login-admin", h.Auth.AdminLogin, limit)
	e.GET("/logout", h.Auth.Logout)
	e.POST("/logout", h.Auth.Logout)
}

// RegisterClient registers the pages every authenticated user can
// reach: browsing restaurants, the reservation workflow, their own
// bookings and their profile.  Missing or expired sessions redirect to
// the client login form.
func RegisterClient(e *echo.Echo, h Handlers, store session.Store, cookieName string) {
	g := e.Group("", middleware.RequireSession(store, cookieName, "/login-client"),
		middleware.RequireRole(model.RoleClient, model.RoleAdmin))

	g.GET("/restaurants", h.Reservation.Restaurants)
	g.GET("/restaurants/:id/schedule", h.Reservation.Schedule)
	g.GET("/restaurants/:id/reserve", h.Reservation.NewReservation)
	g.POST("/restaurants/:id/reserve", h.Reservation.CreateReservation)

	g.GET("/my-bookings", h.Booking.MyBookings)
	g.GET("/my-bookings/:id/edit", h.Booking.EditBooking)
	g.POST("/my-bookings/:id/edit", h.Booking.UpdateBooking)
	g.POST("/my-bookings/:id/delete", h.Booking.DeleteBooking)

	g.GET("/my-profile", h.Profile.MyProfile)
	g.POST("/my-profile", h.Profile.UpdateMyProfile)
}

// RegisterAdmin registers the management pages.  They sit behind the
// admin login and require the admin role; a client who guesses an
// /admin URL is bounced back to their own pages rather than shown an
// error.
func RegisterAdmin(e *echo.Echo, h Handlers, store session.Store, cookieName string) {
	g := e.Group("/admin", middleware.RequireSession(store, cookieName, "/login-admin"),
		middleware.RequireRole(model.RoleAdmin))

	g.GET("", h.AdminBooking.Dashboard)

	g.GET("/bookings", h.AdminBooking.Bookings)
	g.GET("/bookings/:id/edit", h.AdminBooking.EditBooking)
	g.POST("/bookings/:id/edit", h.AdminBooking.UpdateBooking)
	g.POST("/bookings/:id/delete", h.AdminBooking.DeleteBooking)

	g.GET("/restaurants", h.AdminRestaurant.Restaurants)
	g.GET("/restaurants/new", h.AdminRestaurant.NewRestaurant)
	g.POST("/restaurants/new", h.AdminRestaurant.CreateRestaurant)
	g.GET("/restaurants/:id/edit", h.AdminRestaurant.EditRestaurant)
	g.POST("/restaurants/:id/edit", h.AdminRestaurant.UpdateRestaurant)

	g.GET("/restaurants/:id/tables", h.AdminRestaurant.Tables)
	g.POST("/restaurants/:id/tables", h.AdminRestaurant.CreateTable)
	g.POST("/restaurants/:id/tables/:tableID", h.AdminRestaurant.UpdateTable)

	g.GET("/restaurants/:id/schedules", h.AdminRestaurant.Schedules)
	g.POST("/restaurants/:id/schedules", h.AdminRestaurant.CreateSchedule)
	g.POST("/restaurants/:id/schedules/:scheduleID/delete", h.AdminRestaurant.DeleteSchedule)

	g.GET("/users", h.AdminUser.Users)
	g.GET("/users/new", h.AdminUser.NewUser)
	g.POST("/users/new", h.AdminUser.CreateUser)
	g.GET("/users/:id/edit", h.AdminUser.EditUser)
	g.POST("/users/:id/edit", h.AdminUser.UpdateUser)
	g.POST("/users/:id/delete", h.AdminUser.DeleteUser)
}
