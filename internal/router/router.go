// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/handler"
	"github.com/iliyamo/court-reserve/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication at
// all. Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints under /v1/auth and the
// authenticated /v1/me route. Register, login and refresh work without
// a session; logout accepts either a bearer token or a refresh token in
// the body.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(booking.RoleMember, booking.RoleTrainer, booking.RoleAdmin))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints: club
// and court listings plus the slot calendar. The caller supplies the
// response cache middleware; these endpoints are read-heavy and their
// payloads are already sanitized.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/clubs", p.GetPublicClubs)
	g.GET("/clubs/:id/courts", p.GetClubCourts)
	g.GET("/courts/:id/slots", p.GetCourtSlots)
}

// RegisterBooking registers the reservation and series endpoints. All
// of them require an authenticated member, trainer or admin.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(booking.RoleMember, booking.RoleTrainer, booking.RoleAdmin))

	g.POST("/reservations", b.CreateReservation)
	g.GET("/reservations/:id", b.GetReservation)
	g.DELETE("/reservations/:id", b.CancelReservation)
	g.GET("/my-reservations", b.ListMyReservations)
	g.GET("/courts/:id/reservations", b.ListCourtReservations)

	g.POST("/series", b.CreateSeries)
	g.GET("/series/:id", b.GetSeries)
}

// RegisterAdmin registers club and court management under /v1/admin,
// restricted to the ADMIN role.
func RegisterAdmin(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(booking.RoleAdmin))

	g.GET("/clubs", o.ListClubs)
	g.POST("/clubs", o.CreateClub)
	g.PATCH("/clubs/:id", o.UpdateClub)
	g.DELETE("/clubs/:id", o.DeleteClub)

	g.POST("/clubs/:id/courts", o.CreateCourt)
	g.PATCH("/courts/:id", o.UpdateCourt)
	g.DELETE("/courts/:id", o.DeleteCourt)
}
