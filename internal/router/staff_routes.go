package router

import (
	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/handler"
	"github.com/limoncello/reservation-api/internal/middleware"
)

// RegisterStaff registers the staff-scoped endpoints under /v1. All routes
// require a valid JWT; booking management is open to HOST and ADMIN while
// account and role administration is ADMIN only.
func RegisterStaff(e *echo.Echo, b *handler.BookingHandler, p *handler.PersonHandler,
	u *handler.UserHandler, r *handler.RoleHandler, jwtSecret string) {
	staff := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "HOST"),
	)
	staff.GET("/venues/:id/bookings", b.ListByVenue)
	staff.GET("/bookings/:id", b.Get)
	staff.PATCH("/bookings/:id/approve", b.Approve)
	staff.PATCH("/bookings/:id/cancel", b.Cancel)
	staff.GET("/people", p.List)
	staff.POST("/people", p.Create)
	staff.GET("/people/:id", p.Get)
	staff.GET("/people/:id/bookings", b.ListByPerson)
	staff.PUT("/people/:id", p.Update)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	admin.DELETE("/people/:id", p.Delete)
	admin.POST("/users", u.Create)
	admin.GET("/users", u.List)
	admin.GET("/users/:id", u.Get)
	admin.PATCH("/users/:id/flags", u.SetFlags)
	admin.GET("/roles", r.List)
	admin.POST("/roles", r.Create)
	admin.POST("/roles/assign", r.Assign)
}
