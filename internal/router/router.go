package router // route registration for the reservation API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/limoncello/reservation-api/internal/config"
	"github.com/limoncello/reservation-api/internal/handler"
	"github.com/limoncello/reservation-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication. The
// health check endpoint lives here so load balancers can reach it without
// credentials.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the guest-facing endpoints: the venue catalogue,
// the available-hours lookup and the booking form submission. The hours
// endpoint sits behind the Redis response cache; bookings invalidate
// nothing because the cache TTL is short enough that a stale hit only
// over-offers a slot, and creation re-validates under the slot lock anyway.
func RegisterPublic(e *echo.Echo, v *handler.VenueHandler, hrs *handler.HoursHandler,
	b *handler.BookingHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/v1/venues", v.List)
	e.GET("/v1/venues/:id", v.Get)
	e.GET("/v1/venues/:id/hours", hrs.Available, middleware.NewRedisCache(cacheCfg, rdb))
	e.POST("/v1/bookings", b.Create)
}
