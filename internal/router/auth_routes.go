package router

import (
	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/handler"
	"github.com/limoncello/reservation-api/internal/middleware"
)

// RegisterAuth registers the staff session endpoints. Token acquisition and
// recovery live under /v1/auth without middleware; /v1/me and password
// changes require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a refresh token in the body and needs no JWT.
	g.POST("/logout", a.Logout)
	g.POST("/forgot-password", a.ForgotPassword)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/auth/change-password", a.ChangePassword)
	// With a bearer token and no body, logout revokes every session.
	auth.POST("/logout", a.Logout)
}
