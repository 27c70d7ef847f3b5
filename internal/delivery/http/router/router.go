// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"courtside/internal/delivery/http/middleware"
	"courtside/internal/delivery/http/router/handler"
	"courtside/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	PlayerHandler  *handler.PlayerHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	playerHandler  *handler.PlayerHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		playerHandler:  params.PlayerHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/admin/signup", r.authHandler.AdminSignup)
		authGroup.POST("/admin/login", r.authHandler.AdminLogin)
		authGroup.POST("/player/signup", r.authHandler.PlayerSignup)
		authGroup.POST("/player/login", r.authHandler.PlayerLogin)

		// Session inspection endpoints take the raw bearer token and
		// report the stored row as-is, so no resolver runs here.
		authGroup.GET("/user-session", r.authHandler.AdminSession)
		authGroup.GET("/player-session", r.authHandler.PlayerSession)

		// Routes below require a resolved identity of either kind.
		authGroup.GET("/profile", r.authHandler.Profile, r.authMiddleware.Authenticate)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.PUT("/password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}

	// Player routes that require authentication and the player kind
	playerGroup := e.Group("/players")
	playerGroup.Use(r.authMiddleware.Authenticate)                     // First, check the bearer token
	playerGroup.Use(r.authMiddleware.RequireKind(entity.KindPlayer)) // Then, check the actor kind
	{
		playerGroup.GET("/profile", r.playerHandler.GetProfile)
	}
}
