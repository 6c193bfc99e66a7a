// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"eats/internal/delivery/http/middleware"
	"eats/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public account routes
	e.POST("/accounts", r.accountHandler.Register)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// Verification redemption: the emailed link hits GET, API clients POST
	e.GET("/verify-email", r.accountHandler.VerifyEmailByQuery)
	e.POST("/verify-email", r.accountHandler.VerifyEmail)

	// Profile routes that require authentication
	profileGroup := e.Group("/accounts/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.accountHandler.GetProfile)
		profileGroup.PUT("", r.accountHandler.EditProfile)
	}
}
