// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"
	deliverymiddleware "passport/internal/delivery/middleware"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	LoggerMiddleware    *middleware.LoggerMiddleware
	RequestIDMiddleware *deliverymiddleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	authMiddleware      *middleware.AuthMiddleware
	loggerMiddleware    *middleware.LoggerMiddleware
	requestIDMiddleware *deliverymiddleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		authMiddleware:      params.AuthMiddleware,
		loggerMiddleware:    params.LoggerMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// accessRules is the route policy table. Identity resolution runs on every
// request; these rules only decide which paths an unauthenticated request may
// reach. Paths not listed here require authentication.
func accessRules() []middleware.PolicyRule {
	return []middleware.PolicyRule{
		{Pattern: "/health", Policy: middleware.PolicyPublic},
		{Pattern: "/auth/*", Policy: middleware.PolicyPublic},
		{Pattern: "/me", Policy: middleware.PolicyAuthenticated},
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	policy := middleware.NewPolicyMiddleware(accessRules())

	e.Use(r.requestIDMiddleware.Process)
	e.Use(r.loggerMiddleware.Handle)
	e.Use(r.authMiddleware.Resolve)
	e.Use(policy.Enforce)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Routes that require authentication
	e.GET("/me", r.authHandler.Me)
}
