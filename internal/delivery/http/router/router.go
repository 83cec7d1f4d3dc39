// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bitelog/internal/delivery/http/middleware"
	"bitelog/internal/delivery/http/router/handler"
	deliverymiddleware "bitelog/internal/delivery/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	FoodLogHandler      *handler.FoodLogHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *deliverymiddleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	foodLogHandler      *handler.FoodLogHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *deliverymiddleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		foodLogHandler:      params.FoodLogHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/healthz", handler.HealthCheck)

	// All API routes require an authenticated owner.
	apiGroup := e.Group("/api")
	apiGroup.Use(r.authMiddleware.Authenticate)
	{
		apiGroup.POST("/auth/fitbit/exchange", r.authHandler.ExchangeCode)
		apiGroup.POST("/foods/log", r.foodLogHandler.LogFoods)
	}
}
