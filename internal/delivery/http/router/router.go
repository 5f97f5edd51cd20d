// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"folks/internal/delivery/http/middleware"
	"folks/internal/delivery/http/router/handler"
	"folks/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler      *handler.UserHandler
	AuthHandler      *handler.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	LoginRateLimiter *middleware.LoginRateLimiter
	Gatherer         prometheus.Gatherer `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	loginLimiter   *middleware.LoginRateLimiter
	gatherer       prometheus.Gatherer
}

func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
		loginLimiter:   params.LoginRateLimiter,
		gatherer:       params.Gatherer,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Anything not matched here falls through to the 404 error handler.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	if r.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(r.gatherer)))
	}

	api := e.Group("/api")
	api.GET("", handler.APIRoot)

	auth := api.Group("/auth")
	{
		auth.POST("/login", r.authHandler.Login, r.loginLimiter.Limit)
		auth.POST("/refresh", r.authHandler.Refresh, r.authMiddleware.Authenticate)
	}

	users := api.Group("/users")
	{
		users.POST("", r.userHandler.Register)
	}

	// Per-route auth keeps unknown paths below /folks answering 404.
	authenticated := r.authMiddleware.Authenticate
	{
		users.GET("/folks", r.userHandler.List, authenticated)
		users.GET("/folks/:id", r.userHandler.Get, authenticated)
		users.PUT("/folks/:id", r.userHandler.Update, authenticated)
	}
}
