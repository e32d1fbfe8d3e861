// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"wasul/internal/delivery/http/middleware"
	"wasul/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AddressHandler   *handler.AddressHandler
	PartnerHandler   *handler.PartnerHandler
	StatsHandler     *handler.StatsHandler
	APIKeyMiddleware *middleware.APIKeyMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	addressHandler   *handler.AddressHandler
	partnerHandler   *handler.PartnerHandler
	statsHandler     *handler.StatsHandler
	apiKeyMiddleware *middleware.APIKeyMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		addressHandler:   params.AddressHandler,
		partnerHandler:   params.PartnerHandler,
		statsHandler:     params.StatsHandler,
		apiKeyMiddleware: params.APIKeyMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/stats", r.statsHandler.Stats)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Partner API
	apiGroup := e.Group("/api")
	apiGroup.Use(r.apiKeyMiddleware.Extract)
	{
		// Open endpoints: residents register addresses, partners request keys
		apiGroup.POST("/register-address", r.addressHandler.Register)
		apiGroup.POST("/request-key", r.partnerHandler.RequestKey)

		// Key-gated endpoints; the key itself is validated in the use cases
		apiGroup.GET("/lookup", r.addressHandler.Lookup)
		apiGroup.POST("/verify-delivery", r.addressHandler.VerifyDelivery)
		apiGroup.GET("/address-qr", r.addressHandler.AddressQR)
	}
}
