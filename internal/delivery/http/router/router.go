// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"beacon/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AlertHandler    *handler.AlertHandler
	LocationHandler *handler.LocationHandler
	SOSHandler      *handler.SOSHandler
	ContactHandler  *handler.ContactHandler
	ProfileHandler  *handler.ProfileHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	alertHandler    *handler.AlertHandler
	locationHandler *handler.LocationHandler
	sosHandler      *handler.SOSHandler
	contactHandler  *handler.ContactHandler
	profileHandler  *handler.ProfileHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		alertHandler:    params.AlertHandler,
		locationHandler: params.LocationHandler,
		sosHandler:      params.SOSHandler,
		contactHandler:  params.ContactHandler,
		profileHandler:  params.ProfileHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Alert lifecycle routes
	alertGroup := e.Group("/alerts")
	{
		alertGroup.POST("", r.alertHandler.CreateAlert)
		alertGroup.GET("", r.alertHandler.GetHistory)
		alertGroup.GET("/active", r.alertHandler.GetActive)
		alertGroup.POST("/:id/resolve", r.alertHandler.ResolveAlert)
		alertGroup.POST("/:id/false-alarm", r.alertHandler.MarkFalseAlarm)
	}

	// Location routes
	locationGroup := e.Group("/location")
	{
		locationGroup.GET("", r.locationHandler.GetStatus)
		locationGroup.POST("/acquire", r.locationHandler.AcquirePosition)
		locationGroup.POST("/tracking/start", r.locationHandler.StartTracking)
		locationGroup.POST("/tracking/stop", r.locationHandler.StopTracking)
	}

	// SOS countdown routes
	sosGroup := e.Group("/sos")
	{
		sosGroup.GET("", r.sosHandler.GetStatus)
		sosGroup.POST("/arm", r.sosHandler.Arm)
		sosGroup.POST("/cancel", r.sosHandler.Cancel)
		sosGroup.POST("/trigger", r.sosHandler.Trigger)
	}

	// Emergency contact routes
	contactGroup := e.Group("/contacts")
	{
		contactGroup.GET("", r.contactHandler.ListContacts)
		contactGroup.POST("", r.contactHandler.AddContact)
		contactGroup.PUT("/:id", r.contactHandler.UpdateContact)
		contactGroup.DELETE("/:id", r.contactHandler.DeleteContact)
	}

	// Emergency profile routes
	profileGroup := e.Group("/profile")
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
		profileGroup.GET("/card", r.profileHandler.GetEmergencyCard)
	}
}
