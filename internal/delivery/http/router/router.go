// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"rutero/internal/delivery/http/middleware"
	"rutero/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	CustomerHandler *handler.CustomerHandler
	RouteHandler    *handler.RouteHandler
	InvoiceHandler  *handler.InvoiceHandler
	DispatchHandler *handler.DispatchHandler
	TrackingHandler *handler.TrackingHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	customerHandler *handler.CustomerHandler
	routeHandler    *handler.RouteHandler
	invoiceHandler  *handler.InvoiceHandler
	dispatchHandler *handler.DispatchHandler
	trackingHandler *handler.TrackingHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		customerHandler: params.CustomerHandler,
		routeHandler:    params.RouteHandler,
		invoiceHandler:  params.InvoiceHandler,
		dispatchHandler: params.DispatchHandler,
		trackingHandler: params.TrackingHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.RegisterUser)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.POST("/logout", r.userHandler.Logout)
	}

	// Customer management
	customerGroup := e.Group("/customers")
	customerGroup.Use(r.authMiddleware.Authenticate)
	{
		customerGroup.POST("", r.customerHandler.CreateCustomer)
		customerGroup.GET("", r.customerHandler.ListCustomers)
		customerGroup.GET("/:id", r.customerHandler.GetCustomer)
		customerGroup.PATCH("/:id", r.customerHandler.UpdateCustomer)
		customerGroup.DELETE("/:id", r.customerHandler.DeleteCustomer)
	}

	// Route management
	routeGroup := e.Group("/routes")
	routeGroup.Use(r.authMiddleware.Authenticate)
	{
		routeGroup.POST("", r.routeHandler.CreateRoute)
		routeGroup.GET("", r.routeHandler.ListRoutes)
		routeGroup.GET("/:id", r.routeHandler.GetRoute)
		routeGroup.PATCH("/:id", r.routeHandler.UpdateRoute)
		routeGroup.DELETE("/:id", r.routeHandler.DeleteRoute)
	}

	// Invoice management
	invoiceGroup := e.Group("/invoices")
	invoiceGroup.Use(r.authMiddleware.Authenticate)
	{
		invoiceGroup.POST("", r.invoiceHandler.CreateInvoice)
		invoiceGroup.POST("/import", r.invoiceHandler.ImportInvoices)
		invoiceGroup.GET("", r.invoiceHandler.ListInvoices)
		invoiceGroup.GET("/:id", r.invoiceHandler.GetInvoice)
		invoiceGroup.PATCH("/:id/payment", r.invoiceHandler.UpdateInvoicePayment)
		invoiceGroup.DELETE("/:id", r.invoiceHandler.DeleteInvoice)
	}

	// Dispatch management, assignments, stages and QR
	dispatchGroup := e.Group("/dispatches")
	dispatchGroup.Use(r.authMiddleware.Authenticate)
	{
		dispatchGroup.POST("", r.dispatchHandler.CreateDispatch)
		dispatchGroup.GET("", r.dispatchHandler.ListDispatches)
		dispatchGroup.GET("/:id", r.dispatchHandler.GetDispatch)
		dispatchGroup.PATCH("/:id", r.dispatchHandler.UpdateDispatch)
		dispatchGroup.DELETE("/:id", r.dispatchHandler.DeleteDispatch)

		dispatchGroup.GET("/:id/eligible-invoices", r.dispatchHandler.ListEligibleInvoices)
		dispatchGroup.GET("/:id/assignments", r.dispatchHandler.ListAssignments)
		dispatchGroup.POST("/:id/assignments", r.dispatchHandler.AssignInvoice)
		dispatchGroup.PUT("/:id/stages/:stage", r.dispatchHandler.SetStage)
		dispatchGroup.GET("/:id/qrcode", r.dispatchHandler.GetDispatchQR)
	}

	// Assignment mutations addressed by assignment ID
	assignmentGroup := e.Group("/assignments")
	assignmentGroup.Use(r.authMiddleware.Authenticate)
	{
		assignmentGroup.PATCH("/:id", r.dispatchHandler.UpdateAssignment)
		assignmentGroup.DELETE("/:id", r.dispatchHandler.UnassignInvoice)
	}

	// Trip lifecycle and live tracking
	trackingGroup := e.Group("/tracking")
	trackingGroup.Use(r.authMiddleware.Authenticate)
	{
		trackingGroup.POST("/trips/start", r.trackingHandler.StartTrip)
		trackingGroup.POST("/trips/stop", r.trackingHandler.StopTrip)
		trackingGroup.GET("/trips/active", r.trackingHandler.GetActiveTrip)
		trackingGroup.POST("/positions", r.trackingHandler.RecordPosition)
		trackingGroup.GET("/dispatches/:id/trail", r.trackingHandler.GetTrail)
		trackingGroup.GET("/dispatches/:id/planned-route", r.trackingHandler.GetPlannedRoute)
		trackingGroup.GET("/drivers", r.trackingHandler.ListDrivers)
	}
}
