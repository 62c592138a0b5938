package http

import (
	"net/http"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain/models"
	"busfleet/internal/http/handlers"
	"busfleet/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and all route groups.
func NewRouter(env intconfig.Env) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	handlers.SetRouter(r)

	r.GET("/health", handlers.Health)
	r.GET("/health/db", handlers.DBCheck)
	r.GET("/routes", handlers.Routes)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	api := r.Group("/api")
	api.GET("/health", handlers.Health)
	api.GET("/db-check", handlers.DBCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/register", handlers.Register)
	}

	// Customers submit bookings without an account.
	api.POST("/bookings", handlers.CreateBooking)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(env.JWTSecret))

	desk := authed.Group("")
	desk.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
	{
		desk.GET("/tickets", handlers.GetTickets)
		desk.POST("/tickets", handlers.CreateTicket)
		desk.PUT("/tickets/:id/payment-method", handlers.UpdateTicketPaymentMethod)
		desk.PUT("/tickets/:id/assign-driver", handlers.AssignTicketDriver)

		desk.GET("/bookings", handlers.GetBookings)
		desk.GET("/bookings/:id", handlers.GetBooking)
		desk.POST("/bookings/:id/approve", handlers.DecideBooking)
		desk.GET("/bookings/:id/approve", handlers.GetBookingApproval)

		desk.GET("/drivers", handlers.GetDrivers)
		desk.GET("/drivers/:id", handlers.GetDriver)
		desk.POST("/drivers/:id/trip-logs", handlers.CreateTripLog)

		desk.GET("/vehicles", handlers.GetVehicles)

		desk.GET("/reports", handlers.GetReport)
		desk.GET("/reports/revenue-split", handlers.GetRevenueSplit)
	}

	duty := authed.Group("")
	duty.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleStaff, models.RoleDriver))
	{
		duty.POST("/drivers/:id/check-in", handlers.CheckInDriver)
		duty.POST("/drivers/:id/check-out", handlers.CheckOutDriver)
		duty.GET("/drivers/:id/trip-logs", handlers.GetTripLogs)
	}

	admin := authed.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.DELETE("/tickets/:id", handlers.DeleteTicket)
		admin.DELETE("/drivers/:id", handlers.DeleteDriver)

		admin.POST("/vehicles", handlers.CreateVehicle)
		admin.PUT("/vehicles/:id", handlers.UpdateVehicle)
		admin.DELETE("/vehicles/:id", handlers.DeleteVehicle)

		admin.GET("/users", handlers.GetUsers)
		admin.GET("/users/:id", handlers.GetUser)
		admin.POST("/users", handlers.CreateUser)
		admin.PUT("/users/:id", handlers.UpdateUser)
		admin.DELETE("/users/:id", handlers.DeleteUser)
	}

	authed.GET("/driver-portal", middleware.RequireRoles(models.RoleDriver), handlers.GetDriverPortal)
	authed.GET("/station-portal", middleware.RequireRoles(models.RoleStation), handlers.GetStationPortal)

	return r
}
