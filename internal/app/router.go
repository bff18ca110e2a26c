package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/auth"
	"rideshare/internal/handler"
	"rideshare/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler   *handler.AuthHandler
	RideHandler   *handler.RideHandler
	UserHandler   *handler.UserHandler
	DriverHandler *handler.DriverHandler
	TokenManager  *auth.Manager
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")

	// Public auth routes.
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", deps.AuthHandler.Register)
		authRoutes.POST("/login", deps.AuthHandler.Login)
	}

	// Everything else requires a valid token. Idempotency replay runs after
	// authentication so the cache can be scoped to the verified actor.
	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(deps.TokenManager))
	authed.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	{
		// Ride routes. Fixed paths before the :id wildcard.
		rides := authed.Group("/rides")
		{
			rides.POST("", deps.RideHandler.RequestRide)
			rides.GET("", deps.RideHandler.GetAll)
			rides.GET("/customer/:id", deps.RideHandler.GetCustomerRides)
			rides.GET("/driver/:id", deps.RideHandler.GetDriverRides)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/accept", deps.RideHandler.AcceptRide)
			rides.POST("/:id/start", deps.RideHandler.StartRide)
			rides.POST("/:id/complete", deps.RideHandler.CompleteRide)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
		}

		// User routes.
		users := authed.Group("/users")
		{
			users.GET("", deps.UserHandler.ListUsers)
			users.GET("/:id", deps.UserHandler.GetUser)
			users.PUT("/:id", deps.UserHandler.UpdateUser)
			users.PUT("/:id/active", deps.UserHandler.SetActive)
		}

		// Driver routes.
		drivers := authed.Group("/drivers")
		{
			drivers.GET("", deps.DriverHandler.ListDrivers)
			drivers.GET("/nearby", deps.DriverHandler.FindNearby)
			drivers.PUT("/:id/status", deps.DriverHandler.SetStatus)
			drivers.POST("/:id/location", deps.DriverHandler.UpdateLocation)
		}
	}

	return router
}
