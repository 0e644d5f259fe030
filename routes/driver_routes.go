package routes

import (
	"gigdispatch/internal/handlers"
	"gigdispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDriverRoutes sets up routes for driver registration, status and
// earnings.
func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler, jwtSecret string) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.AuthRequired(jwtSecret))
	{
		drivers.POST("/", driverHandler.Register)

		me := drivers.Group("/me")
		me.Use(middleware.DriverRequired())
		{
			me.GET("", driverHandler.GetProfile)
			me.PUT("/status", driverHandler.SetStatus)
			me.PUT("/services", driverHandler.ToggleService)
			me.PUT("/subscription", driverHandler.UpdateSubscription)
			me.PUT("/location", driverHandler.UpdateLocation)
			me.GET("/earnings", driverHandler.GetEarnings)
			me.GET("/jobs/active", driverHandler.GetActiveJob)
		}
	}
}
