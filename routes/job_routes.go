package routes

import (
	"gigdispatch/internal/handlers"
	"gigdispatch/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupJobRoutes sets up routes for job lifecycle and dispatch.
func SetupJobRoutes(r *gin.RouterGroup, jobHandler *handlers.JobHandler, jwtSecret string) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthRequired(jwtSecret))
	{
		jobs.POST("/", jobHandler.Create)
		jobs.GET("/:id", jobHandler.Get)
		jobs.PUT("/:id/cancel", jobHandler.Cancel)

		// Driver-only dispatch operations.
		driver := jobs.Group("")
		driver.Use(middleware.DriverRequired())
		{
			driver.GET("/available", jobHandler.ListAvailable)
			driver.POST("/:id/claim", jobHandler.Claim)
			driver.PUT("/:id/status", jobHandler.Advance)
			driver.PUT("/:id/complete", jobHandler.Complete)
		}
	}
}
