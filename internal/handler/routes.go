package handler

import (
	"github.com/garagelog/garagelog-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes. Paths and verbs match the contract
// existing clients depend on, mounted at the root.
func RegisterRoutes(e *echo.Echo, authLimiter *middleware.RateLimiter, authHandler *AuthHandler, vehicleHandler *VehicleHandler, jobHandler *JobHandler) {
	// Auth (unauthenticated, rate limited per client IP)
	e.POST("/auth/firebase", authHandler.Authenticate, authLimiter.Middleware())

	// Vehicle routes
	vehicles := e.Group("/vehicles")
	vehicles.POST("", vehicleHandler.CreateVehicle)
	vehicles.GET("/:userId", vehicleHandler.GetVehicles)
	vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
	vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)

	// Job routes
	jobs := e.Group("/jobs")
	jobs.POST("", jobHandler.CreateJob)
	jobs.GET("/:vehicleId", jobHandler.GetJobs)
	jobs.PUT("/:jobId", jobHandler.UpdateJob)
	jobs.DELETE("/:jobId", jobHandler.DeleteJob)
}
