package router

import (
	"time"

	"github.com/WarikanHQ/warikan-backend/config"
	"github.com/WarikanHQ/warikan-backend/handlers"
	"github.com/WarikanHQ/warikan-backend/middleware"
	"github.com/WarikanHQ/warikan-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	PlanHandler     *handlers.PlanHandler
	RoleHandler     *handlers.RoleHandler
	ScheduleHandler *handlers.ScheduleHandler
	StreamHandler   *handlers.EventStreamHandler
	HealthHandler   *handlers.HealthHandler
	RateLimiter     services.RateLimiterInterface
	Logger          *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics routes are unauthenticated.
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	{
		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(&deps.Config.Server))
		if deps.RateLimiter != nil {
			window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
			authRoutes.Use(middleware.RateLimiter(deps.RateLimiter, deps.Config.RateLimit.RequestsPerMinute, window))
		}
		{
			// Plan routes
			planRoutes := authRoutes.Group("/plans")
			{
				planRoutes.POST("", deps.PlanHandler.CreatePlanHandler)
				planRoutes.GET("", deps.PlanHandler.ListPlansHandler)
				planRoutes.GET("/:id", deps.PlanHandler.GetPlanHandler)
				planRoutes.PUT("/:id", deps.PlanHandler.UpdatePlanHandler)
				planRoutes.DELETE("/:id", deps.PlanHandler.DeletePlanHandler)
				planRoutes.PUT("/:id/amount", deps.PlanHandler.SetPlanAmountHandler)
				planRoutes.GET("/:id/allocation", deps.PlanHandler.GetAllocationHandler)
				planRoutes.GET("/:id/events", deps.StreamHandler.StreamPlanEventsHandler)

				participantRoutes := planRoutes.Group("/:id/participants")
				{
					participantRoutes.POST("", deps.PlanHandler.AddParticipantHandler)
					participantRoutes.PUT("/:participantID", deps.PlanHandler.UpdateParticipantHandler)
					participantRoutes.DELETE("/:participantID", deps.PlanHandler.RemoveParticipantHandler)
				}
			}

			// Role registry routes
			roleRoutes := authRoutes.Group("/roles")
			{
				roleRoutes.GET("", deps.RoleHandler.ListRolesHandler)
				roleRoutes.PUT("/settings/:key", deps.RoleHandler.UpdateRoleSettingHandler)
				roleRoutes.POST("/custom", deps.RoleHandler.CreateCustomRoleHandler)
				roleRoutes.GET("/custom/:roleID", deps.RoleHandler.GetCustomRoleHandler)
				roleRoutes.PUT("/custom/:roleID", deps.RoleHandler.UpdateCustomRoleHandler)
				roleRoutes.DELETE("/custom/:roleID", deps.RoleHandler.DeleteCustomRoleHandler)
			}

			// Schedule voting routes
			scheduleRoutes := authRoutes.Group("/schedules")
			{
				scheduleRoutes.POST("", deps.ScheduleHandler.CreateEventHandler)
				scheduleRoutes.GET("/:id", deps.ScheduleHandler.GetEventHandler)
				scheduleRoutes.PUT("/:id", deps.ScheduleHandler.UpdateEventHandler)
				scheduleRoutes.DELETE("/:id", deps.ScheduleHandler.DeleteEventHandler)
				scheduleRoutes.GET("/:id/tally", deps.ScheduleHandler.GetTallyHandler)
				scheduleRoutes.GET("/:id/events", deps.StreamHandler.StreamScheduleEventsHandler)

				responseRoutes := scheduleRoutes.Group("/:id/responses")
				{
					responseRoutes.POST("", deps.ScheduleHandler.AddResponseHandler)
					responseRoutes.GET("", deps.ScheduleHandler.ListResponsesHandler)
					responseRoutes.PUT("/:responseID", deps.ScheduleHandler.UpdateResponseHandler)
					responseRoutes.DELETE("/:responseID", deps.ScheduleHandler.RemoveResponseHandler)
				}
			}
		}
	}

	return r
}
