package routes

import (
	"clinic-scheduling-server/internal/config"
	"clinic-scheduling-server/internal/handlers"
	"clinic-scheduling-server/internal/middleware"
	"clinic-scheduling-server/internal/models"
	"clinic-scheduling-server/internal/scheduling"
	"clinic-scheduling-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))

	// Scheduling core wiring
	repo := scheduling.NewGormRepository(db)
	hours := scheduling.NewWorkingHours(cfg.Schedule)
	resolver := scheduling.NewPatientResolver(repo, log)
	detector := scheduling.NewConflictDetector(repo, log)
	availability := scheduling.NewAvailabilityService(repo, hours, log)
	booking := scheduling.NewBookingService(repo, resolver, detector, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	schedulingHandler := handlers.NewSchedulingHandler(availability, booking, cfg, log)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg)
	patientHandler := handlers.NewPatientHandler(db, cfg)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Scheduling routes: the availability query and the booking
		// operation, both POST JSON. Open to staff and the automation
		// agent's service account.
		schedulingRoutes := private.Group("/scheduling")
		{
			schedulingRoutes.POST("/check-availability", schedulingHandler.CheckAvailability)
			schedulingRoutes.POST("/appointments", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor, models.RoleSecretary, models.RoleAgent), schedulingHandler.CreateAppointment)
		}

		// Appointment lifecycle routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForDoctor)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor, models.RoleSecretary), appointmentHandler.UpdateAppointmentStatus)
		}

		// Patient administration routes
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleSecretary), patientHandler.CreatePatient)
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.GET("/:id", patientHandler.GetPatientByID)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "requestId": c.GetString(utils.RequestIDKey)})
	})
}
