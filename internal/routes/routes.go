package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-server/internal/config"
	"hospital-server/internal/handlers"
	"hospital-server/internal/middleware"
	"hospital-server/internal/models"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	departmentHandler := handlers.NewDepartmentHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Departments: visible to everyone, managed by admins
		departmentRoutes := private.Group("/departments")
		{
			departmentRoutes.GET("", departmentHandler.GetDepartments)
			departmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleAdmin), departmentHandler.CreateDepartment)
		}

		// Doctors: discovery for everyone, management admin-only
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/:id/availability", availabilityHandler.GetDoctorAvailability)

			adminDoctorRoutes := doctorRoutes.Group("")
			adminDoctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminDoctorRoutes.POST("", doctorHandler.CreateDoctor)
				adminDoctorRoutes.PUT("/:id", doctorHandler.UpdateDoctor)
				adminDoctorRoutes.DELETE("/:id", doctorHandler.DeactivateDoctor)
			}
		}

		// Patients: admin management
		patientRoutes := private.Group("/patients")
		patientRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.PUT("/:id", patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:id", patientHandler.DeactivatePatient)
		}

		// Availability publishing: doctors declare their rolling 7-day windows
		private.PUT("/availability", middleware.RoleAuthMiddleware(models.RoleDoctor), availabilityHandler.SetAvailability)

		// Appointments
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.BookAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointments) // role-aware inside the handler
			appointmentRoutes.POST("/:id/complete", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.CompleteAppointment)
			appointmentRoutes.POST("/:id/cancel", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleDoctor), appointmentHandler.CancelAppointment)
		}

		// Histories and dashboards
		private.GET("/patient/treatments", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.GetTreatmentHistory)
		private.GET("/doctor/patients/:id/history", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.GetPatientHistory)
		private.GET("/admin/dashboard", middleware.RoleAuthMiddleware(models.RoleAdmin), dashboardHandler.AdminDashboard)
		private.GET("/doctor/dashboard", middleware.RoleAuthMiddleware(models.RoleDoctor), dashboardHandler.DoctorDashboard)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
