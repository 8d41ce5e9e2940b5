package routes

import (
	"ehospitality-server/internal/config"
	"ehospitality-server/internal/handlers"
	"ehospitality-server/internal/middleware"
	"ehospitality-server/internal/models"
	"ehospitality-server/internal/payments"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)
	billHandler := handlers.NewBillHandler(db, payments.NewClient(cfg.Payment))
	facilityHandler := handlers.NewFacilityHandler(db)
	resourceHandler := handlers.NewHealthResourceHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// The registration form needs the department list before any account exists.
		public.GET("/departments", facilityHandler.GetDepartments)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Accessible by all authenticated users: booking needs the doctor list
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Doctors fetch the patients they have appointments with
			userRoutes.GET("/doctor-patients", middleware.RoleAuthMiddleware(models.RoleDoctor), userHandler.GetDoctorPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PATCH("/:id/role", userHandler.ChangeRole)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Open slots for a doctor on a date; reschedule passes ?exclude=
			appointmentRoutes.GET("/slots", appointmentHandler.GetAvailableSlots)

			// Patients book for themselves
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)

			// All authenticated users get their own appointments; role decides the scope
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			// Admin listing with optional doctor/patient name filters
			appointmentRoutes.GET("/all", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.ListAppointments)

			// Specific appointment access (patient involved, doctor involved, or admin)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			// Doctors confirm or cancel their appointments
			appointmentRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.UpdateAppointmentStatus)

			// Patients move or drop their own bookings
			appointmentRoutes.PATCH("/:id/reschedule", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.RescheduleAppointment)
			appointmentRoutes.PATCH("/:id/cancel", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CancelAppointment)
		}

		// Prescription routes
		prescriptionRoutes := private.Group("/prescriptions")
		{
			prescriptionRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreatePrescription)
			prescriptionRoutes.GET("", middleware.RoleAuthMiddleware(models.RolePatient), prescriptionHandler.GetMyPrescriptions)
			prescriptionRoutes.GET("/patient/:patientId", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.GetPrescriptionsForPatient)
		}

		// Medical history routes
		historyRoutes := private.Group("/medical-history")
		{
			historyRoutes.GET("", middleware.RoleAuthMiddleware(models.RolePatient), prescriptionHandler.GetMyMedicalHistory)
			historyRoutes.POST("/patient/:patientId", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.CreateMedicalHistory)
			historyRoutes.GET("/patient/:patientId", middleware.RoleAuthMiddleware(models.RoleDoctor), prescriptionHandler.GetPatientHistory)
		}

		// Billing routes
		billRoutes := private.Group("/bills")
		billRoutes.Use(middleware.RoleAuthMiddleware(models.RolePatient))
		{
			billRoutes.GET("", billHandler.GetMyBills)
			billRoutes.POST("/:id/pay", billHandler.PayBill)
		}
		private.GET("/payments/success", middleware.RoleAuthMiddleware(models.RolePatient), billHandler.PaymentSuccess)

		// Facility routes (admin management; departments are public above)
		facilityRoutes := private.Group("/locations")
		{
			facilityRoutes.GET("", facilityHandler.GetLocations)

			adminFacilities := facilityRoutes.Group("")
			adminFacilities.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminFacilities.POST("", facilityHandler.CreateLocation)
				adminFacilities.PUT("/:id", facilityHandler.UpdateLocation)
				adminFacilities.DELETE("/:id", facilityHandler.DeleteLocation)
			}
		}
		adminDepartments := private.Group("/departments")
		adminDepartments.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminDepartments.POST("", facilityHandler.CreateDepartment)
			adminDepartments.PUT("/:id", facilityHandler.UpdateDepartment)
			adminDepartments.DELETE("/:id", facilityHandler.DeleteDepartment)
		}

		// Health resource routes
		resourceRoutes := private.Group("/health-resources")
		{
			resourceRoutes.GET("", resourceHandler.GetResources)
			resourceRoutes.GET("/:id/file", resourceHandler.DownloadResourceFile)

			adminResources := resourceRoutes.Group("")
			adminResources.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminResources.POST("", resourceHandler.CreateResource)
				adminResources.DELETE("/:id", resourceHandler.DeleteResource)
			}
		}

		// Dashboard routes
		dashboardRoutes := private.Group("/dashboard")
		{
			dashboardRoutes.GET("/patient", middleware.RoleAuthMiddleware(models.RolePatient), dashboardHandler.PatientDashboard)
			dashboardRoutes.GET("/doctor", middleware.RoleAuthMiddleware(models.RoleDoctor), dashboardHandler.DoctorDashboard)
			dashboardRoutes.GET("/admin", middleware.RoleAuthMiddleware(models.RoleAdmin), dashboardHandler.AdminDashboard)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
