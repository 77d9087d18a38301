package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/reliefops/disaster-relief-api/internal/config"
	"github.com/reliefops/disaster-relief-api/internal/constants"
	"github.com/reliefops/disaster-relief-api/internal/database"
	"github.com/reliefops/disaster-relief-api/internal/handlers"
	"github.com/reliefops/disaster-relief-api/internal/logger"
	"github.com/reliefops/disaster-relief-api/internal/middleware"
	"github.com/reliefops/disaster-relief-api/internal/repository"
	"github.com/reliefops/disaster-relief-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if err := logger.Init(cfg.GinMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed reference data
	if err := database.Seed(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	volunteerRepo := repository.NewVolunteerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	donationRepo := repository.NewDonationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	volunteerService := services.NewVolunteerService(volunteerRepo)
	taskService := services.NewTaskService(taskRepo)
	allocationService := services.NewAllocationService(volunteerRepo, taskRepo, assignmentRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, volunteerRepo)
	incidentService := services.NewIncidentService(incidentRepo)
	donationService := services.NewDonationService(donationRepo)
	adminService := services.NewAdminService(volunteerRepo, incidentRepo, donationRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService)
	taskHandler := handlers.NewTaskHandler(taskService, allocationService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	incidentHandler := handlers.NewIncidentHandler(incidentService)
	donationHandler := handlers.NewDonationHandler(donationService)
	adminHandler := handlers.NewAdminHandler(adminService, taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Disaster Relief API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Volunteer routes (protected)
		volunteers := api.Group("/volunteers")
		volunteers.Use(middleware.RequireAuth())
		{
			volunteers.POST("", volunteerHandler.CreateProfile)
			volunteers.GET("/me", volunteerHandler.GetMyProfile)
			volunteers.PUT("/me", volunteerHandler.UpdateProfile)
			volunteers.DELETE("/me", volunteerHandler.DeleteProfile)
			volunteers.GET("", middleware.RequireAdmin(), volunteerHandler.ListVolunteers)
			volunteers.GET("/:id", middleware.RequireAdmin(), volunteerHandler.GetVolunteer)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/my-assignments", taskHandler.MyAssignments)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/apply", taskHandler.Apply)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
		}

		// Assignment routes (protected, owner or admin)
		assignments := api.Group("/assignments")
		assignments.Use(middleware.RequireAuth(), middleware.LoadRole())
		{
			assignments.GET("/:id", assignmentHandler.GetAssignment)
			assignments.POST("/:id/accept", assignmentHandler.Accept)
			assignments.POST("/:id/start", assignmentHandler.Start)
			assignments.POST("/:id/cancel", assignmentHandler.Cancel)
			assignments.POST("/:id/no-show", assignmentHandler.NoShow)
			assignments.POST("/:id/complete", assignmentHandler.Complete)
		}

		// Incident routes (protected)
		incidents := api.Group("/incidents")
		incidents.Use(middleware.RequireAuth(), middleware.LoadRole())
		{
			incidents.POST("", incidentHandler.ReportIncident)
			incidents.GET("", incidentHandler.ListIncidents)
			incidents.GET("/:id", incidentHandler.GetIncident)
			incidents.PUT("/:id", incidentHandler.UpdateIncident)
			incidents.DELETE("/:id", incidentHandler.DeleteIncident)
		}

		// Donation routes (protected)
		donations := api.Group("/donations")
		donations.Use(middleware.RequireAuth(), middleware.LoadRole())
		{
			donations.POST("", donationHandler.RecordDonation)
			donations.GET("", donationHandler.ListDonations)
			donations.GET("/categories", donationHandler.ListCategories)
			donations.GET("/:id", donationHandler.GetDonation)
			donations.PUT("/:id", donationHandler.UpdateDonation)
			donations.DELETE("/:id", donationHandler.DeleteDonation)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.POST("/volunteers/:id/approve", adminHandler.ApproveVolunteer)
			admin.POST("/volunteers/:id/reject", adminHandler.RejectVolunteer)
			admin.PUT("/volunteers/:id/status", adminHandler.SetVolunteerStatus)
			admin.PUT("/tasks/:id/status", adminHandler.SetTaskStatus)
			admin.PUT("/incidents/:id/status", adminHandler.SetIncidentStatus)
			admin.PUT("/donations/:id/status", adminHandler.SetDonationStatus)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
