package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hospital-room-allocation/internal/config"
	"hospital-room-allocation/internal/database"
	"hospital-room-allocation/internal/handler"
	"hospital-room-allocation/internal/middleware"
	"hospital-room-allocation/internal/repository"
	"hospital-room-allocation/internal/service"
	"hospital-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection
	db := database.Connect(cfg)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	allocationRepo := repository.NewAllocationRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo)
	patientService := service.NewPatientService(patientRepo, allocationRepo, auditRepo)
	roomService := service.NewRoomService(roomRepo, allocationRepo, auditRepo)
	allocationService := service.NewAllocationService(patientRepo, roomRepo, allocationRepo, auditRepo)
	dashboardService := service.NewDashboardService(patientRepo, roomRepo, allocationRepo)
	workerService := service.NewWorkerService(roomRepo, allocationRepo, cfg.Worker.ReconcileInterval)

	// 6. Start reconciliation worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go workerService.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	roomHandler := handler.NewRoomHandler(roomService)
	allocationHandler := handler.NewAllocationHandler(allocationService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-room-allocation",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Patient routes (authenticated)
	patients := r.Group("/patients")
	patients.Use(middleware.AuthMiddleware())
	{
		patients.GET("", patientHandler.GetAllPatients)
		patients.GET("/:id", patientHandler.GetPatient)
		patients.GET("/email/:email", patientHandler.GetPatientByEmail)
		patients.POST("", patientHandler.CreatePatient)
		patients.PUT("/:id", patientHandler.UpdatePatient)
		patients.DELETE("/:id", middleware.RequireAdmin(), patientHandler.DeletePatient)
	}

	// Room routes (authenticated; mutations admin-only)
	rooms := r.Group("/rooms")
	rooms.Use(middleware.AuthMiddleware())
	{
		rooms.GET("", roomHandler.GetAllRooms)
		rooms.GET("/:id", roomHandler.GetRoom)
		rooms.GET("/number/:number", roomHandler.GetRoomByNumber)
		rooms.GET("/available", roomHandler.GetAvailableRooms)
		rooms.GET("/available/count", roomHandler.GetAvailableCount)
		rooms.POST("", middleware.RequireAdmin(), roomHandler.CreateRoom)
		rooms.PUT("/:id", middleware.RequireAdmin(), roomHandler.UpdateRoom)
		rooms.DELETE("/:id", middleware.RequireAdmin(), roomHandler.DeleteRoom)
	}

	// Allocation routes (authenticated)
	allocations := r.Group("/allocations")
	allocations.Use(middleware.AuthMiddleware())
	{
		allocations.POST("", allocationHandler.CreateAllocation)
		allocations.GET("/active", allocationHandler.GetActiveAllocations)
		allocations.GET("/:id", allocationHandler.GetAllocation)
		allocations.GET("/:id/bill", allocationHandler.GetBill)
		allocations.PUT("/:id/discharge", allocationHandler.Discharge)
		allocations.PUT("/:id/cancel", allocationHandler.Cancel)
		allocations.PUT("/:id/transfer", allocationHandler.Transfer)
		allocations.GET("/patient/:id", allocationHandler.GetActiveByPatient)
		allocations.GET("/patient/:id/history", allocationHandler.GetPatientHistory)
		allocations.GET("/room/:id", allocationHandler.GetActiveByRoom)
		allocations.GET("/room/:id/history", allocationHandler.GetRoomHistory)
	}

	// Dashboard routes (authenticated)
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel background worker context
	cancel()
	log.Println("Server exited")
}
