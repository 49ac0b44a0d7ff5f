package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/agrotrack/tractor-tracker/internal/config"
	"github.com/agrotrack/tractor-tracker/internal/database"
	"github.com/agrotrack/tractor-tracker/internal/handlers"
	"github.com/agrotrack/tractor-tracker/internal/middleware"
	"github.com/agrotrack/tractor-tracker/internal/repository"
	"github.com/agrotrack/tractor-tracker/internal/services"

	_ "github.com/agrotrack/tractor-tracker/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	},
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := database.EnsureDefaultAdmin(db, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	adminRepo := repository.NewAdminRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)
	workRepo := repository.NewWorkRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	authService := services.NewAuthService(adminRepo, farmerRepo, cfg.JWT.Secret)
	farmerService := services.NewFarmerService(farmerRepo, workRepo)
	workService := services.NewWorkService(workRepo, farmerRepo)
	paymentService := services.NewPaymentService(farmerRepo, workRepo, paymentRepo, db)
	balanceService := services.NewBalanceService(farmerRepo, workRepo, paymentRepo)
	statementService := services.NewStatementService(farmerRepo, workRepo, paymentRepo, cfg.StatementSigningKey)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService, farmerService, balanceService, cfg.UploadDir)
	workHandler := handlers.NewWorkHandler(workService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	farmerHandler := handlers.NewFarmerHandler(farmerService, statementService)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", handlers.Root)
	router.Static("/uploads", cfg.UploadDir)

	router.GET("/swagger", handlers.SwaggerUIWithBearerFix())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/admin/login", authHandler.AdminLogin)
			auth.POST("/farmer/login", authHandler.FarmerLogin)
			auth.POST("/farmer/forgot-password", authHandler.ForgotPassword)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireRole(services.RoleAdmin))
		{
			admin.POST("/change-password", adminHandler.ChangePassword)

			admin.POST("/farmers", adminHandler.CreateFarmer)
			admin.GET("/farmers", adminHandler.ListFarmers)
			admin.DELETE("/farmers/:id", adminHandler.DeleteFarmer)
			admin.GET("/farmers/:id/balance", adminHandler.GetFarmerBalance)
			admin.GET("/farmers/:id/statement", farmerHandler.AdminStatement)

			admin.POST("/work", workHandler.CreateWork)
			admin.PUT("/work/:id", workHandler.UpdateWork)
			admin.DELETE("/work/:id", workHandler.DeleteWork)
			admin.GET("/work", workHandler.ListWork)

			admin.POST("/payment/:farmerId", paymentHandler.AddPayment)
			admin.GET("/payment/:farmerId", paymentHandler.ListPayments)
			admin.DELETE("/payment/:farmerId/:paymentId", paymentHandler.RemovePayment)
		}

		farmer := api.Group("/farmer")
		{
			farmer.POST("", farmerHandler.Register)

			protected := farmer.Group("")
			protected.Use(authMiddleware.RequireRole(services.RoleFarmer))
			{
				protected.GET("/dashboard", farmerHandler.Dashboard)
				protected.GET("/statement", farmerHandler.Statement)
			}
		}
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Tractor Tracker server on %s", addr)
	return router.Run(addr)
}
