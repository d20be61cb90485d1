package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"focolare/internal/config"
	"focolare/internal/database"
	"focolare/internal/handlers"
	"focolare/internal/logger"
	"focolare/internal/middleware"
	"focolare/internal/services"
	"focolare/internal/validator"

	_ "focolare/internal/docs" // Import swagger docs
)

// @title           Focolare API
// @version         1.0
// @description     Focolare is a shared household expense tracker: one household per family, common wallets and categories, per-category spending summaries.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db)
	bootstrapService := services.NewBootstrapService(db, auditService)
	householdService := services.NewHouseholdService(db)
	walletService := services.NewWalletService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, auditService, appConfig.DefaultCurrency)
	summaryService := services.NewSummaryService(db)
	recurringService := services.NewRecurringService(db, auditService, appConfig.DefaultCurrency)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(profileService, bootstrapService)
	householdHandler := handlers.NewHouseholdHandler(profileService, householdService)
	walletHandler := handlers.NewWalletHandler(profileService, walletService)
	categoryHandler := handlers.NewCategoryHandler(profileService, categoryService)
	expenseHandler := handlers.NewExpenseHandler(profileService, expenseService)
	summaryHandler := handlers.NewSummaryHandler(profileService, summaryService)
	recurringHandler := handlers.NewRecurringHandler(profileService, recurringService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.GetProfile)

	// Household routes
	protected.GET("/household", householdHandler.GetHousehold)
	protected.PATCH("/household", householdHandler.RenameHousehold)
	protected.GET("/household/members", householdHandler.GetMembers)
	protected.POST("/household/invites", householdHandler.CreateInvite)

	// Wallet routes
	wallets := protected.Group("/wallets")
	wallets.POST("", walletHandler.CreateWallet)
	wallets.GET("", walletHandler.GetWallets)
	wallets.GET("/:id", walletHandler.GetWallet)
	wallets.PATCH("/:id", walletHandler.UpdateWallet)
	wallets.DELETE("/:id", walletHandler.DeleteWallet)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PATCH("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/recent", expenseHandler.RecentExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PATCH("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Summary routes
	summary := protected.Group("/summary")
	summary.GET("", summaryHandler.CategorySummary)
	summary.GET("/month", summaryHandler.MonthSummary)

	// Recurring expense routes
	recurring := protected.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.ListRecurring)
	recurring.PATCH("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.POST("/run", recurringHandler.RunDue)

	log.Infof("Starting Focolare backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
