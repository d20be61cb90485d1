package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"focolare/internal/handlers"
	"focolare/internal/logger"
	"focolare/internal/middleware"
	"focolare/internal/models"
	"focolare/internal/services"
	"focolare/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Household{},
		&models.Profile{},
		&models.Wallet{},
		&models.Category{},
		&models.Expense{},
		&models.RecurringExpense{},
		&models.HouseholdInvite{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db)
	bootstrapService := services.NewBootstrapService(db, auditService)
	householdService := services.NewHouseholdService(db)
	walletService := services.NewWalletService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, auditService, "EUR")
	summaryService := services.NewSummaryService(db)
	recurringService := services.NewRecurringService(db, auditService, "EUR")

	// Handlers
	authHandler := handlers.NewAuthHandler(profileService, bootstrapService)
	householdHandler := handlers.NewHouseholdHandler(profileService, householdService)
	walletHandler := handlers.NewWalletHandler(profileService, walletService)
	categoryHandler := handlers.NewCategoryHandler(profileService, categoryService)
	expenseHandler := handlers.NewExpenseHandler(profileService, expenseService)
	summaryHandler := handlers.NewSummaryHandler(profileService, summaryService)
	recurringHandler := handlers.NewRecurringHandler(profileService, recurringService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.GetProfile)

	protected.GET("/household", householdHandler.GetHousehold)
	protected.PATCH("/household", householdHandler.RenameHousehold)
	protected.GET("/household/members", householdHandler.GetMembers)
	protected.POST("/household/invites", householdHandler.CreateInvite)

	wallets := protected.Group("/wallets")
	wallets.POST("", walletHandler.CreateWallet)
	wallets.GET("", walletHandler.GetWallets)
	wallets.GET("/:id", walletHandler.GetWallet)
	wallets.PATCH("/:id", walletHandler.UpdateWallet)
	wallets.DELETE("/:id", walletHandler.DeleteWallet)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PATCH("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/recent", expenseHandler.RecentExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PATCH("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	summary := protected.Group("/summary")
	summary.GET("", summaryHandler.CategorySummary)
	summary.GET("/month", summaryHandler.MonthSummary)

	recurring := protected.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.ListRecurring)
	recurring.PATCH("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.POST("/run", recurringHandler.RunDue)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerMember registers a profile and returns its access token and profile ID.
func (app *testApp) registerMember(t *testing.T, email string) (accessToken, profileID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123","full_name":"Test Member"}`, email)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	profile := result["profile"].(map[string]interface{})
	return result["access_token"].(string), profile["id"].(string)
}

// joinHousehold registers a profile with an invite code.
func (app *testApp) joinHousehold(t *testing.T, email, inviteCode string) (accessToken, profileID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":"password123","invite_code":%q}`, email, inviteCode)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register with invite failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	profile := result["profile"].(map[string]interface{})
	return result["access_token"].(string), profile["id"].(string)
}

// firstWalletAndCategory returns one seeded wallet and category ID.
func (app *testApp) firstWalletAndCategory(t *testing.T, token string) (walletID, categoryID string) {
	t.Helper()

	rec := app.request("GET", "/api/v1/wallets", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list wallets failed: %d %s", rec.Code, rec.Body.String())
	}
	var wallets []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &wallets); err != nil {
		t.Fatalf("failed to parse wallets: %v", err)
	}
	if len(wallets) == 0 {
		t.Fatal("expected seeded wallets")
	}

	rec = app.request("GET", "/api/v1/categories", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list categories failed: %d %s", rec.Code, rec.Body.String())
	}
	var categories []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("failed to parse categories: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("expected seeded categories")
	}

	return wallets[0]["id"].(string), categories[0]["id"].(string)
}
