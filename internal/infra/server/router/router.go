// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smartbiz/backend/internal/integration/entrypoint/controller"
	"github.com/smartbiz/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	inventoryController   *controller.InventoryController
	bookkeepingController *controller.BookkeepingController
	reportController      *controller.ReportController
	authRateLimiter       *middleware.RateLimiter
	allowedOrigins        []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	inventoryController *controller.InventoryController,
	bookkeepingController *controller.BookkeepingController,
	reportController *controller.ReportController,
	authRateLimiter *middleware.RateLimiter,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		inventoryController:   inventoryController,
		bookkeepingController: bookkeepingController,
		reportController:      reportController,
		authRateLimiter:       authRateLimiter,
		allowedOrigins:        allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(middleware.RequestLogger())
	}
	r.engine.Use(cors.New(cors.Config{
		AllowOrigins:     r.allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.engine.GET("/health", r.healthController.Check)
	r.setupAuthRoutes()
	r.setupInventoryRoutes()
	r.setupBookkeepingRoutes()
	r.setupReportRoutes()

	return r.engine
}

func (r *Router) setupAuthRoutes() {
	limited := []gin.HandlerFunc{}
	if r.authRateLimiter != nil {
		limited = append(limited, r.authRateLimiter.Middleware())
	}

	r.engine.POST("/signup", r.authController.Signup)
	r.engine.POST("/login", append(limited, r.authController.Login)...)
	r.engine.POST("/forgot-password", append(limited, r.authController.ForgotPassword)...)
	r.engine.POST("/reset-password", append(limited, r.authController.ResetPassword)...)
}

func (r *Router) setupInventoryRoutes() {
	r.engine.POST("/add_barang", r.inventoryController.Add)
	r.engine.POST("/input_barang", r.inventoryController.Add)
	r.engine.GET("/barang/:userId", r.inventoryController.List)
	r.engine.GET("/barang/:userId/:barangId", r.inventoryController.Get)
	r.engine.PUT("/edit_barang/:barangId", r.inventoryController.Edit)
	r.engine.DELETE("/delete_barang/:barangId", r.inventoryController.Delete)
}

func (r *Router) setupBookkeepingRoutes() {
	r.engine.POST("/create_income", r.bookkeepingController.CreateIncome)
	r.engine.POST("/create_income_batch", r.bookkeepingController.CreateIncomeBatch)
	r.engine.POST("/create_expense", r.bookkeepingController.CreateExpense)
}

func (r *Router) setupReportRoutes() {
	r.engine.GET("/total_profit/:userId", r.reportController.TotalProfit)
	r.engine.GET("/income_history/:userId", r.reportController.IncomeHistory)
	r.engine.GET("/expense_history/:userId", r.reportController.ExpenseHistory)
}
