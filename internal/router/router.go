package router

import (
	"time"

	"stockledger/internal/config"
	"stockledger/internal/handler"
	"stockledger/internal/middleware"
	"stockledger/internal/repository"
	"stockledger/internal/service"
	"stockledger/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockTxRepo := repository.NewStockTransactionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	supplierSvc := service.NewSupplierService(supplierRepo)
	productSvc := service.NewProductService(productRepo, supplierRepo)
	stockSvc := service.NewStockService(productRepo, stockTxRepo, dispatcher)
	reportSvc := service.NewReportService(reportRepo, cfg.ReportStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	productsH := handler.NewProductsHandler(productSvc)
	stockH := handler.NewStockHandler(stockSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	priceH := handler.NewPriceCheckHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, redis-cached
	r.GET("/v1/products/:id/price", priceH.GetPrice)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: operator, supervisor, admin — declared per-endpoint
		v1.GET("/stock/movements", middleware.RequireRole("operator", "supervisor", "admin"), stockH.ListMovements)
		v1.GET("/stock/:product_id", middleware.RequireRole("operator", "supervisor", "admin"), stockH.GetStock)
		// Receiving goods is a supervised operation; issuing is day-to-day
		v1.POST("/stock/:product_id/receive", middleware.RequireRole("supervisor", "admin"), stockH.Receive)
		v1.POST("/stock/:product_id/issue", middleware.RequireRole("operator", "supervisor", "admin"), stockH.Issue)

		v1.GET("/suppliers", middleware.RequireRole("operator", "supervisor", "admin"), suppliersH.List)
		v1.GET("/suppliers/:id", middleware.RequireRole("operator", "supervisor", "admin"), suppliersH.GetByID)
		v1.POST("/suppliers", middleware.RequireRole("admin"), suppliersH.Create)

		v1.GET("/products", middleware.RequireRole("operator", "supervisor", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("operator", "supervisor", "admin"), productsH.GetByID)
		v1.POST("/products", middleware.RequireRole("admin"), productsH.Create)

		reports := v1.Group("/reports", middleware.RequireRole("supervisor", "admin"))
		{
			reports.GET("/low-stock", reportsH.LowStock)
			reports.GET("/low-stock.pdf", reportsH.LowStockPDF)
			reports.GET("/supplier-stock", reportsH.SupplierStock)
			reports.GET("/transactions", reportsH.TransactionHistory)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
