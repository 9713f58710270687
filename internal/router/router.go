package router

import (
	"time"

	"repricer/internal/config"
	"repricer/internal/handler"
	"repricer/internal/middleware"
	"repricer/internal/repository"
	"repricer/internal/service"
	"repricer/internal/worker"

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
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	changeRepo := repository.NewPriceChangeRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, changeRepo)
	ruleSvc := service.NewRuleService(ruleRepo)
	pricingSvc := service.NewPricingService(productRepo, ruleRepo, changeRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	rulesH := handler.NewRulesHandler(ruleSvc)
	pricingH := handler.NewPricingHandler(pricingSvc, dispatcher)
	priceCheckH := handler.NewPriceCheckHandler(productRepo, rdb, time.Duration(cfg.PriceCacheTTLHours)*time.Hour)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Price check — public, cached, no side effects
	r.GET("/v1/price/:sku", priceCheckH.GetPriceBySKU)

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.GET("/:id/price-changes", productsH.ListPriceChanges)
		}

		pricing := v1.Group("/pricing")
		{
			pricing.GET("/rules", rulesH.List)
			pricing.POST("/rules", rulesH.Create)
			pricing.PUT("/rules/:id", rulesH.Update)
			pricing.DELETE("/rules/:id", rulesH.Delete)
			pricing.PATCH("/rules/:id/toggle", rulesH.Toggle)
			pricing.POST("/rules/:id/run", pricingH.RunRule)

			pricing.POST("/run", pricingH.RunAll)
			pricing.GET("/simulation", pricingH.Simulate)
			pricing.POST("/bulk-discount", pricingH.BulkDiscount)
			pricing.POST("/normalize", pricingH.Normalize)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
