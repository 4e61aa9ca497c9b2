package v1

import (
	"github.com/gin-gonic/gin"

	"supplytrack/internal/config"
	"supplytrack/internal/domain/catalogs/category"
	"supplytrack/internal/domain/catalogs/warehouse"
	"supplytrack/internal/domain/supplies/item"
	"supplytrack/internal/infrastructure/http/v1/handlers"
	"supplytrack/internal/infrastructure/http/v1/middleware"
	"supplytrack/internal/infrastructure/storage/postgres"
	"supplytrack/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool      *postgres.Pool
	Logger    *logger.Logger
	RateLimit config.RateLimitConfig

	Categories *category.Service
	Warehouses *warehouse.Service
	Items      *item.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RateLimit(cfg.RateLimit))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		RegisterCatalogRoutes(api.Group("/categories"), handlers.NewCategoryHandler(base, cfg.Categories))
		RegisterCatalogRoutes(api.Group("/warehouses"), handlers.NewWarehouseHandler(base, cfg.Warehouses))

		itemHandler := handlers.NewItemHandler(base, cfg.Items)
		items := api.Group("/supply-items")
		{
			items.GET("", itemHandler.List)
			items.POST("", itemHandler.Create)
			items.GET("/expiring", itemHandler.Expiring)
			items.GET("/:id", itemHandler.Get)
			items.PATCH("/:id", itemHandler.Update)
			items.DELETE("/:id", itemHandler.Delete)
		}
	}

	return router
}
