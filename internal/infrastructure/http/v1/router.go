package v1

import (
	"github.com/gin-gonic/gin"

	"stockkeeper/internal/domain/auth"
	"stockkeeper/internal/domain/inventory"
	"stockkeeper/internal/infrastructure/http/v1/handlers"
	"stockkeeper/internal/infrastructure/http/v1/middleware"
	"stockkeeper/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	StockItems    *inventory.StockItemService
	ShoppingItems *inventory.ShoppingItemService

	// Readiness backs GET /health/ready
	Readiness handlers.ReadinessChecker
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Readiness)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerItemRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	authHandler := handlers.NewAuthHandler(handlers.NewBaseHandler(), cfg.AuthService)
	authHandler.RegisterRoutes(rg.Group("/auth"))
}

// registerItemRoutes registers stock and shopping item endpoints.
func registerItemRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	stockHandler := handlers.NewStockItemHandler(baseHandler, cfg.StockItems)
	RegisterItemRoutes(rg.Group("/stock-items"), stockHandler)

	shoppingHandler := handlers.NewShoppingItemHandler(baseHandler, cfg.ShoppingItems)
	shopping := rg.Group("/shopping-items")
	RegisterReadRoutes(shopping, shoppingHandler)
	shopping.GET("/by-stock-item/:stockItemId", shoppingHandler.GetByStockItem)
}
