package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, checkoutService *service.CheckoutService, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORS))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		locations := v1.Group("/locations")
		{
			locations.GET("/countries", handlers.HandleListCountries(repos, logger))
			locations.GET("/countries/:id/provinces", handlers.HandleListProvinces(repos, logger))
			locations.GET("/provinces/:id/cities", handlers.HandleListCities(repos, logger))
		}

		v1.GET("/geo/resolve", handlers.HandleResolveMapURL())

		checkoutRoutes := v1.Group("/checkout")
		{
			checkoutRoutes.POST("", handlers.HandleCheckoutSubmit(checkoutService, logger))
			checkoutRoutes.POST("/validate", handlers.HandleCheckoutValidate(checkoutService, logger))
			checkoutRoutes.POST("/quote", handlers.HandleCheckoutQuote(checkoutService, logger))
		}

		// Admin routes
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.Admin, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(repos, logger))
			adminRoutes.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
			adminRoutes.POST("/orders/:id/confirm", handlers.HandleConfirmOrder(repos, logger))
			adminRoutes.POST("/orders/:id/reject", handlers.HandleRejectOrder(repos, logger))
			adminRoutes.POST("/orders/:id/ship", handlers.HandleShipOrder(repos, logger))
			adminRoutes.POST("/orders/:id/deliver", handlers.HandleDeliverOrder(repos, logger))
			adminRoutes.POST("/orders/:id/cancel", handlers.HandleCancelOrder(repos, logger))
			adminRoutes.PATCH("/orders/:id/payment-status", handlers.HandleUpdatePaymentStatus(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("HTTP request", fields...)
	}
}
