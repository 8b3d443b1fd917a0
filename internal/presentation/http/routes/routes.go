package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restaurant-pos/internal/config"
	domainRepo "github.com/sangkips/restaurant-pos/internal/domain/repository"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/handler"
	"github.com/sangkips/restaurant-pos/internal/presentation/http/middleware"
	"github.com/sangkips/restaurant-pos/pkg/utils"
)

// BasePath prefixes every versioned API route.
const BasePath = "/api/v1"

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order    *handler.OrderHandler
	Customer *handler.CustomerHandler
	Sale     *handler.SaleHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group(BasePath)
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
				Requests: deps.Cfg.RateLimit.Requests,
				Window:   time.Duration(deps.Cfg.RateLimit.Duration) * time.Second,
			})
		}
		protected.Use(rateLimiter.Middleware())

		registerOrderRoutes(protected, h, deps)
		registerSaleRoutes(protected, h)
		registerCustomerRoutes(protected, h)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("/:id", middleware.RequirePermission(middleware.PermOrdersView), h.Order.Get)
		orders.PATCH("/:id/cancel", middleware.RequirePermission(middleware.PermOrdersCancel), h.Order.Cancel)
		// A retried checkout replays the stored sale instead of failing as already paid
		orders.POST("/:id/checkout",
			middleware.RequirePermission(middleware.PermOrdersCheckout),
			middleware.Idempotency(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
				TTL:  deps.Cfg.Jobs.IdempotencyTTL,
			}),
			h.Order.Checkout,
		)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("/:id", middleware.RequirePermission(middleware.PermSalesView), h.Sale.Get)
		sales.POST("/:id/print", middleware.RequirePermission(middleware.PermPrinterUse), h.Printer.PrintSale)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("/search", middleware.RequirePermission(middleware.PermCustomersView), h.Customer.Search)
		customers.POST("", middleware.RequirePermission(middleware.PermCustomersCreate), h.Customer.Create)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission(middleware.PermPrinterUse))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
