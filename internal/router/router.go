package router

import (
	"time"

	"bisnispintar/internal/config"
	"bisnispintar/internal/handler"
	"bisnispintar/internal/infra"
	"bisnispintar/internal/middleware"
	"bisnispintar/internal/repository"
	"bisnispintar/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
)

// Deps are the long-lived components built in main.
// AdvisorBreaker may be nil when no API key is configured.
type Deps struct {
	Inventory      service.InventoryService
	Advisor        service.AdvisorService
	Repo           repository.ItemRepository
	AdvisorBreaker *infra.CircuitBreaker
	RateLimiter    *middleware.RateLimiter
}

// New wires handlers onto a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← file/Badger/Redis/Postgres
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(limiter.Handler())

	// ── Handlers ─────────────────────────────────────────────────────────────
	itemsH := handler.NewItemsHandler(deps.Inventory, cfg.LowStockThreshold)
	metricsH := handler.NewMetricsHandler(deps.Inventory, cfg.LowStockThreshold)
	advisorH := handler.NewAdvisorHandler(deps.Advisor)
	reportsH := handler.NewReportsHandler(deps.Inventory)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(deps.Repo, deps.AdvisorBreaker))

	v1 := r.Group("/v1")
	{
		items := v1.Group("/items")
		{
			items.GET("", itemsH.Listar)
			items.POST("", itemsH.Crear)
			items.GET("/:id", itemsH.ObtenerPorID)
			items.PUT("/:id", itemsH.Actualizar)
			items.DELETE("/:id", itemsH.Eliminar)
		}

		v1.GET("/metrics", metricsH.Metrics)
		v1.GET("/metrics/chart", metricsH.Chart)
		v1.GET("/metrics/categories", metricsH.Categories)
		v1.GET("/alerts/low-stock", metricsH.LowStock)
		v1.GET("/dashboard", metricsH.Dashboard)

		v1.POST("/advisor/ask", advisorH.Ask)

		v1.GET("/reports/inventory.xlsx", reportsH.InventoryXLSX)
		v1.GET("/reports/summary.pdf", reportsH.SummaryPDF)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
