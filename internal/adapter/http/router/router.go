package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kapu/content-tagger-go/internal/adapter/http/handler"
	"github.com/kapu/content-tagger-go/internal/adapter/http/middleware"
)

// Dependencies are the services the HTTP layer exposes.
type Dependencies struct {
	Batches handler.BatchRunner
	// Registry backs GET /metrics; nil disables the route.
	Registry *prometheus.Registry
}

// Setup creates and configures the Gin router
func Setup(deps Dependencies, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler()
	router.GET("/health", healthHandler.Health)

	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	processHandler := handler.NewProcessHandler(deps.Batches, logger)
	router.POST("/process", processHandler.Process)

	return router
}
