package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/handlers"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/middleware"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string
	ReleaseHandler *handlers.ReleaseHandler
	StoreHandler   *handlers.StoreHandler
	ListingHandler *handlers.ListingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.Metrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Releases
	router.GET("/releases", cfg.ReleaseHandler.List)
	router.GET("/releases/:id", cfg.ReleaseHandler.Get)
	router.POST("/releases", cfg.ReleaseHandler.Create)
	router.DELETE("/releases/:id", cfg.ReleaseHandler.Delete)

	// Listings
	router.POST("/releases/:id/listings", cfg.ListingHandler.Add)
	router.PATCH("/listings/:id", cfg.ListingHandler.Update)
	router.DELETE("/listings/:id", cfg.ListingHandler.Delete)

	// Stores
	router.GET("/stores", cfg.StoreHandler.List)
	router.POST("/stores", cfg.StoreHandler.Create)
	router.DELETE("/stores/:id", cfg.StoreHandler.Delete)

	return router
}
