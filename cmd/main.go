package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/db"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/db/migrations"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/handlers"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/repos"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/server"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/services"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/utils"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Database
	dbService, err := db.NewService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if dbService.IsPostgres() && utils.GetEnv("MIGRATE_ON_START", "true", log) == "true" {
		sqlDB, err := dbService.DB().DB()
		if err != nil {
			log.Fatal("Failed to get sql.DB for migrations", "error", err)
		}
		if err := migrations.Up(sqlDB); err != nil {
			log.Fatal("Schema migration failed", "error", err)
		}
		version, dirty, err := migrations.Version(sqlDB)
		if err != nil {
			log.Warn("Could not read schema version", "error", err)
		} else {
			log.Info("Schema migrated", "version", version, "dirty", dirty)
		}
	} else if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Auto migration failed", "error", err)
	}
	thePG := dbService.DB()

	// Repos
	log.Info("Setting up repos...")
	releaseRepo := repos.NewReleaseRepo(thePG, log)
	storeRepo := repos.NewStoreRepo(thePG, log)
	listingRepo := repos.NewListingRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	releaseService := services.NewReleaseService(thePG, log, releaseRepo, listingRepo, storeRepo)
	storeService := services.NewStoreService(thePG, log, storeRepo, listingRepo)
	listingService := services.NewListingService(thePG, log, listingRepo, releaseRepo, storeRepo)

	// Handlers
	log.Info("Setting up handlers...")
	releaseHandler := handlers.NewReleaseHandler(log, releaseService)
	storeHandler := handlers.NewStoreHandler(log, storeService)
	listingHandler := handlers.NewListingHandler(log, listingService)

	// Router
	allowedOrigins := utils.GetEnvAsList("ALLOW_ORIGINS", "http://localhost:3000", log)
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AllowedOrigins: allowedOrigins,
		ReleaseHandler: releaseHandler,
		StoreHandler:   storeHandler,
		ListingHandler: listingHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
