package main

import (
	"fmt"
	"log"
	"net/http"

	"gigdispatch/internal/config"
	"gigdispatch/internal/handlers"
	"gigdispatch/internal/middleware"
	"gigdispatch/internal/repositories/mongodb"
	"gigdispatch/internal/services"
	"gigdispatch/pkg/cache"
	"gigdispatch/pkg/database"
	"gigdispatch/pkg/logger"
	"gigdispatch/pkg/websocket"
	"gigdispatch/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	})

	db, err := database.NewMongoDB(&database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer db.Close()

	cacheClient, err := cache.NewClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// The engine works without redis; only caching and event
		// mirroring degrade.
		appLogger.WithError(err).Warn("redis unavailable, continuing without cache")
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	hub := websocket.NewHub()
	go hub.Run()

	driverRepo := mongodb.NewDriverRepository(db.Database, cacheClient)
	jobRepo := mongodb.NewJobRepository(db.Database)

	earningsService := services.NewEarningsService(cfg.Rates)
	notifier := services.NewHubNotifier(hub, cacheClient, appLogger)
	driverService := services.NewDriverService(driverRepo, jobRepo, appLogger)
	dispatchService := services.NewDispatchService(driverRepo, jobRepo, earningsService, notifier, appLogger)
	jobService := services.NewJobService(jobRepo, driverRepo, earningsService, notifier, appLogger)

	driverHandler := handlers.NewDriverHandler(driverService)
	jobHandler := handlers.NewJobHandler(jobService, dispatchService)
	wsHandler := handlers.NewWSHandler(hub)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())

	v1 := router.Group("/api/v1")
	{
		routes.SetupDriverRoutes(v1, driverHandler, cfg.Security.JWTSecret)
		routes.SetupJobRoutes(v1, jobHandler, cfg.Security.JWTSecret)
	}

	router.GET("/ws", middleware.AuthRequired(cfg.Security.JWTSecret), wsHandler.Connect)

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := db.Ping(); err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.WithField("addr", addr).Info("starting server")
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.WithError(err).Fatal("server stopped")
	}
}
