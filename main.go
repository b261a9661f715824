// File: floormatch/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floormatch/config"
	"floormatch/cron"
	"floormatch/database"
	contractorRepo "floormatch/database/repository/contractor"
	scheduleRepo "floormatch/database/repository/schedule"
	"floormatch/handlers"
	"floormatch/middleware"
	"floormatch/routes"
	"floormatch/services/distance"
	"floormatch/services/recommendation"
	"floormatch/services/scoring"
	"floormatch/services/tasks"
	"floormatch/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(ctx, utils.GetCacheClient(), database.MongoClient)

	// repositories.
	contractors := contractorRepo.NewMongoContractorRepo(database.DB(), logger)
	schedules := scheduleRepo.NewMongoScheduleRepo(database.DB(), logger)

	// distance resolution: in-process LRU, shared Redis tier, routing API, fallback.
	cacheTTL := time.Duration(config.AppConfig.DistanceCacheTTLHours) * time.Hour
	distanceCache := distance.NewCache(
		config.AppConfig.DistanceCacheCapacity,
		cacheTTL,
		distance.NewRedisStore(utils.GetCacheClient(), cacheTTL, logger),
	)
	var routingAPI distance.RoutingAPI
	if config.AppConfig.RoutingAPIKey != "" {
		routingAPI = distance.NewRoutingClient(distance.ClientConfig{
			BaseURL:           config.AppConfig.RoutingAPIURL,
			APIKey:            config.AppConfig.RoutingAPIKey,
			AttemptTimeout:    time.Duration(config.AppConfig.RoutingTimeoutSeconds) * time.Second,
			RequestsPerSecond: config.AppConfig.RoutingRequestsPerSec,
		}, logger)
	} else {
		logger.Warn("ROUTING_API_KEY not set; all distances will use the great-circle fallback")
	}
	resolver := distance.NewResolver(distanceCache, routingAPI, logger)

	// services.
	engine := scoring.NewEngine(resolver, schedules, logger, config.AppConfig.ScoringConcurrency)
	recommendationService := &recommendation.DefaultRecommendationService{
		Contractors: contractors,
		Engine:      engine,
		Logger:      logger,
	}

	var refreshWorker *asynq.Server
	var queueClient *asynq.Client
	if config.AppConfig.DistanceRefreshEnabled {
		queueClient = asynq.NewClient(cron.QueueRedisOpt())
		recommendationService.Refresh = tasks.NewDistanceRefresher(queueClient, logger)
		refreshWorker = cron.InitDistanceRefreshWorker(ctx, resolver, logger)
	}

	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	availabilityHandler := handlers.NewAvailabilityHandler(contractors, schedules)
	distanceHandler := handlers.NewDistanceHandler(resolver)

	handlerBundle := &handlers.HandlerBundle{
		RecommendHandler:              recommendationHandler.Recommend,
		ContractorAvailabilityHandler: availabilityHandler.GetAvailability,
		DistanceHandler:               distanceHandler.GetDistance,
		HealthHandler:                 handlers.Health,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("server is shutting down")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if refreshWorker != nil {
		refreshWorker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
