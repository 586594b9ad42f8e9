package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appmetrics "myLocalMarket/app/echo-server/metrics"
	"myLocalMarket/app/echo-server/router"
	"myLocalMarket/business/customer"
	"myLocalMarket/business/favorites"
	"myLocalMarket/business/leaderboard"
	"myLocalMarket/business/offers"
	"myLocalMarket/business/points"
	"myLocalMarket/business/seller"
	"myLocalMarket/internal/middleware"
	kafkaRepo "myLocalMarket/internal/repository/kafka"
	psqlRepo "myLocalMarket/internal/repository/postgres"
	redisRepo "myLocalMarket/internal/repository/redis"
	"myLocalMarket/internal/rest"
	"myLocalMarket/pkg/config"
	"myLocalMarket/pkg/database"
	redisClient "myLocalMarket/pkg/database/redis"
	"myLocalMarket/pkg/logger"
	"myLocalMarket/pkg/metrics"
	"myLocalMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting MyLocalMarket", "version", cfg.App.Version)

	metrics.Init()
	appmetrics.Init()

	if cfg.Database.MigrateOnBoot {
		if err := database.RunMigrations(cfg.Database.MigrationURL()); err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}
		logger.Info("Database migrations applied")
	}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis and Kafka are optional; the service runs without cache or events.
	var (
		rdb            *goredis.Client
		cache          leaderboard.Cache
		publisher      points.EventPublisher
		pointsProducer *kafkaRepo.PointsPublisher
	)

	if cfg.Redis.Enabled() {
		rdb, err = redisClient.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, leaderboard cache disabled", "error", err)
		} else {
			cache = redisRepo.NewLeaderboardCache(rdb)
			logger.Info("Redis connected successfully")
		}
	}

	if cfg.Kafka.Enabled() {
		pointsProducer = kafkaRepo.NewPointsPublisher(cfg.Kafka.Brokers, cfg.Kafka.PointsTopic, cfg.Kafka.MaxRetries)
		publisher = pointsProducer
		logger.Info("Points events enabled", "topic", cfg.Kafka.PointsTopic)
	}

	// Init validate
	validate := validator.New()
	tokens := utils.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.TTL)

	// Init repo
	customerRepo := psqlRepo.NewCustomerRepository(db)
	sellerRepo := psqlRepo.NewSellerRepository(db)
	favoriteRepo := psqlRepo.NewFavoriteRepository(db)
	offerRepo := psqlRepo.NewExclusiveOfferRepository(db)
	transactor := psqlRepo.NewTransactor(db)

	// Init service
	pointsService := points.NewPointsService(customerRepo, publisher)
	favoritesService := favorites.NewFavoritesService(favoriteRepo, customerRepo, sellerRepo)
	sellerService := seller.NewSellerService(sellerRepo, tokens, validate)
	customerService := customer.NewCustomerService(customerRepo, pointsService, favoritesService, sellerService, transactor, tokens, validate)
	offersService := offers.NewOffersService(offerRepo, customerRepo, validate)
	leaderboardService := leaderboard.NewLeaderboardService(customerRepo, sellerRepo, cache, leaderboard.Options{
		CustomerLimit: cfg.Leaderboard.CustomerLimit,
		SellerLimit:   cfg.Leaderboard.SellerLimit,
		MaxLimit:      cfg.Leaderboard.MaxLimit,
		CacheTTL:      cfg.Leaderboard.CacheTTL,
	})

	// Init handler
	timeout := cfg.Server.RequestTimeout
	customerHandler := rest.NewCustomerHandler(customerService, timeout)
	sellerHandler := rest.NewSellerHandler(sellerService, timeout)
	leaderboardHandler := rest.NewLeaderboardHandler(leaderboardService, timeout)
	offerHandler := rest.NewExclusiveOfferHandler(offersService, timeout)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(appmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupCustomerRoutes(api, customerHandler, authRequired, middleware.CustomerOnly())
	router.SetupSellerRoutes(api, sellerHandler, customerHandler, optionalAuth)
	router.SetupLeaderboardRoutes(api, leaderboardHandler)
	router.SetupExclusiveOfferRoutes(api, offerHandler, optionalAuth, authRequired, middleware.SellerOnly())

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if pointsProducer != nil {
		if err := pointsProducer.Close(); err != nil {
			logger.Error("Kafka writer close error", "error", err)
		}
	}

	if err := redisClient.CloseRedisClient(rdb); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
