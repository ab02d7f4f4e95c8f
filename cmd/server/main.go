package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	config "github.com/cartline/storefront/go/configs"
	"github.com/cartline/storefront/go/internal/application/services"
	"github.com/cartline/storefront/go/internal/core/ports"
	"github.com/cartline/storefront/go/internal/infrastructure/db"
	"github.com/cartline/storefront/go/internal/infrastructure/email"
	"github.com/cartline/storefront/go/internal/infrastructure/health"
	"github.com/cartline/storefront/go/internal/infrastructure/httpserver"
	customMiddleware "github.com/cartline/storefront/go/internal/infrastructure/httpserver/middleware"
	"github.com/cartline/storefront/go/internal/infrastructure/memcache"
	"github.com/cartline/storefront/go/internal/infrastructure/redis"
	"github.com/cartline/storefront/go/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting storefront application...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client (refresh token store)
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// In-process cache registry: one bounded namespace per concern.
	cacheRegistry := memcache.NewRegistry(memcache.Options{
		MaxEntries:      cfg.Cache.MaxEntries,
		CleanupInterval: cfg.Cache.CleanupInterval,
	})
	defer cacheRegistry.Close()
	prometheus.MustRegister(memcache.NewStatsCollector(cacheRegistry))

	tokenRepo := repositories.NewTokenRedisRepository(redisClient, logger)

	// DB repositories, decorated with cache-aside over their namespaces.
	baseProductRepo := repositories.NewProductRepository(database, logger)
	userRepo := repositories.NewUserRepository(database, logger)
	orderRepo := repositories.NewOrderRepository(database, logger)
	baseReviewRepo := repositories.NewReviewRepository(database, logger)

	productRepo := repositories.NewCachingProductRepository(baseProductRepo, cacheRegistry.Namespace("product"), cfg.Cache.DefaultTTL)
	reviewRepo := repositories.NewCachingReviewRepository(baseReviewRepo, cacheRegistry.Namespace("review"), cfg.Cache.DefaultTTL)

	emailConfig := &email.EmailConfig{
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		StoreName:      cfg.Email.StoreName,
		BaseURL:        cfg.Email.BaseURL,
	}
	emailService, err := email.NewEmailService(emailConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	// Wire all services with their repository dependencies
	userService := services.NewUserService(userRepo, tokenRepo, emailService, logger)
	authService := services.NewAuthService(userRepo, tokenRepo, &cfg.JWT, logger)
	catalogService := services.NewCatalogService(productRepo, logger)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, emailService, logger)
	reviewService := services.NewReviewService(reviewRepo, productRepo, logger)

	// Limiter gates share the "rate-limit" namespace; windows and limits come
	// from config, with message and failure policy fixed per preset.
	rateLimitCache := cacheRegistry.Namespace("rate-limit")
	gates := customMiddleware.RateLimitGates{
		Default: services.NewRateLimiterService(rateLimitCache, withLimits(services.DefaultPolicy, cfg.RateLimit.DefaultWindow, cfg.RateLimit.DefaultMaxRequests), nil, logger),
		Strict:  services.NewRateLimiterService(rateLimitCache, withLimits(services.StrictPolicy, cfg.RateLimit.StrictWindow, cfg.RateLimit.StrictMaxRequests), nil, logger),
		Admin:   services.NewRateLimiterService(rateLimitCache, withLimits(services.AdminPolicy, cfg.RateLimit.AdminWindow, cfg.RateLimit.AdminMaxRequests), nil, logger),
		Auth:    services.NewRateLimiterService(rateLimitCache, withLimits(services.AuthPolicy, cfg.RateLimit.AuthWindow, cfg.RateLimit.AuthMaxRequests), nil, logger),
	}

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
		Environment:  cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		AuthService:    authService,
		UserService:    userService,
		CatalogService: catalogService,
		OrderService:   orderService,
		ReviewService:  reviewService,
		RateLimitGates: gates,
		HealthCheckers: hcSlice,
		CacheStats:     cacheRegistry.Stats,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}

func withLimits(p services.RateLimitPolicy, window time.Duration, maxRequests int) services.RateLimitPolicy {
	if window > 0 {
		p.Window = window
	}
	if maxRequests > 0 {
		p.MaxRequests = maxRequests
	}
	return p
}
