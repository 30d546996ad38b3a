package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"antiquefinder/database"
	"antiquefinder/internal/config"
	"antiquefinder/internal/events"
	"antiquefinder/internal/handler"
	"antiquefinder/internal/metrics"
	"antiquefinder/internal/middleware"
	"antiquefinder/internal/repository"
	"antiquefinder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	rdb := newRedisClient(cfg, logger)

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer producer.Close()

	// Repositories
	shopRepo := repository.NewShopRepo(db)
	reviewRepo := repository.NewReviewRepository(db)
	categoryRepo := repository.NewCategoryRepo(db)
	adminRepo := repository.NewAdminRepository(db)

	if err := database.Seed(adminRepo, cfg, logger); err != nil {
		logger.Error("database seed failed", "error", err)
		os.Exit(1)
	}

	// Services
	ratingSvc := service.NewRatingService(reviewRepo, shopRepo, logger)
	catalogSvc := service.NewCatalogService(shopRepo, categoryRepo, ratingSvc, producer, logger)
	reviewSvc := service.NewReviewService(reviewRepo, shopRepo, ratingSvc, producer, logger)
	categorySvc := service.NewCategoryService(categoryRepo)
	authSvc := service.NewAuthService(adminRepo, cfg)

	catalogMetrics := metrics.NewCatalogMetrics()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(catalogMetrics.Middleware())
	r.Use(middleware.RateLimit(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow, logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminOnly := middleware.AuthMiddleware(authSvc)

	api := r.Group("/api")
	handler.NewShopHandler(catalogSvc, reviewSvc, catalogMetrics).RegisterRoutes(api.Group("/shops"), adminOnly)
	handler.NewCategoryHandler(categorySvc).RegisterRoutes(api.Group("/categories"), adminOnly)
	handler.NewAuthHandler(authSvc).RegisterRoutes(api.Group("/auth"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("catalog API listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newRedisClient connects to Redis for rate limiting. Returns nil when
// no URL is configured or the connection fails; limiting is then off.
func newRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid redis url, rate limiting disabled", "error", err)
		return nil
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, rate limiting disabled", "error", err)
		return nil
	}
	return rdb
}
