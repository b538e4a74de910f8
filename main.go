package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/WarikanHQ/warikan-backend/config"
	"github.com/WarikanHQ/warikan-backend/db"
	"github.com/WarikanHQ/warikan-backend/handlers"
	"github.com/WarikanHQ/warikan-backend/internal/store/postgres"
	"github.com/WarikanHQ/warikan-backend/logger"
	"github.com/WarikanHQ/warikan-backend/models"
	"github.com/WarikanHQ/warikan-backend/router"
	"github.com/WarikanHQ/warikan-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// @title Warikan Backend API
// @version 1.0
// @description Bill splitting and schedule voting API.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnString())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	if life, err := time.ParseDuration(cfg.Database.ConnMaxLife); err == nil {
		poolConfig.MaxConnLifetime = life
	}
	if cfg.IsProduction() {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	log.Infow("Connected to database", "dsn", logger.MaskConnectionString(cfg.Database.ConnString()))

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis
	redisOptions := &redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warnw("Failed to close redis client", "error", err)
		}
	}()

	// Services
	eventService := services.NewRedisEventService(redisClient)
	rateLimitService := services.NewRateLimitService(redisClient)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	// Stores and models
	roleStore := postgres.NewRoleStore(pool)
	planStore := postgres.NewPlanStore(pool)
	scheduleStore := postgres.NewScheduleStore(pool)

	roleModel := models.NewRoleModel(roleStore, eventService)
	planModel := models.NewPlanModel(planStore, roleModel, eventService)
	scheduleModel := models.NewScheduleModel(scheduleStore, eventService, cfg.Tally.DedupeVotes)

	// Router
	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		PlanHandler:     handlers.NewPlanHandler(planModel),
		RoleHandler:     handlers.NewRoleHandler(roleModel),
		ScheduleHandler: handlers.NewScheduleHandler(scheduleModel),
		StreamHandler:   handlers.NewEventStreamHandler(eventService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		RateLimiter:     rateLimitService,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
	if err := eventService.Shutdown(shutdownCtx); err != nil {
		log.Warnw("Event service shutdown failed", "error", err)
	}

	log.Info("Server stopped")
}
