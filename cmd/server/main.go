package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/freelanceflow/marketplace-api/docs"
	"github.com/freelanceflow/marketplace-api/internal/api"
	"github.com/freelanceflow/marketplace-api/internal/core/service"
	"github.com/freelanceflow/marketplace-api/internal/infrastructure/config"
	"github.com/freelanceflow/marketplace-api/internal/infrastructure/db/postgres"
	redisdb "github.com/freelanceflow/marketplace-api/internal/infrastructure/db/redis"
	"github.com/freelanceflow/marketplace-api/internal/infrastructure/queue"
	"github.com/freelanceflow/marketplace-api/pkg/logger"
)

// @title           FreelanceFlow Marketplace API
// @version         1.0
// @description     Task marketplace backend: accounts, projects, tasks with guarded claims, and notifications.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting marketplace-api")

	initCtx, initCancel := context.WithTimeout(ctx, 30*time.Second)
	defer initCancel()

	if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.Connect(initCtx, postgres.Config{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("postgres connected")

	redisClient, err := redisdb.Connect(initCtx, cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}()
	log.Info().Msg("redis connected")

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	identityCache := redisdb.NewIdentityCache(redisClient, cfg.Redis.IdentityTTL)

	// Services
	notificationService := service.NewNotificationService(notificationRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notificationService, log)
	tokenTTL := time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute
	authService := service.NewAuthService(userRepo, identityCache, cfg.SecretKey, tokenTTL, log)
	userService := service.NewUserService(userRepo, identityCache, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, dispatcher, log)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Dependencies{
		AuthService:         authService,
		UserService:         userService,
		ProjectService:      projectService,
		TaskService:         taskService,
		NotificationService: notificationService,
		JWTSecret:           cfg.SecretKey,
		AllowedOrigins:      cfg.AllowedOrigins,
		Pool:                pool,
		Redis:               redisClient,
		Logger:              log,
	})
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down gracefully")

	stopWorkers()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("marketplace-api stopped")
}
