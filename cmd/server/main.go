package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Ak1Gupta/Socket-Backend/internal/config"
	"github.com/Ak1Gupta/Socket-Backend/internal/database"
	"github.com/Ak1Gupta/Socket-Backend/internal/handler"
	"github.com/Ak1Gupta/Socket-Backend/internal/middleware"
	"github.com/Ak1Gupta/Socket-Backend/internal/repository"
	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	// Storage: Postgres when configured, in-memory otherwise.
	var (
		pool       *pgxpool.Pool
		msgStore   service.MessageStore
		groupStore service.GroupStore
		userStore  service.UserStore
	)
	if cfg.DatabaseURL == "" {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory store")
		mem := repository.NewMemoryStore()
		msgStore, groupStore, userStore = mem, mem, mem
	} else {
		var err error
		pool, err = database.NewPool(context.Background(), cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		if err := database.RunMigrations(context.Background(), pool, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}

		msgStore = repository.NewMessageRepository(pool)
		groupStore = repository.NewGroupRepository(pool)
		userStore = repository.NewUserRepository(pool)
	}

	// Core
	registry := service.NewRegistry()
	archiver := service.NewArchiver(msgStore, cfg.BatchSize, logger)
	messageSvc := service.NewMessageService(msgStore, groupStore, groupStore, userStore, archiver, logger)
	hub := service.NewHub(registry, messageSvc, groupStore, logger)
	historySvc := service.NewHistoryService(msgStore, groupStore, groupStore, userStore, cfg.BatchSize, logger)
	groupSvc := service.NewGroupService(groupStore, userStore)
	userSvc := service.NewUserService(userStore)

	// Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // 1MB
	})

	app.Use(recover.New())
	app.Use(middleware.Logger(logger))

	// Health + metrics
	healthH := handler.NewHealthHandler(pool)
	app.Get("/health", healthH.Health)
	app.Get("/ready", healthH.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Users
	userH := handler.NewUserHandler(userSvc)
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(5, time.Minute), userH.Register)
	users.Get("/:username", userH.Get)

	// Groups
	groupH := handler.NewGroupHandler(groupSvc)
	groups := api.Group("/groups")
	groups.Post("/", middleware.RateLimit(10, time.Minute), groupH.Create)
	groups.Get("/user/:username", groupH.GetUserGroups)
	groups.Get("/:id", groupH.Get)
	groups.Get("/:id/members", groupH.GetMembers)

	// Message history
	msgH := handler.NewMessageHandler(historySvc)
	api.Get("/messages/group/:groupId", msgH.GetGroupMessages)

	// Admin
	admin := api.Group("/admin", middleware.AdminKey(cfg.AdminKey))
	adminH := handler.NewAdminHandler(userStore, groupStore, hub)
	admin.Get("/stats", adminH.Stats)
	admin.Post("/groups/:id/announce", adminH.Announce)

	// WebSocket
	wsH := handler.NewWSHandler(registry, hub, messageSvc, groupStore, groupStore, cfg.SendBuffer, logger)
	app.Get("/ws", wsH.Upgrade)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Int("batch_size", cfg.BatchSize).Msg("chat backend running")

	<-quit
	logger.Info().Msg("shutting down")
	_ = app.ShutdownWithTimeout(5 * time.Second)
	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = os.Stdout
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if !cfg.IsProduction() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly})
	}
	return logger
}
