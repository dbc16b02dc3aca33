package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"todolist/configs"
	v1 "todolist/internal/api/v1"
	"todolist/internal/config"
	"todolist/internal/middleware"
	"todolist/internal/repository"
	"todolist/pkg/database"
	"todolist/pkg/logger"
)

func main() {
	cfg := configs.LoadConfig()

	if err := logger.InitLoggers(cfg.LogDir); err != nil {
		log.Fatalf("Failed to initialize loggers: %v", err)
	}
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.ErrorLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	if err := repository.CreateTableIfNotExists(db); err != nil {
		logger.ErrorLogger.Fatal("Failed to create tables", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.ErrorLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	deps := config.NewDependencies(cfg, db, redisClient)

	created, err := deps.Users.EnsureDefaultAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	cancel()
	if err != nil {
		logger.ErrorLogger.Fatal("Failed to seed admin user", zap.Error(err))
	}
	if created {
		logger.SystemLogger.Info("Default admin user created", zap.String("email", cfg.AdminEmail))
	}

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app, deps)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.SystemLogger.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.ErrorLogger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
