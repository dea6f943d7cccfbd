// @title Wiki Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes from Wikipedia articles.
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "wikiquiz/cmd/api/docs"
	"wikiquiz/internal/app"
	"wikiquiz/internal/config"
	"wikiquiz/internal/handler"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/metrics"
	"wikiquiz/internal/middleware"
	"wikiquiz/internal/quizgen"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()
	mtr := metrics.New()

	components, err := app.Build(ctx, cfg, appLogger, app.Options{Storage: true, Metrics: mtr})
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer components.Close()

	quizHandler := handler.NewQuizHandler(components.Service)

	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.WriteTimeoutFor(quizgen.MaxAttempts),
		IdleTimeout:  60 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	server.Use(recover.New())
	server.Use(middleware.RequestID())
	server.Use(middleware.RequestLogger(mtr))
	server.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.HeaderRequestID,
		MaxAge:       300,
	}))

	handler.RegisterRoutes(server, quizHandler, mtr.Handler())

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := server.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
