package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/tickwatch/tickwatch/internal/api/http"
	"github.com/tickwatch/tickwatch/internal/config"
	"github.com/tickwatch/tickwatch/internal/risk"
	"github.com/tickwatch/tickwatch/internal/scheduler"
	"github.com/tickwatch/tickwatch/internal/sighting"
	"github.com/tickwatch/tickwatch/internal/store/sqlite"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	synonyms, err := cfg.Synonyms()
	if err != nil {
		log.Fatalf("failed to load species synonyms: %v", err)
	}
	normalizer := sighting.NewNormalizer(synonyms)

	// SQLite-backed repository.
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", cfg.DBPath, err)
	}
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := sqlite.RunMigrations(migrateCtx, db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	repo := sqlite.NewSightingRepository(db)

	// Core services: read-side query/statistics/forecast plus the
	// standalone risk scorer with its immutable weight table.
	service := sighting.NewService(repo, normalizer)
	scorer := risk.NewScorer(risk.DefaultWeights())

	// Periodic dataset summary for operators.
	sched := scheduler.New(cfg.SummaryInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "tickwatch",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "tickwatch",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, scorer, httpapi.HorizonBounds{
		Default: cfg.DefaultHorizon,
		Max:     cfg.MaxHorizon,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
