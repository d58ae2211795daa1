package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/retailops/internal/config"
	"github.com/example/retailops/internal/handlers"
	"github.com/example/retailops/internal/routes"
	"github.com/example/retailops/internal/seed"
	"github.com/example/retailops/internal/store"
	"github.com/example/retailops/internal/store/local"
	"github.com/example/retailops/internal/store/postgres"
)

func main() {
	cfg := config.Load()
	st := openStore(cfg)

	ctx := context.Background()
	if err := handlers.BootstrapAdmin(ctx, st, cfg); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	if cfg.SeedFile != "" {
		if err := seed.Apply(ctx, st, cfg.SeedFile); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName: "Retailops Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, st, cfg)

	log.Printf("Starting server on :%s (storage driver: %s)", cfg.AppPort, cfg.StorageDriver)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

func openStore(cfg *config.Config) store.Store {
	switch cfg.StorageDriver {
	case config.DriverLocal:
		st, err := local.Open(cfg.LocalDataDir)
		if err != nil {
			log.Fatalf("failed to open local store: %v", err)
		}
		log.Printf("using local store at %s (development fallback, not for production)", cfg.LocalDataDir)
		return st
	default:
		return postgres.Connect(cfg.DatabaseURL)
	}
}
