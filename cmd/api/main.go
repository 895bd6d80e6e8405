// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/commerce"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"github.com/your-org/storefront-backend/internal/pkg/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting application")

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	migration := postgres.NewMigration(db.GetDB(), appLog)
	if err := migration.RunAutoMigrations(); err != nil {
		appLog.WithError(err).Fatal("Database migration failed")
	}
	if err := migration.CreateIndexes(); err != nil {
		appLog.WithError(err).Warn("Index creation failed")
	}
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			appLog.WithError(err).Warn("Data seeding failed")
		}
	}

	// Commerce state layer: Redis mirrors each session's collections,
	// Postgres holds the per-account copies synced in the background.
	runner := tasks.NewRunner(appLog.WithField("component", "tasks"))
	local := commerce.NewRedisStorage(redisClient.GetClient())
	remote := commerce.NewGormRemoteStore(db.GetDB())
	manager := commerce.NewManager(local, remote, runner, appLog.WithField("component", "commerce"))

	server := http.NewServer(cfg, db.GetDB(), redisClient, manager, appLog)

	go func() {
		if err := server.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	// Let in-flight background syncs drain before exit
	runner.Wait()

	appLog.Info("Server shutdown completed")
}
