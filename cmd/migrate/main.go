package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := infra.OpenSQL(cfg.DatabaseDSN)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := infra.RunMigrations(ctx, db); err != nil {
		zl.Fatal("migrate", zap.Error(err))
	}
	zl.Info("migrations applied")
}
