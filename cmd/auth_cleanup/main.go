package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"studyhall/internal/config"
	"studyhall/internal/database"
	"studyhall/internal/domain/auth"
	"studyhall/internal/pkg/logger"
)

// auth_cleanup resets login lockouts that have already ended, for cron use.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := auth.NewRepository(db).ClearExpiredLockouts(ctx, time.Now())
	if err != nil {
		lg.Fatal("cleanup lockouts failed", zap.Error(err))
	}
	lg.Info("auth cleanup completed", zap.Int64("accounts_unlocked", n))
}
