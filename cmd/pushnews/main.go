package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"ainewshub/internal/app"
	"ainewshub/internal/config"
	"ainewshub/internal/logging"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Dispatch(ctx); err != nil {
		logger.Error("dispatch failed", "error", err)
		os.Exit(1)
	}
}
