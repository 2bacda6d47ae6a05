package main

import (
	"context"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/bootstrap"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/config"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, config.Load())
	if err != nil {
		logger.Fatal("bootstrap", zap.Error(err))
	}
	if err := app.Run(ctx); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
