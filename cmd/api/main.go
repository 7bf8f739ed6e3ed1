package main

import (
	"context"
	"os/signal"
	"syscall"

	"shiftserve/internal/bootstrap"
	"shiftserve/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		log.Fatal("init api", zap.Error(err))
	}
	defer cleanup()

	if err := api.Run(ctx); err != nil {
		log.Error("api exited", zap.Error(err))
	}
}
