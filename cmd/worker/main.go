package main

import (
	"context"
	"os/signal"
	"syscall"

	"shiftserve/internal/bootstrap"
	"shiftserve/internal/config"
	"shiftserve/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	run, cleanup, err := bootstrap.InitWorkerApp(ctx, cfg)
	if err != nil {
		log.Fatal("init worker", zap.Error(err))
	}
	defer cleanup()
	log.Info("worker_started", zap.String("type", cfg.WorkerType))
	if err := run(ctx); err != nil {
		log.Error("worker exited", zap.Error(err))
	}
	log.Info("worker_stopped")
}
