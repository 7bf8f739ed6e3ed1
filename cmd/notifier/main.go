// Command notifier consumes marketplace events from RabbitMQ and turns them
// into user notifications.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shiftserve/internal/application"
	"shiftserve/internal/config"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/logx"
	"shiftserve/internal/infrastructure/rabbitmq"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, config.Load(), log)
	stop()
	if err != nil {
		log.Error("notifier exited", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

// run returns instead of exiting so the broker is closed on every path.
func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	var broker *rabbitmq.Broker
	dial := func() error {
		b, err := rabbitmq.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Warn("rabbitmq_dial_failed", zap.Error(err))
			return err
		}
		broker = b
		return nil
	}
	if err := backoff.Retry(dial, backoff.WithContext(backoff.NewExponentialBackOff(), ctx)); err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer broker.Close()

	if err := broker.Consume(ctx, rabbitmq.NotificationsQueue, notify); err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	return nil
}

func notify(ctx context.Context, e domain.Event) error {
	for _, n := range application.NotificationsFor(e) {
		logx.WithFields(ctx).Info("notification",
			zap.String("recipient_id", n.RecipientID),
			zap.String("event", string(e.Type)),
			zap.String("shift_id", e.ShiftID),
			zap.String("text", n.Text),
		)
	}
	return nil
}
