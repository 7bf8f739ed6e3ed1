package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/logx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventsChannel is the pub/sub channel shared by all API instances.
const EventsChannel = "shiftserve:events"

var _ application.EventPublisher = (*Relay)(nil)

// Relay publishes events on Redis pub/sub and delivers events published by
// any instance to a local handler.
type Relay struct {
	Client  *redis.Client
	Channel string
}

func NewRelay(client *redis.Client) *Relay {
	return &Relay{Client: client, Channel: EventsChannel}
}

func (r *Relay) Publish(ctx context.Context, e domain.Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("relay: marshal: %w", err)
	}
	return r.Client.Publish(ctx, r.Channel, b).Err()
}

// Run subscribes and calls handle for every event until ctx is done.
func (r *Relay) Run(ctx context.Context, handle func(domain.Event)) error {
	sub := r.Client.Subscribe(ctx, r.Channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("relay: subscribe: %w", err)
	}
	log := logx.L().With(zap.String("channel", r.Channel))
	log.Info("relay_started")
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Info("relay_stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var e domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				log.Warn("relay_bad_payload", zap.Error(err))
				continue
			}
			handle(e)
		}
	}
}
