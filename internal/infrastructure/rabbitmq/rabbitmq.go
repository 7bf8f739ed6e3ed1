package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"shiftserve/internal/application"
	"shiftserve/internal/domain"
	"shiftserve/internal/infrastructure/logx"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// Exchange is the topic exchange carrying marketplace events; the
	// routing key is the event type.
	Exchange = "shift_events"
	// NotificationsQueue is the durable queue the notifier consumes.
	NotificationsQueue = "shift_notifications"
)

var _ application.EventPublisher = (*Broker)(nil)

type Broker struct {
	conn *amqp.Connection

	mu      sync.Mutex
	channel *amqp.Channel
}

// Dial connects and declares the events exchange.
func Dial(url string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange: %w", err)
	}
	return &Broker{conn: conn, channel: ch}, nil
}

func (b *Broker) Close() {
	if b.channel != nil {
		_ = b.channel.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}

func encode(e domain.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Timestamp:    e.OccurredAt,
		Type:         string(e.Type),
		Body:         body,
	}, nil
}

func decode(d amqp.Delivery) (domain.Event, error) {
	var e domain.Event
	if err := json.Unmarshal(d.Body, &e); err != nil {
		return domain.Event{}, err
	}
	if e.Type == "" {
		e.Type = domain.EventType(d.RoutingKey)
	}
	return e, nil
}

func (b *Broker) Publish(ctx context.Context, e domain.Event) error {
	msg, err := encode(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.channel.PublishWithContext(ctx,
		Exchange,
		string(e.Type),
		false, // mandatory
		false, // immediate
		msg,
	)
}

// Consume binds queue to every event type and hands decoded events to
// handle until ctx is done. Handler errors requeue the delivery once.
func (b *Broker) Consume(ctx context.Context, queue string, handle func(context.Context, domain.Event) error) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "#", Exchange, false, nil); err != nil {
		return fmt.Errorf("rabbitmq bind: %w", err)
	}
	if err := ch.Qos(16, 0, false); err != nil {
		return fmt.Errorf("rabbitmq qos: %w", err)
	}
	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	log := logx.L().With(zap.String("queue", q.Name))
	log.Info("consumer_started")
	for {
		select {
		case <-ctx.Done():
			log.Info("consumer_stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("rabbitmq: delivery channel closed")
			}
			e, err := decode(d)
			if err != nil {
				log.Warn("consumer_bad_payload", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			if err := handle(ctx, e); err != nil {
				log.Warn("consumer_handler_failed", zap.String("type", string(e.Type)), zap.Error(err))
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
