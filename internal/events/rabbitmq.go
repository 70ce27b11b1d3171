package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
}

// NewRabbitMQPublisher dials the broker and declares a durable topic exchange.
// Events are routed by their type, e.g. "order.created".
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		e.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.OccurredAt,
			ContentType:  "application/json",
			MessageId:    logger.RequestIDFrom(ctx),
			Body:         body,
		},
	)
	metrics.RecordEvent(e.Type, err == nil)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to publish event",
			zap.String("type", e.Type),
			zap.String("order_id", e.OrderID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
