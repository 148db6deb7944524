// Package events publishes booking lifecycle events to RabbitMQ so front
// desks and notification workers can react to grid changes. Publishing is
// best-effort: callers log and continue on failure.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courtgrid/internal/pkg/config"
	"courtgrid/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeName = "courtgrid.bookings"

type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(cfg config.AMQPConfig) (commands.EventPublisher, func(), error) {
	if !cfg.Enabled {
		return NopPublisher{}, func() {}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := &AMQPPublisher{conn: conn, ch: ch}
	cleanup := func() { _ = p.Close() }
	return p, cleanup, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		exchangeName,
		topic, // routing key, e.g. "booking.created"
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops events. Used when the broker is disabled, notably in
// tests.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
